package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_DecodesServerPayload(t *testing.T) {
	body := `{
		"id": 12,
		"user_email": "alice@example.com",
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-02T10:00:00Z",
		"status_id": 1, "status_name": "Business",
		"transaction_type_id": 2, "transaction_type_name": "Expense",
		"category_id": 3, "category_name": "Infrastructure",
		"subcategory_id": null, "subcategory_name": null,
		"amount": "1250.50",
		"comment": "VPS"
	}`

	var d TransactionDetail
	require.NoError(t, json.Unmarshal([]byte(body), &d))

	assert.Equal(t, int64(12), d.ID)
	assert.Equal(t, "alice@example.com", d.UserEmail)
	assert.Nil(t, d.SubcategoryID)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(d.Amount))
	assert.Equal(t, "#12 2024-03-01 Expense 1250.50 Infrastructure [Business] VPS", d.String())
}

func TestTransactionInput_AmountIsSentAsString(t *testing.T) {
	in := TransactionInput{StatusID: 1, TransactionTypeID: 2, CategoryID: 3, Amount: decimal.RequireFromString("10.00")}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status_id":1,"transaction_type_id":2,"category_id":3,"amount":"10"}`, string(b))
}

func TestTransactionPatch_Body(t *testing.T) {
	amount := decimal.RequireFromString("5.5")
	p := TransactionPatch{Amount: &amount, ClearSubcategory: true}
	assert.Equal(t, map[string]any{"amount": "5.5", "subcategory_id": nil}, p.Body())
	assert.False(t, p.IsEmpty())
	assert.True(t, TransactionPatch{}.IsEmpty())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}
