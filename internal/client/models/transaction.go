package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a list item as returned by GET /v1/transactions/.
// Reference names are denormalized by the server.
type Transaction struct {
	ID                  int64           `json:"id"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	StatusID            int64           `json:"status_id"`
	StatusName          string          `json:"status_name"`
	TransactionTypeID   int64           `json:"transaction_type_id"`
	TransactionTypeName string          `json:"transaction_type_name"`
	CategoryID          int64           `json:"category_id"`
	CategoryName        string          `json:"category_name"`
	SubcategoryID       *int64          `json:"subcategory_id"`
	SubcategoryName     *string         `json:"subcategory_name"`
	Amount              decimal.Decimal `json:"amount"`
	Comment             *string         `json:"comment"`
}

// TransactionDetail adds the owner's email to a Transaction.
type TransactionDetail struct {
	Transaction
	UserEmail string `json:"user_email"`
}

// String renders a one-line summary used by the CLI list.
func (t Transaction) String() string {
	category := t.CategoryName
	if t.SubcategoryName != nil && *t.SubcategoryName != "" {
		category += "/" + *t.SubcategoryName
	}
	comment := ""
	if t.Comment != nil && *t.Comment != "" {
		comment = " " + *t.Comment
	}
	return fmt.Sprintf("#%d %s %s %s %s [%s]%s",
		t.ID, t.CreatedAt.Format("2006-01-02"), t.TransactionTypeName,
		t.Amount.StringFixed(2), category, t.StatusName, comment)
}

// TransactionInput is the body of POST /v1/transactions/.
type TransactionInput struct {
	StatusID          int64           `json:"status_id"`
	TransactionTypeID int64           `json:"transaction_type_id"`
	CategoryID        int64           `json:"category_id"`
	SubcategoryID     *int64          `json:"subcategory_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Comment           string          `json:"comment,omitempty"`
}

// TransactionPatch is the body of PATCH /v1/transactions/{id}/. Nil fields
// are left unchanged on the server. ClearSubcategory sends an explicit null.
type TransactionPatch struct {
	StatusID          *int64           `json:"status_id,omitempty"`
	TransactionTypeID *int64           `json:"transaction_type_id,omitempty"`
	CategoryID        *int64           `json:"category_id,omitempty"`
	SubcategoryID     *int64           `json:"-"`
	ClearSubcategory  bool             `json:"-"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Comment           *string          `json:"comment,omitempty"`
}

// Body returns the JSON-ready form of the patch.
func (p TransactionPatch) Body() map[string]any {
	body := make(map[string]any)
	if p.StatusID != nil {
		body["status_id"] = *p.StatusID
	}
	if p.TransactionTypeID != nil {
		body["transaction_type_id"] = *p.TransactionTypeID
	}
	if p.CategoryID != nil {
		body["category_id"] = *p.CategoryID
	}
	switch {
	case p.ClearSubcategory:
		body["subcategory_id"] = nil
	case p.SubcategoryID != nil:
		body["subcategory_id"] = *p.SubcategoryID
	}
	if p.Amount != nil {
		body["amount"] = p.Amount.String()
	}
	if p.Comment != nil {
		body["comment"] = *p.Comment
	}
	return body
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return len(p.Body()) == 0
}
