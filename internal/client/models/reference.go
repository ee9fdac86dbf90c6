package models

// TransactionType is a top-level kind of money movement (income, expense, ...).
type TransactionType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category belongs to a TransactionType.
type Category struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	TransactionTypeID int64  `json:"transaction_type_id"`
}

// Subcategory belongs to a Category.
type Subcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// Status is the lifecycle state of a transaction.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Metadata groups the four reference lists loaded once per session.
type Metadata struct {
	TransactionTypes []TransactionType `json:"transaction_types"`
	Categories       []Category        `json:"categories"`
	Subcategories    []Subcategory     `json:"subcategories"`
	Statuses         []Status          `json:"statuses"`
}
