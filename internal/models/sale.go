package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table. AccountID is NULL for walk-in customers.
type Sale struct {
	SaleID       string          `db:"sale_id"`
	AccountID    *string         `db:"account_id"`
	CustomerName *string         `db:"customer_name"`
	SaleDate     time.Time       `db:"sale_date"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	Total        decimal.Decimal `db:"total"`
	Kind         string          `db:"kind"`
	Status       string          `db:"status"`
	Notes        *string         `db:"notes"`
	AuditFields
}

// SaleItem is a row of the sale_items table.
type SaleItem struct {
	SaleItemID string          `db:"sale_item_id"`
	SaleID     string          `db:"sale_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Subtotal   decimal.Decimal `db:"subtotal"`
}
