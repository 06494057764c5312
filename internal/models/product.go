package models

import "github.com/shopspring/decimal"

// Product is a row of the products table.
type Product struct {
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
