package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Sales read UnitPrice at creation time and freeze it.
type Product struct {
	ProductID   string          `json:"productID"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}
