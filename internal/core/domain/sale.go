package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleKind is how the sale is settled.
type SaleKind string

const (
	SaleCredit SaleKind = "CREDIT"
	SaleCash   SaleKind = "CASH"
)

// SaleStatus is the lifecycle status of a sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SalePartial   SaleStatus = "PARTIAL"
	SalePaid      SaleStatus = "PAID"
	SaleCancelled SaleStatus = "CANCELLED"
)

// saleTransitions lists, for every status, the statuses it may move to.
// PAID and CANCELLED are terminal.
var saleTransitions = map[SaleStatus]map[SaleStatus]bool{
	SalePending:   {SalePaid: true, SalePartial: true, SaleCancelled: true},
	SalePartial:   {SalePaid: true, SaleCancelled: true},
	SalePaid:      {},
	SaleCancelled: {},
}

// CanTransitionTo reports whether the sale may move from s to next.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	return saleTransitions[s][next]
}

// IsValid reports whether s is a known sale status.
func (s SaleStatus) IsValid() bool {
	_, ok := saleTransitions[s]
	return ok
}

// IsValid reports whether k is a known sale kind.
func (k SaleKind) IsValid() bool {
	return k == SaleCredit || k == SaleCash
}

// Sale is one transaction selling one or more line items.
// AccountID is empty for walk-in customers, in which case CustomerName is set.
type Sale struct {
	SaleID       string          `json:"saleID"`
	AccountID    string          `json:"accountID,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	SaleDate     time.Time       `json:"saleDate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	Kind         SaleKind        `json:"kind"`
	Status       SaleStatus      `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	Items        []SaleItem      `json:"items"`
	AuditFields
}

// SaleItem is quantity x product at the unit price frozen when the sale was created.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"`
	SaleID     string          `json:"saleID"`
	ProductID  string          `json:"productID"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// NewSaleItem prices a line item from the catalog product.
func NewSaleItem(id, saleID string, product Product, quantity int) SaleItem {
	return SaleItem{
		SaleItemID: id,
		SaleID:     saleID,
		ProductID:  product.ProductID,
		Quantity:   quantity,
		UnitPrice:  product.UnitPrice,
		Subtotal:   product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// HasAccount reports whether the sale is attached to a customer account.
func (s Sale) HasAccount() bool {
	return s.AccountID != ""
}

// ItemsTotal sums the line-item subtotals.
func (s Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// RecalculateTotals sets subtotal and total from the line items. No tax or discount is modelled.
func (s *Sale) RecalculateTotals() {
	s.Subtotal = s.ItemsTotal()
	s.Total = s.Subtotal
}

// CanModify reports whether the sale may still be edited.
func (s Sale) CanModify() bool {
	return s.Status == SalePending
}

// CanCancel reports whether the sale may still be cancelled.
func (s Sale) CanCancel() bool {
	return s.Status.CanTransitionTo(SaleCancelled)
}

// SaleFilter narrows sale listings. Zero values mean "no filter".
type SaleFilter struct {
	AccountID    string
	Kind         SaleKind
	Status       SaleStatus
	From         *time.Time
	To           *time.Time
	MinTotal     *decimal.Decimal
	MaxTotal     *decimal.Decimal
	CustomerName string
	Limit        int
	Offset       int
}
