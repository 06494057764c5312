package dto

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one requested line. Prices come from the catalog, never the client.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest defines the data needed to record a sale.
type CreateSaleRequest struct {
	AccountID    string            `json:"accountID"`
	CustomerName string            `json:"customerName" binding:"max=150"`
	Kind         domain.SaleKind   `json:"kind" binding:"required,oneof=CREDIT CASH"`
	Notes        string            `json:"notes"`
	Items        []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleRequest defines the editable fields of a PENDING sale.
type UpdateSaleRequest struct {
	CustomerName *string `json:"customerName" binding:"omitempty,max=150"`
	Notes        *string `json:"notes"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	AccountID    string    `form:"accountID"`
	Kind         string    `form:"kind" binding:"omitempty,oneof=CREDIT CASH"`
	Status       string    `form:"status" binding:"omitempty,oneof=PENDING PARTIAL PAID CANCELLED"`
	From         time.Time `form:"from" time_format:"2006-01-02"`
	To           time.Time `form:"to" time_format:"2006-01-02"`
	MinTotal     string    `form:"minTotal" binding:"omitempty,numeric"`
	MaxTotal     string    `form:"maxTotal" binding:"omitempty,numeric"`
	CustomerName string    `form:"customerName"`
	Limit        int       `form:"limit,default=20" binding:"min=1,max=100"`
	Offset       int       `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts query parameters to a domain filter. Dates cover whole days.
func (p ListSalesParams) ToFilter() domain.SaleFilter {
	f := domain.SaleFilter{
		AccountID:    p.AccountID,
		Kind:         domain.SaleKind(p.Kind),
		Status:       domain.SaleStatus(p.Status),
		MinTotal:     parseOptionalDecimal(p.MinTotal),
		MaxTotal:     parseOptionalDecimal(p.MaxTotal),
		CustomerName: p.CustomerName,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
	if !p.From.IsZero() {
		from := domain.StartOfDay(p.From)
		f.From = &from
	}
	if !p.To.IsZero() {
		to := domain.EndOfDay(p.To)
		f.To = &to
	}
	return f
}

// SaleItemResponse mirrors domain.SaleItem.
type SaleItemResponse struct {
	SaleItemID string          `json:"saleItemID"`
	ProductID  string          `json:"productID"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID       string             `json:"saleID"`
	AccountID    string             `json:"accountID,omitempty"`
	CustomerName string             `json:"customerName,omitempty"`
	SaleDate     time.Time          `json:"saleDate"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Total        decimal.Decimal    `json:"total"`
	Kind         domain.SaleKind    `json:"kind"`
	Status       domain.SaleStatus  `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Items        []SaleItemResponse `json:"items,omitempty"`
	CreatedBy    string             `json:"createdBy"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			SaleItemID: it.SaleItemID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		}
	}
	return SaleResponse{
		SaleID:       s.SaleID,
		AccountID:    s.AccountID,
		CustomerName: s.CustomerName,
		SaleDate:     s.SaleDate,
		Subtotal:     s.Subtotal,
		Total:        s.Total,
		Kind:         s.Kind,
		Status:       s.Status,
		Notes:        s.Notes,
		Items:        items,
		CreatedBy:    s.CreatedBy,
	}
}

// ToListSaleResponse converts a slice of domain.Sale to SaleResponse DTOs
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i, s := range sales {
		res[i] = ToSaleResponse(&s)
	}
	return res
}

// SaleCheckResponse answers can-modify / can-cancel.
type SaleCheckResponse struct {
	SaleID  string `json:"saleID"`
	Allowed bool   `json:"allowed"`
}
