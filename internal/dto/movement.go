package dto

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListMovementsParams defines query parameters for paging through an account's movements.
type ListMovementsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// MovementResponse mirrors domain.Movement.
type MovementResponse struct {
	MovementID    string              `json:"movementID"`
	AccountID     string              `json:"accountID"`
	Kind          domain.MovementKind `json:"kind"`
	Concept       string              `json:"concept"`
	Amount        decimal.Decimal     `json:"amount"`
	BalanceBefore decimal.Decimal     `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal     `json:"balanceAfter"`
	ReferenceKind string              `json:"referenceKind,omitempty"`
	ReferenceID   string              `json:"referenceID,omitempty"`
	UserID        string              `json:"userID"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ListMovementsResponse is one page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO
func ToMovementResponse(m *domain.Movement) MovementResponse {
	res := MovementResponse{
		MovementID:    m.MovementID,
		AccountID:     m.AccountID,
		Kind:          m.Kind,
		Concept:       m.Concept,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
	if m.Reference != nil {
		res.ReferenceKind = string(m.Reference.Kind)
		res.ReferenceID = m.Reference.ID
	}
	return res
}

// ToListMovementResponse converts a slice of domain.Movement to MovementResponse DTOs
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return res
}

// StatementParams selects the statement date range.
type StatementParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// DayParams selects a single day; it defaults to today when empty.
type DayParams struct {
	Date time.Time `form:"date" time_format:"2006-01-02"`
}

// MonthParams selects a calendar month.
type MonthParams struct {
	Year  int `form:"year" binding:"required,min=2000,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// BalanceResponse returns the persisted balance of an account.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
