package dto

import (
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a credit account for a user.
type CreateAccountRequest struct {
	UserID         string               `json:"userID" binding:"required"`
	CreditLimit    decimal.Decimal      `json:"creditLimit"`
	InitialBalance decimal.Decimal      `json:"initialBalance"`
	OpeningDate    *time.Time           `json:"openingDate"` // Optional, defaults to today
	Status         domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED CLOSED"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Limit and status have dedicated endpoints so they always leave an audit trail.
type UpdateAccountRequest struct {
	OpeningDate *time.Time `json:"openingDate" binding:"required"`
}

// SetCreditLimitRequest carries the new limit.
type SetCreditLimitRequest struct {
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// LedgerEntryRequest is a manual charge or credit posted by an administrator.
type LedgerEntryRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Concept       string          `json:"concept" binding:"required,max=255"`
	ReferenceKind string          `json:"referenceKind" binding:"omitempty,oneof=SALE PAYMENT ADJUSTMENT"`
	ReferenceID   string          `json:"referenceID" binding:"required_with=ReferenceKind"`
}

// ToLedgerEntry converts the request for the account engine.
func (r LedgerEntryRequest) ToLedgerEntry(accountID, actingUserID string) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		AccountID:    accountID,
		Amount:       r.Amount,
		Concept:      r.Concept,
		ActingUserID: actingUserID,
	}
	if r.ReferenceKind != "" {
		entry.Reference = &domain.MovementReference{Kind: domain.ReferenceKind(r.ReferenceKind), ID: r.ReferenceID}
	}
	return entry
}

// AccountResponse defines the data returned for an account.
// AvailableCredit is derived at response time.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	UserID          string               `json:"userID"`
	CreditLimit     decimal.Decimal      `json:"creditLimit"`
	Balance         decimal.Decimal      `json:"balance"`
	AvailableCredit decimal.Decimal      `json:"availableCredit"`
	OpeningDate     time.Time            `json:"openingDate"`
	Status          domain.AccountStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		UserID:          acc.UserID,
		CreditLimit:     acc.CreditLimit,
		Balance:         acc.Balance,
		AvailableCredit: acc.AvailableCredit(),
		OpeningDate:     acc.OpeningDate,
		Status:          acc.Status,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc) // Reuse the single converter
	}
	return res
}

// AvailableCreditResponse is returned by the available-credit endpoints.
type AvailableCreditResponse struct {
	AccountID       string          `json:"accountID"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}

// CanPurchaseResponse is returned by the can-purchase endpoint.
type CanPurchaseResponse struct {
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	CanPurchase bool            `json:"canPurchase"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Status     string `form:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED CLOSED"`
	MinLimit   string `form:"minLimit" binding:"omitempty,numeric"`
	MaxLimit   string `form:"maxLimit" binding:"omitempty,numeric"`
	MinBalance string `form:"minBalance" binding:"omitempty,numeric"`
	MaxBalance string `form:"maxBalance" binding:"omitempty,numeric"`
	Limit      int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts query parameters to a domain filter. Parameters have
// already passed the numeric check, so parse failures are ignored.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	return domain.AccountFilter{
		Status:     domain.AccountStatus(p.Status),
		MinLimit:   parseOptionalDecimal(p.MinLimit),
		MaxLimit:   parseOptionalDecimal(p.MaxLimit),
		MinBalance: parseOptionalDecimal(p.MinBalance),
		MaxBalance: parseOptionalDecimal(p.MaxBalance),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
}

func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
