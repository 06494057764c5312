package domain_test

import (
	"testing"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_CanPurchase(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		amount  decimal.Decimal
		want    bool
	}{
		{
			name:    "exactly the available credit",
			account: domain.Account{CreditLimit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(40), Status: domain.AccountActive},
			amount:  decimal.NewFromInt(60),
			want:    true,
		},
		{
			name:    "one cent over",
			account: domain.Account{CreditLimit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(40), Status: domain.AccountActive},
			amount:  decimal.RequireFromString("60.01"),
			want:    false,
		},
		{
			name:    "suspended account",
			account: domain.Account{CreditLimit: decimal.NewFromInt(100), Status: domain.AccountSuspended},
			amount:  decimal.NewFromInt(1),
			want:    false,
		},
		{
			name:    "limit lowered below balance",
			account: domain.Account{CreditLimit: decimal.NewFromInt(10), Balance: decimal.NewFromInt(40), Status: domain.AccountActive},
			amount:  decimal.NewFromInt(1),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.CanPurchase(tt.amount))
		})
	}
}

func TestAccount_AvailableCreditIsDerived(t *testing.T) {
	acc := domain.Account{CreditLimit: decimal.NewFromInt(500), Balance: decimal.RequireFromString("120.25")}
	assert.True(t, acc.AvailableCredit().Equal(decimal.RequireFromString("379.75")))

	acc.Balance = acc.Balance.Add(decimal.NewFromInt(100))
	assert.True(t, acc.AvailableCredit().Equal(decimal.RequireFromString("279.75")))
	assert.True(t, acc.HasPendingBalance())
}

func TestIsWholeCents(t *testing.T) {
	tests := map[string]bool{
		"0":       true,
		"10":      true,
		"10.5":    true,
		"10.55":   true,
		"10.550":  true,
		"-3.20":   true,
		"0.005":   false,
		"0.004":   false,
		"100.001": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.IsWholeCents(decimal.RequireFromString(in)), in)
	}
}
