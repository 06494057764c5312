package domain_test

import (
	"testing"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSaleStatus_Transitions(t *testing.T) {
	all := []domain.SaleStatus{domain.SalePending, domain.SalePartial, domain.SalePaid, domain.SaleCancelled}
	allowed := map[domain.SaleStatus][]domain.SaleStatus{
		domain.SalePending: {domain.SalePaid, domain.SalePartial, domain.SaleCancelled},
		domain.SalePartial: {domain.SalePaid, domain.SaleCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, domain.SaleStatus("OPEN").IsValid())
}

func TestSale_ModifyAndCancelGuards(t *testing.T) {
	sale := domain.Sale{Status: domain.SalePending}
	assert.True(t, sale.CanModify())
	assert.True(t, sale.CanCancel())

	sale.Status = domain.SalePartial
	assert.False(t, sale.CanModify())
	assert.True(t, sale.CanCancel())

	sale.Status = domain.SalePaid
	assert.False(t, sale.CanModify())
	assert.False(t, sale.CanCancel())
}

func TestSale_RecalculateTotalsFromFrozenPrices(t *testing.T) {
	product := domain.Product{ProductID: "p1", UnitPrice: decimal.RequireFromString("2.50")}
	sale := domain.Sale{SaleID: "s1"}
	sale.Items = append(sale.Items, domain.NewSaleItem("i1", sale.SaleID, product, 4))

	// A later price change does not reach the recorded item.
	product.UnitPrice = decimal.NewFromInt(9)
	sale.Items = append(sale.Items, domain.NewSaleItem("i2", sale.SaleID, product, 1))

	sale.RecalculateTotals()
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(19)))
	assert.True(t, sale.Total.Equal(sale.Subtotal))
}

func TestPaymentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to domain.PaymentStatus
		want     bool
	}{
		{domain.PaymentPending, domain.PaymentApplied, true},
		{domain.PaymentPending, domain.PaymentRejected, true},
		{domain.PaymentRejected, domain.PaymentPending, true},
		{domain.PaymentRejected, domain.PaymentApplied, false},
		{domain.PaymentApplied, domain.PaymentPending, false},
		{domain.PaymentApplied, domain.PaymentRejected, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPayment_AppendObservation(t *testing.T) {
	p := domain.Payment{Status: domain.PaymentRejected}
	p.AppendObservation("Rejected: bounced check")
	p.AppendObservation("Resubmitted")

	assert.Equal(t, "Rejected: bounced check\nResubmitted", p.Observations)
	assert.True(t, p.CanDelete())
}

func TestMovement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       domain.Movement
		wantErr bool
	}{
		{
			name: "charge snapshot",
			m: domain.Movement{AccountID: "a", Kind: domain.MovementCharge, Amount: decimal.NewFromInt(10),
				BalanceBefore: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(15)},
		},
		{
			name: "credit snapshot",
			m: domain.Movement{AccountID: "a", Kind: domain.MovementCredit, Amount: decimal.NewFromInt(5),
				BalanceBefore: decimal.NewFromInt(15), BalanceAfter: decimal.NewFromInt(10)},
		},
		{
			name: "credit with wrong after",
			m: domain.Movement{AccountID: "a", Kind: domain.MovementCredit, Amount: decimal.NewFromInt(5),
				BalanceBefore: decimal.NewFromInt(15), BalanceAfter: decimal.NewFromInt(20)},
			wantErr: true,
		},
		{
			name: "zero charge",
			m: domain.Movement{AccountID: "a", Kind: domain.MovementCharge, Amount: decimal.Zero,
				BalanceBefore: decimal.NewFromInt(1), BalanceAfter: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name: "unknown reference kind",
			m: domain.Movement{AccountID: "a", Kind: domain.MovementAdjustment,
				Reference: &domain.MovementReference{Kind: "INVOICE", ID: "x"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
