package discrepancy_test

import (
	"testing"

	"eczane-backend/internal/discrepancy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	uintp := func(v uint) *uint { return &v }
	intp := func(v int) *int { return &v }
	decp := func(s string) *decimal.Decimal {
		v := decimal.RequireFromString(s)
		return &v
	}

	tests := []struct {
		name    string
		in      discrepancy.Input
		wantErr bool
	}{
		{
			"kayıp kaydı geçerli",
			discrepancy.Input{Type: "lost", StockID: uintp(1), Quantity: intp(2)},
			false,
		},
		{
			"hasar kaydı tutarlı",
			discrepancy.Input{Type: "damaged", StockID: uintp(1), Quantity: intp(1), Amount: decp("15.50")},
			false,
		},
		{
			"miat kaydı geçerli",
			discrepancy.Input{Type: "expired", StockID: uintp(3), Quantity: intp(10)},
			false,
		},
		{
			"kısa miat iadesi geçerli",
			discrepancy.Input{Type: "returned_short_expiry", StockID: uintp(3), Quantity: intp(4)},
			false,
		},
		{
			"stok tipi parti olmadan",
			discrepancy.Input{Type: "lost", Quantity: intp(2)},
			true,
		},
		{
			"stok tipi miktar olmadan",
			discrepancy.Input{Type: "donated", StockID: uintp(1)},
			true,
		},
		{
			"stok tipinde sıfır miktar",
			discrepancy.Input{Type: "free_giveaway", StockID: uintp(1), Quantity: intp(0)},
			true,
		},
		{
			"stok tipinde depo verilemez",
			discrepancy.Input{Type: "lost", StockID: uintp(1), Quantity: intp(2), DistributionID: uintp(5)},
			true,
		},
		{
			"nakit kaydı geçerli",
			discrepancy.Input{Type: "home_expense_cash", Amount: decp("120.00"), DistributionID: uintp(5)},
			false,
		},
		{
			"tahsilat kaydı geçerli",
			discrepancy.Input{Type: "recovered_cash_approval", Amount: decp("75.00"), DistributionID: uintp(2)},
			false,
		},
		{
			"nakit tipi tutar olmadan",
			discrepancy.Input{Type: "home_expense_cash", DistributionID: uintp(5)},
			true,
		},
		{
			"nakit tipinde sıfır tutar",
			discrepancy.Input{Type: "home_expense_cash", Amount: decp("0"), DistributionID: uintp(5)},
			true,
		},
		{
			"nakit tipi depo olmadan",
			discrepancy.Input{Type: "recovered_cash_approval", Amount: decp("75.00")},
			true,
		},
		{
			"nakit tipinde parti verilemez",
			discrepancy.Input{Type: "home_expense_cash", Amount: decp("50.00"), DistributionID: uintp(5), StockID: uintp(1)},
			true,
		},
		{
			"nakit tipinde miktar verilemez",
			discrepancy.Input{Type: "home_expense_cash", Amount: decp("50.00"), DistributionID: uintp(5), Quantity: intp(3)},
			true,
		},
		{
			"bilinmeyen tip",
			discrepancy.Input{Type: "misplaced", StockID: uintp(1), Quantity: intp(1)},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := discrepancy.Validate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImpliedAmount(t *testing.T) {
	got := discrepancy.ImpliedAmount(3, decimal.RequireFromString("12.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("37.50")), "got %s", got)

	got = discrepancy.ImpliedAmount(1, decimal.Zero)
	assert.True(t, got.IsZero())
}
