package ledger_test

import (
	"testing"

	"eczane-backend/internal/ledger"
	"eczane-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceDelta(t *testing.T) {
	amount := decimal.RequireFromString("100.00")

	tests := []struct {
		name            string
		txType          models.TransactionType
		forDistribution bool
		want            string
	}{
		{"müşteriden ödeme alındı", models.TxPaymentReceived, false, "100"},
		{"müşteriye ödeme yapıldı", models.TxPaymentMade, false, "-100"},
		{"müşteri mal aldı, borçlandı", models.TxProductsReceived, false, "100"},
		{"depoya ödeme alındı", models.TxPaymentReceived, true, "100"},
		{"depoya ödeme yapıldı", models.TxPaymentMade, true, "-100"},
		{"depodan mal alındı, borçlanıldı", models.TxProductsReceived, true, "-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.BalanceDelta(tt.txType, amount, tt.forDistribution)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestBalanceDelta_InvalidType(t *testing.T) {
	_, err := ledger.BalanceDelta(models.TransactionType("refund"), decimal.NewFromInt(10), false)
	assert.Error(t, err)
}
