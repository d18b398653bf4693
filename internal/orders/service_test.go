package orders_test

import (
	"testing"

	"eczane-backend/internal/orders"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTotalAfterDisc(t *testing.T) {
	d := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name           string
		totalAmount    string
		totalAfterDisc string
		maxPercent     int
		wantErr        bool
	}{
		{"iskonto yok", "100.00", "100.00", 10, false},
		{"sınırda iskonto", "100.00", "90.00", 10, false},
		{"aralık içinde", "250.00", "240.00", 10, false},
		{"alt sınırda", "250.00", "225.00", 10, false},
		{"fazla iskonto", "250.00", "200.00", 10, true},
		{"toplamdan büyük", "100.00", "100.01", 10, true},
		{"sıfır iskonto hakkı, eşit", "80.00", "80.00", 0, false},
		{"sıfır iskonto hakkı, düşük", "80.00", "79.99", 0, true},
		{"kuruşlu sınırın altı", "99.99", "89.99", 10, true},
		{"kuruşlu sınırın üstü", "99.99", "90.00", 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := orders.ValidateTotalAfterDisc(d(tt.totalAmount), d(tt.totalAfterDisc), tt.maxPercent)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Hata mesajı izin verilen alt sınırı söylemeli
func TestValidateTotalAfterDisc_MinInMessage(t *testing.T) {
	total := decimal.NewFromInt(250)
	afterDisc := decimal.NewFromInt(200)

	err := orders.ValidateTotalAfterDisc(total, afterDisc, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "225")
}
