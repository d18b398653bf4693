package inventory_test

import (
	"strings"
	"testing"

	"eczane-backend/internal/inventory"

	"github.com/stretchr/testify/assert"
)

func TestValidateBarcode(t *testing.T) {
	tests := []struct {
		name    string
		barcode string
		wantErr bool
	}{
		{"sayısal barkod", "869123456789", false},
		{"harf ve işaret", "ABC-123/xyz", false},
		{"boşluk geçerli", "AB 12", false},
		{"128 karakter sınırı", strings.Repeat("7", 128), false},
		{"boş barkod", "", true},
		{"129 karakter", strings.Repeat("7", 129), true},
		{"türkçe karakter", "barkod-ş", true},
		{"kontrol karakteri", "abc\tdef", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inventory.ValidateBarcode(tt.barcode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBarcodeFromID(t *testing.T) {
	assert.Equal(t, "000000000042", inventory.BarcodeFromID(42))
	assert.Equal(t, "000000000001", inventory.BarcodeFromID(1))
	assert.Equal(t, "001234567890", inventory.BarcodeFromID(1234567890))

	// Üretilen barkod her zaman kendi doğrulamasından geçmeli
	assert.NoError(t, inventory.ValidateBarcode(inventory.BarcodeFromID(7)))
}
