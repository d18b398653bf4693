package inventory_test

import (
	"testing"
	"time"

	"eczane-backend/internal/inventory"

	"github.com/stretchr/testify/assert"
)

func TestRequiredQty(t *testing.T) {
	tests := []struct {
		name     string
		avgQty   int
		totalQty int
		want     int
	}{
		{"eksik stok", 10, 3, 7},
		{"tam stok", 10, 10, 0},
		{"fazla stok", 10, 15, 0},
		{"hedef yok", 0, 5, 0},
		{"hiç stok yok", 8, 0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.RequiredQty(tt.avgQty, tt.totalQty))
		})
	}
}

func TestRequiredLowQty(t *testing.T) {
	tests := []struct {
		name     string
		avgQty   int
		totalQty int
		want     int
	}{
		// hedef 10, yumuşak eşik 8
		{"eşiğin altında", 10, 3, 5},
		{"eşikte", 10, 8, 0},
		{"eşiğin üstünde", 10, 9, 0},
		// hedef 5'in altında yumuşak eşik uygulanmaz
		{"küçük hedef eksik", 4, 1, 3},
		{"küçük hedef tam", 4, 4, 0},
		{"hedef yok", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.RequiredLowQty(tt.avgQty, tt.totalQty))
		})
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, inventory.IsActive(1))
	assert.False(t, inventory.IsActive(0))
}

func TestBucketFor(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	horizonDays := 180

	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name   string
		expiry *time.Time
		want   inventory.ExpiryBucket
	}{
		{"miatsız parti", nil, inventory.BucketOK},
		{"dün doldu", date(2026, 8, 31), inventory.BucketExpired},
		{"bugün doluyor", date(2026, 9, 1), inventory.BucketShortExpired},
		{"ufuk içinde", date(2026, 12, 1), inventory.BucketShortExpired},
		{"ufkun son günü", date(2027, 2, 27), inventory.BucketShortExpired},
		{"ufuk günü", date(2027, 2, 28), inventory.BucketOK},
		{"uzak miat", date(2028, 1, 1), inventory.BucketOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.BucketFor(tt.expiry, asOf, horizonDays))
		})
	}
}

// Her parti tam olarak bir kovaya düşmeli
func TestBucketFor_Partition(t *testing.T) {
	asOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for days := -400; days <= 400; days += 7 {
		expiry := asOf.AddDate(0, 0, days)
		bucket := inventory.BucketFor(&expiry, asOf, 180)
		switch {
		case days < 0:
			assert.Equal(t, inventory.BucketExpired, bucket, "gün %d", days)
		case days < 180:
			assert.Equal(t, inventory.BucketShortExpired, bucket, "gün %d", days)
		default:
			assert.Equal(t, inventory.BucketOK, bucket, "gün %d", days)
		}
	}
}
