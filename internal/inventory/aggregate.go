package inventory

import (
	"math"
	"time"

	"eczane-backend/internal/models"

	"gorm.io/gorm"
)

// Eşikler: hedef stokun %80'i altı "düşük", %40'ı altı "çok düşük".
// Hedefi 5'in altındaki ürünlerde yumuşak eşik uygulanmaz; yoksa sürekli
// yanlış "düşük" uyarısı üretirler.
const (
	LowThreshold     = 0.8
	VeryLowThreshold = 0.4
	SmallStockCutoff = 5
)

// ExpiryBucket - Bir partinin miat durumu
type ExpiryBucket string

const (
	BucketExpired      ExpiryBucket = "expired"
	BucketShortExpired ExpiryBucket = "shortExpired"
	BucketOK           ExpiryBucket = "ok"
)

// BucketFor - Parti asOf gününde hangi miat kovasında. Miadı olmayan parti
// hiçbir zaman expired sayılmaz.
func BucketFor(expiry *time.Time, asOf time.Time, horizonDays int) ExpiryBucket {
	if expiry == nil {
		return BucketOK
	}
	if expiry.Before(asOf) {
		return BucketExpired
	}
	if expiry.Before(asOf.AddDate(0, 0, horizonDays)) {
		return BucketShortExpired
	}
	return BucketOK
}

// RequiredQty - Hedef seviyeye tamamlamak için gereken miktar
func RequiredQty(avgQty, totalQty int) int {
	if req := avgQty - totalQty; req > 0 {
		return req
	}
	return 0
}

// RequiredLowQty - Yumuşak eşiğe (hedefin %80'i) tamamlamak için gereken miktar.
// Küçük hedefli ürünlerde doğrudan hedefe tamamlanır.
func RequiredLowQty(avgQty, totalQty int) int {
	if avgQty < SmallStockCutoff {
		return RequiredQty(avgQty, totalQty)
	}
	if req := int(math.Floor(float64(avgQty)*LowThreshold)) - totalQty; req > 0 {
		return req
	}
	return 0
}

// IsActive - Hedef stoğu olan ürün aktif sayılır
func IsActive(avgQty int) bool {
	return avgQty > 0
}

// ProductQuantities - Bir ürünün partilerinden türetilen miktarlar
type ProductQuantities struct {
	TotalQty       int `json:"total_qty"`        // miadı geçmemiş (veya miatsız) toplam
	ExpiredQty     int `json:"expired_qty"`      // miadı geçmiş toplam
	ShortExpiryQty int `json:"short_expiry_qty"` // ufuk içinde miadı dolacak toplam
}

// ProductTotals - Verilen ürünler için miktarları tek gruplu sorguyla toplar.
// Satır satır dolaşmak eşzamanlı stok değişiminde yanlış sonuç verir, o yüzden
// toplamlar veritabanında hesaplanır.
func ProductTotals(db *gorm.DB, productIDs []uint, asOf time.Time, horizonDays int) (map[uint]ProductQuantities, error) {
	result := make(map[uint]ProductQuantities, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	horizon := asOf.AddDate(0, 0, horizonDays)

	type totalsRow struct {
		ProductID      uint
		TotalQty       int
		ExpiredQty     int
		ShortExpiryQty int
	}

	var rows []totalsRow
	err := db.Model(&models.Stock{}).
		Select(`product_id,
			COALESCE(SUM(CASE WHEN expiry_date IS NULL OR expiry_date >= ? THEN qty ELSE 0 END), 0) AS total_qty,
			COALESCE(SUM(CASE WHEN expiry_date < ? THEN qty ELSE 0 END), 0) AS expired_qty,
			COALESCE(SUM(CASE WHEN expiry_date >= ? AND expiry_date < ? THEN qty ELSE 0 END), 0) AS short_expiry_qty`,
			asOf, asOf, asOf, horizon).
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		result[r.ProductID] = ProductQuantities{
			TotalQty:       r.TotalQty,
			ExpiredQty:     r.ExpiredQty,
			ShortExpiryQty: r.ShortExpiryQty,
		}
	}
	return result, nil
}

// scopeProductExpiration - Ürün listesini miat kovasına göre daraltır
func scopeProductExpiration(db *gorm.DB, value string, asOf time.Time, horizonDays int) (*gorm.DB, error) {
	horizon := asOf.AddDate(0, 0, horizonDays)

	switch value {
	case "expired":
		return db.Where("EXISTS (SELECT 1 FROM stocks s WHERE s.product_id = products.id AND s.expiry_date < ?)", asOf), nil
	case "shortExpired":
		return db.Where("EXISTS (SELECT 1 FROM stocks s WHERE s.product_id = products.id AND s.expiry_date >= ? AND s.expiry_date < ?)", asOf, horizon), nil
	case "expiredAndShortExpired":
		return db.Where("EXISTS (SELECT 1 FROM stocks s WHERE s.product_id = products.id AND s.expiry_date < ?)", horizon), nil
	default:
		return nil, errInvalidExpiration
	}
}

// scopeProductLowQty - Miadı geçmemiş toplam, eşiğin altında kalan ürünler
func scopeProductLowQty(db *gorm.DB, value string, asOf time.Time) (*gorm.DB, error) {
	var threshold float64
	switch value {
	case "veryLow":
		threshold = VeryLowThreshold
	case "low":
		threshold = LowThreshold
	default:
		return nil, errInvalidLowQty
	}

	return db.Where(
		`(SELECT COALESCE(SUM(s.qty), 0) FROM stocks s
		   WHERE s.product_id = products.id
		     AND (s.expiry_date IS NULL OR s.expiry_date >= ?)) < products.avg_qty * ?`,
		asOf, threshold), nil
}
