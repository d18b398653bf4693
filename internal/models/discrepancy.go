package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyType - Satış dışı stok/nakit hareketi tipi
type DiscrepancyType string

const (
	DiscLost               DiscrepancyType = "lost"
	DiscDamaged            DiscrepancyType = "damaged"
	DiscExpired            DiscrepancyType = "expired"
	DiscDonated            DiscrepancyType = "donated"
	DiscFreeGiveaway       DiscrepancyType = "free_giveaway"
	DiscReturnedShortExpiry DiscrepancyType = "returned_short_expiry"
	DiscHomeExpenseCash    DiscrepancyType = "home_expense_cash"
	DiscRecoveredCash      DiscrepancyType = "recovered_cash_approval"
)

// DiscrepancyTypeLabels - Kod -> görünen ad eşlemesi
var DiscrepancyTypeLabels = map[DiscrepancyType]string{
	DiscLost:                "Kayıp",
	DiscDamaged:             "Hasarlı",
	DiscExpired:             "Miadı Dolmuş",
	DiscDonated:             "Bağışlanan",
	DiscFreeGiveaway:        "Ücretsiz Verilen",
	DiscReturnedShortExpiry: "Miadı Yaklaşan İade",
	DiscHomeExpenseCash:     "Ev Harcaması (Nakit)",
	DiscRecoveredCash:       "Tahsil Edilen Nakit (Onaylı)",
}

func (t DiscrepancyType) Label() string {
	return DiscrepancyTypeLabels[t]
}

func (t DiscrepancyType) Valid() bool {
	_, ok := DiscrepancyTypeLabels[t]
	return ok
}

// StockBased - Tip bir partinin tüketimini mi anlatıyor (stok+miktar ister),
// yoksa nakit hareketi mi (tutar+depo ister)
func (t DiscrepancyType) StockBased() bool {
	switch t {
	case DiscLost, DiscDamaged, DiscExpired, DiscDonated, DiscFreeGiveaway, DiscReturnedShortExpiry:
		return true
	}
	return false
}

// InventoryDiscrepancy - Satış dışı hareket kaydı. Stok miktarına dokunmaz,
// sadece kayıt tutar; miktar düzeltmeleri sipariş motorunun işidir.
type InventoryDiscrepancy struct {
	ID             uint            `gorm:"primaryKey"`
	Type           DiscrepancyType `gorm:"size:30;not null;index"`
	StockID        *uint           `gorm:"index"`
	Stock          *Stock          `gorm:"foreignKey:StockID;constraint:OnDelete:SET NULL"`
	Quantity       *int
	Amount         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	DistributionID *uint            `gorm:"index"`
	Distribution   *Distribution    `gorm:"foreignKey:DistributionID;constraint:OnDelete:SET NULL"`
	Note           string           `gorm:"size:500"`
	RecordedByID   *uint
	RecordedBy     *User `gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
