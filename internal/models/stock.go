package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock - Tek seferde girilen parti (lot). Miktarı sadece sipariş motoru değiştirir.
type Stock struct {
	ID            uint            `gorm:"primaryKey"`
	Barcode       string          `gorm:"size:128;uniqueIndex;not null"`
	Qty           int             `gorm:"not null"`
	ProductID     uint            `gorm:"index;not null"`
	Product       Product         `gorm:"foreignKey:ProductID"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"` // birim satış fiyatı
	PurchasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"` // birim alış fiyatı
	ExpiryDate    *time.Time      `gorm:"type:date;index"`
	BoughtFromID  *uint           `gorm:"index"`
	BoughtFrom    *Distribution   `gorm:"foreignKey:BoughtFromID;constraint:OnDelete:SET NULL"`
	AddedByID     *uint
	AddedBy       *User     `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time `gorm:"index"` // giriş tarihi
	UpdatedAt     time.Time
}
