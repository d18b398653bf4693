package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType - Defter hareketi tipi
type TransactionType string

const (
	TxPaymentReceived  TransactionType = "payment_received"
	TxPaymentMade      TransactionType = "payment_made"
	TxProductsReceived TransactionType = "products_received"
)

// TransactionTypeLabels - Kod -> görünen ad eşlemesi
var TransactionTypeLabels = map[TransactionType]string{
	TxPaymentReceived:  "Ödeme Alındı",
	TxPaymentMade:      "Ödeme Yapıldı",
	TxProductsReceived: "Mal Alındı",
}

func (t TransactionType) Valid() bool {
	_, ok := TransactionTypeLabels[t]
	return ok
}

// CustomerTransaction - Müşteri veresiye defteri hareketi, bir siparişe bağlanabilir
type CustomerTransaction struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  *uint           `gorm:"index"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	OrderID     *uint           `gorm:"index"`
	Order       *Order          `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL"`
	Type        TransactionType `gorm:"size:20;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"` // hareket anındaki toplam borç
	Description string          `gorm:"size:500"`
	Date        time.Time       `gorm:"index;not null"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DistributionTransaction - Depo cari hareketi
type DistributionTransaction struct {
	ID             uint            `gorm:"primaryKey"`
	DistributionID uint            `gorm:"index;not null"`
	Distribution   Distribution    `gorm:"foreignKey:DistributionID"`
	Type           TransactionType `gorm:"size:20;not null;index"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description    string          `gorm:"size:500"`
	Date           time.Time       `gorm:"index;not null"`
	CreatedByID    *uint
	CreatedBy      *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
