package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus - Sipariş durumu
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatusLabels - Kod -> görünen ad eşlemesi
var OrderStatusLabels = map[OrderStatus]string{
	OrderPending:   "Beklemede",
	OrderCompleted: "Tamamlandı",
	OrderCancelled: "İptal Edildi",
}

func (s OrderStatus) Valid() bool {
	_, ok := OrderStatusLabels[s]
	return ok
}

// AllowedTransitions - Durum makinesi: pending -> completed -> cancelled
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderCompleted},
	OrderCompleted: {OrderCancelled},
	OrderCancelled: {},
}

// CanTransition - from durumundan to durumuna geçiş serbest mi
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID             uint            `gorm:"primaryKey"`
	CustomerID     *uint           `gorm:"index"`
	Customer       *Customer       `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Status         OrderStatus     `gorm:"size:20;not null;index"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAfterDisc decimal.Decimal `gorm:"type:numeric(12,2);not null"` // iskonto sonrası tutar
	CreatedByID    *uint
	CreatedBy      *User        `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	StockOrders    []StockOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StockOrder - Sipariş kalemi: bir partiden istenen miktar
type StockOrder struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null"`
	StockID   uint  `gorm:"index;not null"`
	Stock     Stock `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
	Quantity  int   `gorm:"not null"`
	CreatedAt time.Time
}
