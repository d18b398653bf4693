package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company - İlaç üreticisi firma
type Company struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255;not null"`
	Address       string `gorm:"size:255"`
	ContactNumber string `gorm:"size:15"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Formula - Etken madde / formül
type Formula struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Distribution - Dağıtıcı (ecza deposu). Balance sadece ledger üzerinden değişir.
type Distribution struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:255;not null"`
	Address       string          `gorm:"size:255"`
	ContactNumber string          `gorm:"size:15"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Customer - Veresiye defteri tutulan müşteri. Balance sadece ledger üzerinden değişir.
type Customer struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:255;not null"`
	Address       string          `gorm:"size:255"`
	ContactNumber string          `gorm:"size:15"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
