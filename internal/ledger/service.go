package ledger

import (
	"fmt"
	"time"

	"eczane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceDelta - Hareketin bakiyeye etkisi. Ödeme alındıysa bakiye artar,
// ödeme yapıldıysa azalır. Mal alımında müşteri borçlanır (+), depoya ise
// borçlanılır (−).
func BalanceDelta(t models.TransactionType, amount decimal.Decimal, forDistribution bool) (decimal.Decimal, error) {
	switch t {
	case models.TxPaymentReceived:
		return amount, nil
	case models.TxPaymentMade:
		return amount.Neg(), nil
	case models.TxProductsReceived:
		if forDistribution {
			return amount.Neg(), nil
		}
		return amount, nil
	}
	return decimal.Zero, fmt.Errorf("geçersiz transaction_type: %s", t)
}

type CustomerTransactionInput struct {
	OrderID     uint            `json:"order_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // "2026-09-01", boşsa bugün
}

type DistributionTransactionInput struct {
	DistributionID uint            `json:"distribution_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           string          `json:"date"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// RecordCustomerTransaction - Defter satırı ve bakiye güncellemesi tek
// transaction'da yazılır; bakiye başka hiçbir yoldan değişmez.
func RecordCustomerTransaction(db *gorm.DB, in CustomerTransactionInput, userID uint) (*models.CustomerTransaction, error) {
	txType := models.TransactionType(in.Type)
	if !txType.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz transaction_type")
	}
	if !in.Amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount pozitif olmalı")
	}
	if in.OrderID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "order_id zorunlu")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}

	delta, err := BalanceDelta(txType, in.Amount, false)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var record models.CustomerTransaction

	err = db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", in.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if order.CustomerID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Siparişin bağlı olduğu müşteri yok")
		}

		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", *order.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		newBalance := customer.Balance.Add(delta)
		if err := tx.Model(&customer).Update("balance", newBalance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiye güncellenemedi")
		}

		record = models.CustomerTransaction{
			CustomerID:  order.CustomerID,
			OrderID:     &order.ID,
			Type:        txType,
			Amount:      in.Amount,
			TotalAmount: newBalance,
			Description: in.Description,
			Date:        date,
			CreatedByID: &userID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// RecordDistributionTransaction - Depo cari hareketi, bakiyeyle birlikte
// tek transaction'da yazılır.
func RecordDistributionTransaction(db *gorm.DB, in DistributionTransactionInput, userID uint) (*models.DistributionTransaction, error) {
	txType := models.TransactionType(in.Type)
	if !txType.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz transaction_type")
	}
	if !in.Amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount pozitif olmalı")
	}
	if in.DistributionID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "distribution_id zorunlu")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}

	delta, err := BalanceDelta(txType, in.Amount, true)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var record models.DistributionTransaction

	err = db.Transaction(func(tx *gorm.DB) error {
		var dist models.Distribution
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&dist, "id = ?", in.DistributionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		newBalance := dist.Balance.Add(delta)
		if err := tx.Model(&dist).Update("balance", newBalance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiye güncellenemedi")
		}

		record = models.DistributionTransaction{
			DistributionID: dist.ID,
			Type:           txType,
			Amount:         in.Amount,
			TotalAmount:    newBalance,
			Description:    in.Description,
			Date:           date,
			CreatedByID:    &userID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}
