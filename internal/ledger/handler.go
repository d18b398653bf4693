package ledger

import (
	"fmt"
	"strconv"

	"eczane-backend/internal/audit"
	"eczane-backend/internal/auth"
	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CustomerTransactionResponse struct {
	ID           uint            `json:"id"`
	CustomerID   *uint           `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	OrderID      *uint           `json:"order_id"`
	Type         string          `json:"type"`
	TypeLabel    string          `json:"type_label"`
	Amount       decimal.Decimal `json:"amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"created_at"`
}

type DistributionTransactionResponse struct {
	ID               uint            `json:"id"`
	DistributionID   uint            `json:"distribution_id"`
	DistributionName string          `json:"distribution_name,omitempty"`
	Type             string          `json:"type"`
	TypeLabel        string          `json:"type_label"`
	Amount           decimal.Decimal `json:"amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Description      string          `json:"description"`
	Date             string          `json:"date"`
	CreatedAt        string          `json:"created_at"`
}

// POST /api/customer-transactions
func CreateCustomerTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerTransactionInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		record, err := RecordCustomerTransaction(database.DB, body, userID)
		if err != nil {
			return err
		}

		writeLedgerAudit(c, "customer_transaction", record.ID,
			fmt.Sprintf("Müşteri hareketi: %s %s", models.TransactionTypeLabels[record.Type], record.Amount.StringFixed(2)), record)

		return c.Status(fiber.StatusCreated).JSON(toCustomerTxResponse(record, ""))
	}
}

// GET /api/customer-transactions
func ListCustomerTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.CustomerTransaction{}).Preload("Customer")
		if v := c.Query("customer_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "customer_id sayısal olmalı")
			}
			query = query.Where("customer_id = ?", id)
		}
		if v := c.Query("order_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "order_id sayısal olmalı")
			}
			query = query.Where("order_id = ?", id)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler sayılamadı")
		}

		var list []models.CustomerTransaction
		if err := query.Order("date DESC, id DESC").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]CustomerTransactionResponse, 0, len(list))
		for i := range list {
			name := ""
			if list[i].Customer != nil {
				name = list[i].Customer.Name
			}
			resp = append(resp, toCustomerTxResponse(&list[i], name))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

// POST /api/distribution-transactions
func CreateDistributionTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DistributionTransactionInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		record, err := RecordDistributionTransaction(database.DB, body, userID)
		if err != nil {
			return err
		}

		writeLedgerAudit(c, "distribution_transaction", record.ID,
			fmt.Sprintf("Depo hareketi: %s %s", models.TransactionTypeLabels[record.Type], record.Amount.StringFixed(2)), record)

		return c.Status(fiber.StatusCreated).JSON(toDistributionTxResponse(record, ""))
	}
}

// GET /api/distribution-transactions
func ListDistributionTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.DistributionTransaction{}).Preload("Distribution")
		if v := c.Query("distribution_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "distribution_id sayısal olmalı")
			}
			query = query.Where("distribution_id = ?", id)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler sayılamadı")
		}

		var list []models.DistributionTransaction
		if err := query.Order("date DESC, id DESC").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]DistributionTransactionResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toDistributionTxResponse(&list[i], list[i].Distribution.Name))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

func toCustomerTxResponse(t *models.CustomerTransaction, customerName string) CustomerTransactionResponse {
	return CustomerTransactionResponse{
		ID:           t.ID,
		CustomerID:   t.CustomerID,
		CustomerName: customerName,
		OrderID:      t.OrderID,
		Type:         string(t.Type),
		TypeLabel:    models.TransactionTypeLabels[t.Type],
		Amount:       t.Amount,
		TotalAmount:  t.TotalAmount,
		Description:  t.Description,
		Date:         t.Date.Format("2006-01-02"),
		CreatedAt:    t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toDistributionTxResponse(t *models.DistributionTransaction, distName string) DistributionTransactionResponse {
	return DistributionTransactionResponse{
		ID:               t.ID,
		DistributionID:   t.DistributionID,
		DistributionName: distName,
		Type:             string(t.Type),
		TypeLabel:        models.TransactionTypeLabels[t.Type],
		Amount:           t.Amount,
		TotalAmount:      t.TotalAmount,
		Description:      t.Description,
		Date:             t.Date.Format("2006-01-02"),
		CreatedAt:        t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Yardımcı: Kullanıcı bilgisiyle audit kaydı yaz
func writeLedgerAudit(c *fiber.Ctx, entityType string, entityID uint, description string, after any) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    user.Name,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      models.AuditActionCreate,
		Description: description,
		After:       after,
	})
}
