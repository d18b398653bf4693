package catalog

import (
	"fmt"

	"eczane-backend/internal/audit"
	"eczane-backend/internal/auth"
	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type CustomerResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	ContactNumber string          `json:"contact_number"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"created_at"`
}

func toCustomerResponse(m *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		ContactNumber: m.ContactNumber,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/customers
// Balance istekte yer almaz; bakiye sadece cari hareketlerle değişir
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		customer := models.Customer{
			Name:          body.Name,
			Address:       body.Address,
			ContactNumber: body.ContactNumber,
		}
		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}

		writeCatalogAudit(c, "customer", customer.ID, models.AuditActionCreate,
			fmt.Sprintf("Müşteri eklendi: %s", customer.Name), nil, customer)

		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(&customer))
	}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Customer{})
		if v := c.Query("name"); v != "" {
			query = query.Where("name ILIKE ?", "%"+v+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler sayılamadı")
		}

		var list []models.Customer
		if err := query.Order("name").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		resp := make([]CustomerResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toCustomerResponse(&list[i]))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}
		return c.JSON(toCustomerResponse(&customer))
	}
}

// PUT /api/customers/:id
// Balance bu uçtan güncellenemez
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}
		before := customer

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		customer.Name = body.Name
		customer.Address = body.Address
		customer.ContactNumber = body.ContactNumber
		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		writeCatalogAudit(c, "customer", customer.ID, models.AuditActionUpdate,
			fmt.Sprintf("Müşteri güncellendi: %s", customer.Name), before, customer)

		return c.JSON(toCustomerResponse(&customer))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if !customer.Balance.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "Bakiyesi sıfır olmayan müşteri silinemez")
		}

		if err := database.DB.Delete(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}

		writeCatalogAudit(c, "customer", customer.ID, models.AuditActionDelete,
			fmt.Sprintf("Müşteri silindi: %s", customer.Name), customer, nil)

		return c.JSON(fiber.Map{"message": "Müşteri silindi"})
	}
}

// Yardımcı: Kullanıcı bilgisiyle audit kaydı yaz
func writeCatalogAudit(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
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
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}
