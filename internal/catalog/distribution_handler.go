package catalog

import (
	"fmt"

	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DistributionRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type DistributionResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	ContactNumber string          `json:"contact_number"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"created_at"`
}

func toDistributionResponse(m *models.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		ContactNumber: m.ContactNumber,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/distributions
// Balance istekte yer almaz; bakiye sadece cari hareketlerle değişir
func CreateDistributionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DistributionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		dist := models.Distribution{
			Name:          body.Name,
			Address:       body.Address,
			ContactNumber: body.ContactNumber,
		}
		if err := database.DB.Create(&dist).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo oluşturulamadı")
		}

		writeCatalogAudit(c, "distribution", dist.ID, models.AuditActionCreate,
			fmt.Sprintf("Depo eklendi: %s", dist.Name), nil, dist)

		return c.Status(fiber.StatusCreated).JSON(toDistributionResponse(&dist))
	}
}

// GET /api/distributions
func ListDistributionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Distribution{})
		if v := c.Query("name"); v != "" {
			query = query.Where("name ILIKE ?", "%"+v+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar sayılamadı")
		}

		var list []models.Distribution
		if err := query.Order("name").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}

		resp := make([]DistributionResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toDistributionResponse(&list[i]))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/distributions/:id
func GetDistributionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dist models.Distribution
		if err := database.DB.First(&dist, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}
		return c.JSON(toDistributionResponse(&dist))
	}
}

// PUT /api/distributions/:id
// Balance bu uçtan güncellenemez
func UpdateDistributionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dist models.Distribution
		if err := database.DB.First(&dist, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}
		before := dist

		var body DistributionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		dist.Name = body.Name
		dist.Address = body.Address
		dist.ContactNumber = body.ContactNumber
		if err := database.DB.Save(&dist).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}

		writeCatalogAudit(c, "distribution", dist.ID, models.AuditActionUpdate,
			fmt.Sprintf("Depo güncellendi: %s", dist.Name), before, dist)

		return c.JSON(toDistributionResponse(&dist))
	}
}

// DELETE /api/distributions/:id
func DeleteDistributionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dist models.Distribution
		if err := database.DB.First(&dist, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var txCount int64
		if err := database.DB.Model(&models.DistributionTransaction{}).
			Where("distribution_id = ?", dist.ID).
			Count(&txCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo hareketleri kontrol edilemedi")
		}
		if txCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cari hareketi olan depo silinemez")
		}

		if err := database.DB.Delete(&dist).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo silinemedi")
		}

		writeCatalogAudit(c, "distribution", dist.ID, models.AuditActionDelete,
			fmt.Sprintf("Depo silindi: %s", dist.Name), dist, nil)

		return c.JSON(fiber.Map{"message": "Depo silindi"})
	}
}
