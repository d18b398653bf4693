package catalog

import (
	"fmt"

	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type CompanyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type CompanyResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	CreatedAt     string `json:"created_at"`
}

func toCompanyResponse(m *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		ContactNumber: m.ContactNumber,
		CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		company := models.Company{
			Name:          body.Name,
			Address:       body.Address,
			ContactNumber: body.ContactNumber,
		}
		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma oluşturulamadı")
		}

		writeCatalogAudit(c, "company", company.ID, models.AuditActionCreate,
			fmt.Sprintf("Firma eklendi: %s", company.Name), nil, company)

		return c.Status(fiber.StatusCreated).JSON(toCompanyResponse(&company))
	}
}

// GET /api/companies
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Company{})
		if v := c.Query("name"); v != "" {
			query = query.Where("name ILIKE ?", "%"+v+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firmalar sayılamadı")
		}

		var list []models.Company
		if err := query.Order("name").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firmalar listelenemedi")
		}

		resp := make([]CompanyResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toCompanyResponse(&list[i]))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/companies/:id
func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var company models.Company
		if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}
		return c.JSON(toCompanyResponse(&company))
	}
}

// PUT /api/companies/:id
func UpdateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var company models.Company
		if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}
		before := company

		var body CompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		company.Name = body.Name
		company.Address = body.Address
		company.ContactNumber = body.ContactNumber
		if err := database.DB.Save(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma güncellenemedi")
		}

		writeCatalogAudit(c, "company", company.ID, models.AuditActionUpdate,
			fmt.Sprintf("Firma güncellendi: %s", company.Name), before, company)

		return c.JSON(toCompanyResponse(&company))
	}
}

// DELETE /api/companies/:id
func DeleteCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var company models.Company
		if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Firma bulunamadı")
		}

		if err := database.DB.Delete(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma silinemedi")
		}

		writeCatalogAudit(c, "company", company.ID, models.AuditActionDelete,
			fmt.Sprintf("Firma silindi: %s", company.Name), company, nil)

		return c.JSON(fiber.Map{"message": "Firma silindi"})
	}
}
