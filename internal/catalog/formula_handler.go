package catalog

import (
	"fmt"

	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type FormulaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type FormulaResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func toFormulaResponse(m *models.Formula) FormulaResponse {
	return FormulaResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/formulas
func CreateFormulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FormulaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		formula := models.Formula{Name: body.Name, Description: body.Description}
		if err := database.DB.Create(&formula).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Formül oluşturulamadı")
		}

		writeCatalogAudit(c, "formula", formula.ID, models.AuditActionCreate,
			fmt.Sprintf("Formül eklendi: %s", formula.Name), nil, formula)

		return c.Status(fiber.StatusCreated).JSON(toFormulaResponse(&formula))
	}
}

// GET /api/formulas
func ListFormulasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Formula{})
		if v := c.Query("name"); v != "" {
			query = query.Where("name ILIKE ?", "%"+v+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Formüller sayılamadı")
		}

		var list []models.Formula
		if err := query.Order("name").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Formüller listelenemedi")
		}

		resp := make([]FormulaResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toFormulaResponse(&list[i]))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/formulas/:id
func GetFormulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var formula models.Formula
		if err := database.DB.First(&formula, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Formül bulunamadı")
		}
		return c.JSON(toFormulaResponse(&formula))
	}
}

// PUT /api/formulas/:id
func UpdateFormulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var formula models.Formula
		if err := database.DB.First(&formula, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Formül bulunamadı")
		}
		before := formula

		var body FormulaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		formula.Name = body.Name
		formula.Description = body.Description
		if err := database.DB.Save(&formula).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Formül güncellenemedi")
		}

		writeCatalogAudit(c, "formula", formula.ID, models.AuditActionUpdate,
			fmt.Sprintf("Formül güncellendi: %s", formula.Name), before, formula)

		return c.JSON(toFormulaResponse(&formula))
	}
}

// DELETE /api/formulas/:id
func DeleteFormulaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var formula models.Formula
		if err := database.DB.First(&formula, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Formül bulunamadı")
		}

		if err := database.DB.Delete(&formula).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Formül silinemedi")
		}

		writeCatalogAudit(c, "formula", formula.ID, models.AuditActionDelete,
			fmt.Sprintf("Formül silindi: %s", formula.Name), formula, nil)

		return c.JSON(fiber.Map{"message": "Formül silindi"})
	}
}
