package discrepancy

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

type DiscrepancyResponse struct {
	ID             uint             `json:"id"`
	Type           string           `json:"type"`
	TypeLabel      string           `json:"type_label"`
	StockID        *uint            `json:"stock_id,omitempty"`
	Barcode        string           `json:"barcode,omitempty"`
	ProductName    string           `json:"product_name,omitempty"`
	Quantity       *int             `json:"quantity,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	DistributionID *uint            `json:"distribution_id,omitempty"`
	Note           string           `json:"note,omitempty"`
	CreatedAt      string           `json:"created_at"`
}

func toDiscrepancyResponse(d *models.InventoryDiscrepancy) DiscrepancyResponse {
	resp := DiscrepancyResponse{
		ID:             d.ID,
		Type:           string(d.Type),
		TypeLabel:      d.Type.Label(),
		StockID:        d.StockID,
		Quantity:       d.Quantity,
		Amount:         d.Amount,
		DistributionID: d.DistributionID,
		Note:           d.Note,
		CreatedAt:      d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if d.Stock != nil {
		resp.Barcode = d.Stock.Barcode
		if d.Stock.Product.ID != 0 {
			resp.ProductName = d.Stock.Product.Name
		}
	}
	return resp
}

// POST /api/discrepancies
func CreateDiscrepancyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := Validate(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		t := models.DiscrepancyType(body.Type)

		var stock *models.Stock
		if body.StockID != nil {
			var s models.Stock
			if err := database.DB.Preload("Product").
				First(&s, "id = ?", *body.StockID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Parti bulunamadı")
			}
			stock = &s
		}
		if body.DistributionID != nil {
			var dist models.Distribution
			if err := database.DB.First(&dist, "id = ?", *body.DistributionID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
			}
		}

		amount := body.Amount
		if t.StockBased() && amount == nil {
			implied := ImpliedAmount(*body.Quantity, stock.PurchasePrice)
			amount = &implied
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		record := models.InventoryDiscrepancy{
			Type:           t,
			StockID:        body.StockID,
			Quantity:       body.Quantity,
			Amount:         amount,
			DistributionID: body.DistributionID,
			Note:           body.Note,
			RecordedByID:   &userID,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}
		record.Stock = stock

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    user.Name,
				EntityType:  "inventory_discrepancy",
				EntityID:    record.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Satış dışı hareket: %s", t.Label()),
				After:       record,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toDiscrepancyResponse(&record))
	}
}

// GET /api/discrepancies
func ListDiscrepanciesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.InventoryDiscrepancy{}).
			Preload("Stock.Product")

		if v := c.Query("type"); v != "" {
			if !models.DiscrepancyType(v).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz type")
			}
			query = query.Where("type = ?", v)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar sayılamadı")
		}

		var list []models.InventoryDiscrepancy
		if err := query.Order("created_at DESC, id DESC").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		resp := make([]DiscrepancyResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toDiscrepancyResponse(&list[i]))
		}
		return c.JSON(page.Envelope(total, resp))
	}
}
