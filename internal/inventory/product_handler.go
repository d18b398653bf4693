package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eczane-backend/internal/audit"
	"eczane-backend/internal/auth"
	"eczane-backend/internal/config"
	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	Name           string `json:"name"`
	CompanyID      *uint  `json:"company_id"`
	FormulaID      *uint  `json:"formula_id"`
	DistributionID *uint  `json:"distribution_id"`
	ProductType    string `json:"product_type"`
	AvgQty         int    `json:"avg_qty"`
	PerPack        int    `json:"per_pack"`
	MarketItem     *bool  `json:"market_item"`
	Description    string `json:"description"`
}

type UpdateProductRequest struct {
	Name           *string `json:"name"`
	CompanyID      *uint   `json:"company_id"`
	FormulaID      *uint   `json:"formula_id"`
	DistributionID *uint   `json:"distribution_id"`
	ProductType    *string `json:"product_type"`
	AvgQty         *int    `json:"avg_qty"`
	PerPack        *int    `json:"per_pack"`
	MarketItem     *bool   `json:"market_item"`
	Description    *string `json:"description"`
}

type ProductResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	CompanyID        *uint  `json:"company_id"`
	CompanyName      string `json:"company_name,omitempty"`
	FormulaID        *uint  `json:"formula_id"`
	FormulaName      string `json:"formula_name,omitempty"`
	DistributionID   *uint  `json:"distribution_id"`
	DistributionName string `json:"distribution_name,omitempty"`
	ProductType      string `json:"product_type"`
	ProductTypeLabel string `json:"product_type_label"`
	AvgQty           int    `json:"avg_qty"`
	PerPack          int    `json:"per_pack"`
	MarketItem       bool   `json:"market_item"`
	Description      string `json:"description,omitempty"`
	IsActive         bool   `json:"is_active"`
	TotalQty         int    `json:"total_qty"`
	ExpiredQty       int    `json:"expired_qty"`
	ShortExpiryQty   int    `json:"short_expiry_qty"`
	RequiredQty      int    `json:"required_qty"`
	RequiredLowQty   int    `json:"required_low_qty"`
}

func toProductResponse(p *models.Product, q ProductQuantities) ProductResponse {
	resp := ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		CompanyID:        p.CompanyID,
		FormulaID:        p.FormulaID,
		DistributionID:   p.DistributionID,
		ProductType:      string(p.ProductType),
		ProductTypeLabel: p.ProductType.Label(),
		AvgQty:           p.AvgQty,
		PerPack:          p.PerPack,
		MarketItem:       p.MarketItem,
		Description:      p.Description,
		IsActive:         IsActive(p.AvgQty),
		TotalQty:         q.TotalQty,
		ExpiredQty:       q.ExpiredQty,
		ShortExpiryQty:   q.ShortExpiryQty,
		RequiredQty:      RequiredQty(p.AvgQty, q.TotalQty),
		RequiredLowQty:   RequiredLowQty(p.AvgQty, q.TotalQty),
	}
	if p.Company != nil {
		resp.CompanyName = p.Company.Name
	}
	if p.Formula != nil {
		resp.FormulaName = p.Formula.Name
	}
	if p.Distribution != nil {
		resp.DistributionName = p.Distribution.Name
	}
	return resp
}

// parseIDList - "1,2,3" -> [1 2 3]; sayı olmayan değer 400 döndürür
func parseIDList(value, param string) ([]uint, error) {
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s sadece sayısal id içerebilir", param))
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

// GET /api/products
func ListProductsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := time.Now().Truncate(24 * time.Hour)
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Product{}).
			Preload("Company").Preload("Formula").Preload("Distribution")

		if v := c.Query("company_ids"); v != "" {
			ids, err := parseIDList(v, "company_ids")
			if err != nil {
				return err
			}
			query = query.Where("company_id IN ?", ids)
		}
		if v := c.Query("distribution_ids"); v != "" {
			ids, err := parseIDList(v, "distribution_ids")
			if err != nil {
				return err
			}
			query = query.Where("distribution_id IN ?", ids)
		}
		if v := c.Query("formula_ids"); v != "" {
			ids, err := parseIDList(v, "formula_ids")
			if err != nil {
				return err
			}
			query = query.Where("formula_id IN ?", ids)
		}
		if v := c.Query("name"); v != "" {
			query = query.Where("name ILIKE ?", "%"+v+"%")
		}
		if v := c.Query("product_type"); v != "" {
			if !models.ProductType(v).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz product_type")
			}
			query = query.Where("product_type = ?", v)
		}
		if v := c.Query("expiration"); v != "" {
			scoped, err := scopeProductExpiration(query, v, today, cfg.ShortExpiryDays)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = scoped
		}
		if v := c.Query("low_qty"); v != "" {
			scoped, err := scopeProductLowQty(query, v, today)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			query = scoped
		}
		if v := c.Query("active"); v != "" {
			if active, err := strconv.ParseBool(v); err == nil {
				if active {
					query = query.Where("avg_qty > 0")
				} else {
					query = query.Where("avg_qty <= 0")
				}
			}
		}
		if v := c.Query("market_item"); v != "" {
			if mi, err := strconv.ParseBool(v); err == nil {
				query = query.Where("market_item = ?", mi)
			}
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler sayılamadı")
		}

		var products []models.Product
		if err := query.Order("name").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		totals, err := ProductTotals(database.DB, ids, today, cfg.ShortExpiryDays)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok toplamları hesaplanamadı")
		}

		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResponse(&products[i], totals[products[i].ID]))
		}

		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/products/:id
func GetProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.
			Preload("Company").Preload("Formula").Preload("Distribution").
			Preload("Stocks", "qty > 0").
			First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		today := time.Now().Truncate(24 * time.Hour)
		totals, err := ProductTotals(database.DB, []uint{product.ID}, today, cfg.ShortExpiryDays)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok toplamları hesaplanamadı")
		}

		resp := toProductResponse(&product, totals[product.ID])
		stocks := make([]StockResponse, 0, len(product.Stocks))
		for i := range product.Stocks {
			stocks = append(stocks, toStockResponse(&product.Stocks[i], product.Name))
		}

		return c.JSON(fiber.Map{
			"product": resp,
			"stocks":  stocks,
		})
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		if !models.ProductType(body.ProductType).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz product_type")
		}
		if body.AvgQty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "avg_qty negatif olamaz")
		}
		if body.PerPack <= 0 {
			body.PerPack = 1
		}

		marketItem := true
		if body.MarketItem != nil {
			marketItem = *body.MarketItem
		}

		product := models.Product{
			Name:           body.Name,
			CompanyID:      body.CompanyID,
			FormulaID:      body.FormulaID,
			DistributionID: body.DistributionID,
			ProductType:    models.ProductType(body.ProductType),
			AvgQty:         body.AvgQty,
			PerPack:        body.PerPack,
			MarketItem:     marketItem,
			Description:    body.Description,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün oluşturulamadı (isim kayıtlı olabilir)")
		}

		writeInventoryAudit(c, "product", product.ID, models.AuditActionCreate,
			fmt.Sprintf("Ürün eklendi: %s", product.Name), nil, product)

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&product, ProductQuantities{}))
	}
}

// PUT /api/products/:id (sadece superuser)
func UpdateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		before := product

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			product.Name = name
		}
		if body.ProductType != nil {
			if !models.ProductType(*body.ProductType).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz product_type")
			}
			product.ProductType = models.ProductType(*body.ProductType)
		}
		if body.AvgQty != nil {
			if *body.AvgQty < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "avg_qty negatif olamaz")
			}
			product.AvgQty = *body.AvgQty
		}
		if body.PerPack != nil && *body.PerPack > 0 {
			product.PerPack = *body.PerPack
		}
		if body.CompanyID != nil {
			product.CompanyID = body.CompanyID
		}
		if body.FormulaID != nil {
			product.FormulaID = body.FormulaID
		}
		if body.DistributionID != nil {
			product.DistributionID = body.DistributionID
		}
		if body.MarketItem != nil {
			product.MarketItem = *body.MarketItem
		}
		if body.Description != nil {
			product.Description = *body.Description
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		writeInventoryAudit(c, "product", product.ID, models.AuditActionUpdate,
			fmt.Sprintf("Ürün güncellendi: %s", product.Name), before, product)

		today := time.Now().Truncate(24 * time.Hour)
		totals, _ := ProductTotals(database.DB, []uint{product.ID}, today, cfg.ShortExpiryDays)
		return c.JSON(toProductResponse(&product, totals[product.ID]))
	}
}

// DELETE /api/products/:id (sadece superuser)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		// Sipariş kalemine bağlı partisi olan ürün silinemez
		var refCount int64
		database.DB.Model(&models.StockOrder{}).
			Joins("JOIN stocks ON stocks.id = stock_orders.stock_id").
			Where("stocks.product_id = ?", product.ID).
			Count(&refCount)
		if refCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Siparişe bağlı partisi olan ürün silinemez")
		}

		if err := database.DB.Select("Stocks").Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		writeInventoryAudit(c, "product", product.ID, models.AuditActionDelete,
			fmt.Sprintf("Ürün silindi: %s", product.Name), product, nil)

		return c.JSON(fiber.Map{"message": "Ürün başarıyla silindi"})
	}
}

// Yardımcı: Kullanıcı bilgisiyle audit kaydı yaz
func writeInventoryAudit(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
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
