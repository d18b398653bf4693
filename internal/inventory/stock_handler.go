package inventory

import (
	"fmt"
	"strconv"
	"time"

	"eczane-backend/internal/auth"
	"eczane-backend/internal/config"
	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateStockRequest struct {
	ProductID     uint            `json:"product_id"`
	Qty           int             `json:"qty"`
	Barcode       string          `json:"barcode"` // boşsa kayıt id'sinden üretilir
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ExpiryDate    string          `json:"expiry_date"` // "2026-09-01", opsiyonel
	BoughtFromID  *uint           `json:"bought_from_id"`
}

type UpdateStockRequest struct {
	Qty           *int             `json:"qty"`
	Barcode       *string          `json:"barcode"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	ExpiryDate    *string          `json:"expiry_date"`
	BoughtFromID  *uint            `json:"bought_from_id"`
}

type StockResponse struct {
	ID            uint            `json:"id"`
	Barcode       string          `json:"barcode"`
	ProductID     uint            `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Qty           int             `json:"qty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
	BoughtFromID  *uint           `json:"bought_from_id"`
	EntryDate     string          `json:"entry_date"`
}

func toStockResponse(s *models.Stock, productName string) StockResponse {
	resp := StockResponse{
		ID:            s.ID,
		Barcode:       s.Barcode,
		ProductID:     s.ProductID,
		ProductName:   productName,
		Qty:           s.Qty,
		SalePrice:     s.SalePrice,
		PurchasePrice: s.PurchasePrice,
		BoughtFromID:  s.BoughtFromID,
		EntryDate:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if s.ExpiryDate != nil {
		resp.ExpiryDate = s.ExpiryDate.Format("2006-01-02")
	}
	return resp
}

// GET /api/stocks
func ListStocksHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := time.Now().Truncate(24 * time.Hour)
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Stock{}).Preload("Product")

		if v := c.Query("product_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "product_id sayısal olmalı")
			}
			query = query.Where("product_id = ?", id)
		}
		if v := c.Query("barcode"); v != "" {
			query = query.Where("barcode = ?", v)
		}
		if v := c.Query("bought_from"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "bought_from sayısal olmalı")
			}
			query = query.Where("bought_from_id = ?", id)
		}
		if v := c.Query("entry_date_from"); v != "" {
			if d, err := time.Parse("2006-01-02", v); err == nil {
				query = query.Where("created_at >= ?", d)
			}
		}
		if v := c.Query("entry_date_to"); v != "" {
			if d, err := time.Parse("2006-01-02", v); err == nil {
				query = query.Where("created_at <= ?", d.Add(24*time.Hour-time.Second))
			}
		}
		if v := c.Query("expiration"); v != "" {
			horizon := today.AddDate(0, 0, cfg.ShortExpiryDays)
			switch v {
			case "expired":
				query = query.Where("expiry_date < ?", today)
			case "shortExpired":
				query = query.Where("expiry_date >= ? AND expiry_date < ?", today, horizon)
			case "expiredAndShortExpired":
				query = query.Where("expiry_date < ?", horizon)
			default:
				return fiber.NewError(fiber.StatusBadRequest, errInvalidExpiration.Error())
			}
		}
		if v := c.Query("active"); v != "" {
			if active, err := strconv.ParseBool(v); err == nil {
				if active {
					query = query.Where("qty > 0")
				} else {
					query = query.Where("qty = 0")
				}
			}
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Partiler sayılamadı")
		}

		var stocks []models.Stock
		if err := query.Order("created_at DESC, id DESC").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Partiler listelenemedi")
		}

		resp := make([]StockResponse, 0, len(stocks))
		for i := range stocks {
			resp = append(resp, toStockResponse(&stocks[i], stocks[i].Product.Name))
		}

		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/stocks/:id
func GetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stock models.Stock
		if err := database.DB.Preload("Product").
			First(&stock, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Parti bulunamadı")
		}
		return c.JSON(toStockResponse(&stock, stock.Product.Name))
	}
}

// POST /api/stocks
func CreateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
		}
		if body.Qty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "qty negatif olamaz")
		}
		if body.SalePrice.IsNegative() || body.PurchasePrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
		}
		if body.Barcode != "" {
			if err := ValidateBarcode(body.Barcode); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var expiry *time.Time
		if body.ExpiryDate != "" {
			d, err := time.Parse("2006-01-02", body.ExpiryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			expiry = &d
		}

		if body.BoughtFromID != nil {
			var dist models.Distribution
			if err := database.DB.First(&dist, "id = ?", *body.BoughtFromID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
			}
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		stock := models.Stock{
			ProductID:     body.ProductID,
			Qty:           body.Qty,
			Barcode:       body.Barcode,
			SalePrice:     body.SalePrice,
			PurchasePrice: body.PurchasePrice,
			ExpiryDate:    expiry,
			BoughtFromID:  body.BoughtFromID,
			AddedByID:     &userID,
		}

		// Barkod üretimi kayıt id'sine bağlı, o yüzden create + update tek transaction'da
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if stock.Barcode == "" {
				// Unique kolon boş string'le çakışmasın diye geçici değer
				stock.Barcode = fmt.Sprintf("pending-%d", time.Now().UnixNano())
				if err := tx.Create(&stock).Error; err != nil {
					return err
				}
				stock.Barcode = BarcodeFromID(stock.ID)
				return tx.Model(&stock).Update("barcode", stock.Barcode).Error
			}
			return tx.Create(&stock).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parti oluşturulamadı (barkod kayıtlı olabilir)")
		}

		writeInventoryAudit(c, "stock", stock.ID, models.AuditActionCreate,
			fmt.Sprintf("Parti girişi: %s - %d adet (barkod %s)", product.Name, stock.Qty, stock.Barcode), nil, stock)

		return c.Status(fiber.StatusCreated).JSON(toStockResponse(&stock, product.Name))
	}
}

// PUT /api/stocks/:id (sadece superuser)
func UpdateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stock models.Stock
		if err := database.DB.Preload("Product").
			First(&stock, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Parti bulunamadı")
		}
		before := stock

		var body UpdateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Qty != nil {
			if *body.Qty < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "qty negatif olamaz")
			}
			stock.Qty = *body.Qty
		}
		if body.Barcode != nil {
			if err := ValidateBarcode(*body.Barcode); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			stock.Barcode = *body.Barcode
		}
		if body.SalePrice != nil {
			if body.SalePrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
			}
			stock.SalePrice = *body.SalePrice
		}
		if body.PurchasePrice != nil {
			if body.PurchasePrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
			}
			stock.PurchasePrice = *body.PurchasePrice
		}
		if body.ExpiryDate != nil {
			if *body.ExpiryDate == "" {
				stock.ExpiryDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.ExpiryDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
				}
				stock.ExpiryDate = &d
			}
		}
		if body.BoughtFromID != nil {
			stock.BoughtFromID = body.BoughtFromID
		}

		if err := database.DB.Save(&stock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parti güncellenemedi")
		}

		writeInventoryAudit(c, "stock", stock.ID, models.AuditActionUpdate,
			fmt.Sprintf("Parti güncellendi: %s (barkod %s)", stock.Product.Name, stock.Barcode), before, stock)

		return c.JSON(toStockResponse(&stock, stock.Product.Name))
	}
}

// DELETE /api/stocks/:id (sadece superuser)
func DeleteStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stock models.Stock
		if err := database.DB.Preload("Product").
			First(&stock, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Parti bulunamadı")
		}

		// Sipariş kalemi bu partiyi gösterdiği sürece silinemez
		var refCount int64
		database.DB.Model(&models.StockOrder{}).Where("stock_id = ?", stock.ID).Count(&refCount)
		if refCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş kalemine bağlı parti silinemez")
		}

		if err := database.DB.Delete(&stock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Parti silinemedi")
		}

		writeInventoryAudit(c, "stock", stock.ID, models.AuditActionDelete,
			fmt.Sprintf("Parti silindi: %s (barkod %s)", stock.Product.Name, stock.Barcode), stock, nil)

		return c.JSON(fiber.Map{"message": "Parti başarıyla silindi"})
	}
}
