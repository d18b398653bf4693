package orders

import (
	"encoding/json"
	"fmt"
	"strconv"

	"eczane-backend/internal/audit"
	"eczane-backend/internal/auth"
	"eczane-backend/internal/config"
	"eczane-backend/internal/database"
	"eczane-backend/internal/models"
	"eczane-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type OrderLineResponse struct {
	ID          uint            `json:"id"`
	StockID     uint            `json:"stock_id"`
	Barcode     string          `json:"barcode"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type OrderResponse struct {
	ID             uint                `json:"id"`
	CustomerID     *uint               `json:"customer_id"`
	CustomerName   string              `json:"customer_name,omitempty"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	TotalAfterDisc decimal.Decimal     `json:"total_after_disc"`
	Stocks         []OrderLineResponse `json:"stocks"`
	CreatedAt      string              `json:"created_at"`
	UpdatedAt      string              `json:"updated_at"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		StatusLabel:    models.OrderStatusLabels[o.Status],
		TotalAmount:    o.TotalAmount,
		TotalAfterDisc: o.TotalAfterDisc,
		Stocks:         make([]OrderLineResponse, 0, len(o.StockOrders)),
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Name
	}
	for _, line := range o.StockOrders {
		lr := OrderLineResponse{
			ID:        line.ID,
			StockID:   line.StockID,
			Quantity:  line.Quantity,
			Barcode:   line.Stock.Barcode,
			ProductID: line.Stock.ProductID,
			UnitPrice: line.Stock.SalePrice,
		}
		if line.Stock.Product.ID != 0 {
			lr.ProductName = line.Stock.Product.Name
		}
		resp.Stocks = append(resp.Stocks, lr)
	}
	return resp
}

func loadOrderDetail(id uint) (*models.Order, error) {
	var order models.Order
	err := database.DB.
		Preload("Customer").
		Preload("StockOrders.Stock.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
	}
	return &order, nil
}

// POST /api/orders
func CreateOrderHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		order, err := CreateOrder(database.DB, cfg, body, userID)
		if err != nil {
			return err
		}

		writeOrderAudit(c, order.ID, models.AuditActionCreate,
			fmt.Sprintf("Sipariş oluşturuldu: #%d, toplam %s", order.ID, order.TotalAmount.StringFixed(2)), nil, order)

		detail, err := loadOrderDetail(order.ID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(detail))
	}
}

// PATCH /api/orders/:id
// Gövde sadece {"status": ...} olabilir; başka alan kabul edilmez
func UpdateOrderStatusHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		statusRaw, ok := raw["status"]
		if !ok || len(raw) > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece 'status' alanı güncellenebilir")
		}

		var newStatus string
		if err := json.Unmarshal(statusRaw, &newStatus); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "status string olmalı")
		}

		before, err := loadOrderDetail(mustParseID(c.Params("id")))
		if err != nil {
			return err
		}

		order, err := UpdateStatus(database.DB, cfg, c.Params("id"), models.OrderStatus(newStatus), auth.IsSuperuser(c))
		if err != nil {
			return err
		}

		writeOrderAudit(c, order.ID, models.AuditActionUpdate,
			fmt.Sprintf("Sipariş durumu değişti: #%d %s -> %s", order.ID, before.Status, order.Status), before.Status, order.Status)

		detail, err := loadOrderDetail(order.ID)
		if err != nil {
			return err
		}
		return c.JSON(toOrderResponse(detail))
	}
}

// GET /api/orders
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pagination.FromQuery(c)

		query := database.DB.Model(&models.Order{}).
			Preload("Customer").
			Preload("StockOrders.Stock.Product")

		if v := c.Query("status"); v != "" {
			if !models.OrderStatus(v).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz status")
			}
			query = query.Where("status = ?", v)
		}
		if v := c.Query("customer_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "customer_id sayısal olmalı")
			}
			query = query.Where("customer_id = ?", id)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler sayılamadı")
		}

		var list []models.Order
		if err := query.Order("created_at DESC, id DESC").
			Offset(page.Offset()).Limit(page.PerPage).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		resp := make([]OrderResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toOrderResponse(&list[i]))
		}

		return c.JSON(page.Envelope(total, resp))
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := loadOrderDetail(mustParseID(c.Params("id")))
		if err != nil {
			return err
		}
		return c.JSON(toOrderResponse(detail))
	}
}

func mustParseID(s string) uint {
	n, _ := strconv.ParseUint(s, 10, 64)
	return uint(n)
}

// Yardımcı: Kullanıcı bilgisiyle audit kaydı yaz
func writeOrderAudit(c *fiber.Ctx, orderID uint, action models.AuditAction, description string, before, after any) {
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
		EntityType:  "order",
		EntityID:    orderID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}
