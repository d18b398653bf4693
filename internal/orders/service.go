package orders

import (
	"fmt"
	"sort"

	"eczane-backend/internal/config"
	"eczane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineInput struct {
	StockID  uint `json:"stock_id"`
	Quantity int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerID     *uint            `json:"customer_id"`
	TotalAfterDisc *decimal.Decimal `json:"total_after_disc"`
	Stocks         []OrderLineInput `json:"stocks"`
}

// ValidateTotalAfterDisc - İskonto sonrası tutar [toplam*(1-maxPct/100), toplam]
// aralığında kalmalı
func ValidateTotalAfterDisc(totalAmount, totalAfterDisc decimal.Decimal, maxDiscountPercent int) error {
	minAllowed := totalAmount.Mul(decimal.NewFromInt(100 - int64(maxDiscountPercent))).
		Div(decimal.NewFromInt(100))

	if totalAfterDisc.LessThan(minAllowed) {
		return fmt.Errorf("total_after_disc %s değerinden küçük olamaz", minAllowed.StringFixed(2))
	}
	if totalAfterDisc.GreaterThan(totalAmount) {
		return fmt.Errorf("total_after_disc toplam tutardan (%s) büyük olamaz", totalAmount.StringFixed(2))
	}
	return nil
}

// CreateOrder - Siparişi tek transaction içinde oluşturur. Partiler id sırasına
// göre FOR UPDATE ile kilitlenir; stok burada düşülmez, düşüm tamamlama anında
// yapılır.
func CreateOrder(db *gorm.DB, cfg *config.Config, in CreateOrderInput, userID uint) (*models.Order, error) {
	if len(in.Stocks) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "En az bir sipariş kalemi gerekli")
	}

	// Aynı partiye birden fazla kalem gelebilir; kontrol toplam ihtiyaca göre yapılır
	needed := make(map[uint]int)
	for _, line := range in.Stocks {
		if line.StockID == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "stock_id zorunlu")
		}
		if line.Quantity < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kalem miktarı en az 1 olmalı")
		}
		needed[line.StockID] += line.Quantity
	}

	stockIDs := make([]uint, 0, len(needed))
	for id := range needed {
		stockIDs = append(stockIDs, id)
	}
	// Kilitler her zaman artan id sırasıyla alınır, yoksa iki sipariş birbirini
	// deadlock'a sokabilir
	sort.Slice(stockIDs, func(i, j int) bool { return stockIDs[i] < stockIDs[j] })

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.CustomerID != nil {
			var customer models.Customer
			if err := tx.First(&customer, "id = ?", *in.CustomerID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
			}
		}

		var stocks []models.Stock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", stockIDs).
			Order("id").
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Partiler okunamadı")
		}
		if len(stocks) != len(stockIDs) {
			found := make(map[uint]bool, len(stocks))
			for _, s := range stocks {
				found[s.ID] = true
			}
			for _, id := range stockIDs {
				if !found[id] {
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Parti bulunamadı (ID: %d)", id))
				}
			}
		}

		stockByID := make(map[uint]models.Stock, len(stocks))
		productIDs := make([]uint, 0, len(stocks))
		for _, s := range stocks {
			stockByID[s.ID] = s
			productIDs = append(productIDs, s.ProductID)
		}

		// Hata mesajında ürün adı geçsin
		productNames := make(map[uint]string)
		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err == nil {
			for _, p := range products {
				productNames[p.ID] = p.Name
			}
		}

		totalAmount := decimal.Zero
		for id, qty := range needed {
			stock := stockByID[id]
			if stock.Qty == 0 || qty > stock.Qty {
				name := productNames[stock.ProductID]
				if name == "" {
					name = fmt.Sprintf("parti %d", stock.ID)
				}
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Yetersiz stok: %s (mevcut %d, istenen %d)", name, stock.Qty, qty))
			}
		}
		for _, line := range in.Stocks {
			stock := stockByID[line.StockID]
			totalAmount = totalAmount.Add(stock.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		totalAfterDisc := totalAmount
		if in.TotalAfterDisc != nil {
			if err := ValidateTotalAfterDisc(totalAmount, *in.TotalAfterDisc, cfg.MaxDiscountPercent); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			totalAfterDisc = *in.TotalAfterDisc
		}

		order = models.Order{
			CustomerID:     in.CustomerID,
			Status:         models.OrderPending,
			TotalAmount:    totalAmount,
			TotalAfterDisc: totalAfterDisc,
			CreatedByID:    &userID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		lines := make([]models.StockOrder, 0, len(in.Stocks))
		for _, line := range in.Stocks {
			lines = append(lines, models.StockOrder{
				OrderID:  order.ID,
				StockID:  line.StockID,
				Quantity: line.Quantity,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kalemleri oluşturulamadı")
		}
		order.StockOrders = lines

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus - Durum geçişini tek transaction içinde uygular. Tamamlamada
// stok geçiş anında yeniden kontrol edilir; sipariş oluşturulduğundan beri
// başka siparişler aynı partiyi tüketmiş olabilir.
func UpdateStatus(db *gorm.DB, cfg *config.Config, orderID string, newStatus models.OrderStatus, isSuperuser bool) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Geçerli durumlar: %s, %s, %s", models.OrderPending, models.OrderCompleted, models.OrderCancelled))
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		// Sipariş satırı kilitlenir; aynı sipariş için ikinci geçiş isteği bekler
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("StockOrders").
			First(&order, "id = ?", orderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if !models.CanTransition(order.Status, newStatus) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Durum %s -> %s geçişi yapılamaz", order.Status, newStatus))
		}

		switch {
		case order.Status == models.OrderPending && newStatus == models.OrderCompleted:
			if err := applyStockDelta(tx, order.StockOrders, -1); err != nil {
				return err
			}

		case order.Status == models.OrderCompleted && newStatus == models.OrderCancelled:
			if cfg.OnlySuperuserCancelOrder && !isSuperuser {
				return fiber.NewError(fiber.StatusForbidden, "Siparişi sadece superuser iptal edebilir")
			}
			if err := applyStockDelta(tx, order.StockOrders, +1); err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}
		order.Status = newStatus

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// applyStockDelta - Kalemlerin partilerini kilitleyip miktarları sign yönünde
// günceller. Herhangi bir parti eksiye düşecekse geçişin tamamı geri alınır.
func applyStockDelta(tx *gorm.DB, lines []models.StockOrder, sign int) error {
	delta := make(map[uint]int)
	for _, line := range lines {
		delta[line.StockID] += sign * line.Quantity
	}

	stockIDs := make([]uint, 0, len(delta))
	for id := range delta {
		stockIDs = append(stockIDs, id)
	}
	sort.Slice(stockIDs, func(i, j int) bool { return stockIDs[i] < stockIDs[j] })

	var stocks []models.Stock
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", stockIDs).
		Order("id").
		Find(&stocks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Partiler okunamadı")
	}

	for _, stock := range stocks {
		newQty := stock.Qty + delta[stock.ID]
		if newQty < 0 {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Parti %d için yetersiz stok (mevcut %d, gereken %d)", stock.ID, stock.Qty, -delta[stock.ID]))
		}
		if err := tx.Model(&models.Stock{}).
			Where("id = ?", stock.ID).
			Update("qty", gorm.Expr("qty + ?", delta[stock.ID])).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok güncellenemedi")
		}
	}

	return nil
}
