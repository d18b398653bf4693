package discrepancy

import (
	"fmt"

	"eczane-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Input - Kayıt isteği; tipin gerektirdiği alan kombinasyonu Validate ile
// denetlenir
type Input struct {
	Type           string           `json:"type"`
	StockID        *uint            `json:"stock_id"`
	Quantity       *int             `json:"quantity"`
	Amount         *decimal.Decimal `json:"amount"`
	DistributionID *uint            `json:"distribution_id"`
	Note           string           `json:"note"`
}

// Validate - Tip başına zorunlu/yasak alan tablosu:
//   - Parti tüketen tipler (kayıp, hasar, miat, bağış, ücretsiz, iade):
//     stok+miktar zorunlu, depo yasak; tutar verilmezse alış fiyatından türetilir
//   - Nakit tipleri (ev harcaması, tahsilat): tutar+depo zorunlu, stok/miktar yasak
func Validate(in Input) error {
	t := models.DiscrepancyType(in.Type)
	if !t.Valid() {
		return fmt.Errorf("geçersiz type: %q", in.Type)
	}

	if t.StockBased() {
		if in.StockID == nil {
			return fmt.Errorf("%s tipi için stock_id zorunlu", t)
		}
		if in.Quantity == nil {
			return fmt.Errorf("%s tipi için quantity zorunlu", t)
		}
		if *in.Quantity < 1 {
			return fmt.Errorf("quantity en az 1 olmalı")
		}
		if in.DistributionID != nil {
			return fmt.Errorf("%s tipi için distribution_id verilemez", t)
		}
		if in.Amount != nil && in.Amount.IsNegative() {
			return fmt.Errorf("amount negatif olamaz")
		}
		return nil
	}

	// Nakit tipleri
	if in.Amount == nil {
		return fmt.Errorf("%s tipi için amount zorunlu", t)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("amount pozitif olmalı")
	}
	if in.DistributionID == nil {
		return fmt.Errorf("%s tipi için distribution_id zorunlu", t)
	}
	if in.StockID != nil {
		return fmt.Errorf("%s tipi için stock_id verilemez", t)
	}
	if in.Quantity != nil {
		return fmt.Errorf("%s tipi için quantity verilemez", t)
	}
	return nil
}

// ImpliedAmount - Parti tüketen tiplerde tutar verilmemişse
// miktar × alış fiyatı kullanılır
func ImpliedAmount(quantity int, purchasePrice decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(decimal.NewFromInt(int64(quantity)))
}
