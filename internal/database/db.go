package database

import (
	"log"

	"eczane-backend/internal/config"
	"eczane-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Formula{},
		&models.Distribution{},
		&models.Customer{},
		&models.Product{},
		&models.Stock{},
		&models.Order{},
		&models.StockOrder{},
		&models.InventoryDiscrepancy{},
		&models.CustomerTransaction{},
		&models.DistributionTransaction{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Negatif stok ve miktar hiçbir koşulda yazılamasın
	DB.Exec("ALTER TABLE stocks DROP CONSTRAINT IF EXISTS chk_stocks_qty_nonnegative")
	if err := DB.Exec("ALTER TABLE stocks ADD CONSTRAINT chk_stocks_qty_nonnegative CHECK (qty >= 0)").Error; err != nil {
		log.Printf("Stok qty constraint eklenemedi: %v", err)
	}
	DB.Exec("ALTER TABLE stock_orders DROP CONSTRAINT IF EXISTS chk_stock_orders_quantity_positive")
	if err := DB.Exec("ALTER TABLE stock_orders ADD CONSTRAINT chk_stock_orders_quantity_positive CHECK (quantity >= 1)").Error; err != nil {
		log.Printf("Sipariş kalemi quantity constraint eklenemedi: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
