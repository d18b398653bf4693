package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	MaxDiscountPercent       int  // Sipariş toplamına uygulanabilecek azami iskonto yüzdesi
	OnlySuperuserCancelOrder bool // Tamamlanan siparişi sadece superuser iptal edebilsin mi
	ShortExpiryDays          int  // "Miadı yaklaşan" sayılacak gün ufku
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:              getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=eczane port=5432 sslmode=disable"),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		CORSOrigins:              getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		MaxDiscountPercent:       getEnvInt("MAX_DISCOUNT_PERCENT", 10),
		OnlySuperuserCancelOrder: getEnvBool("ONLY_SUPERUSER_CANCEL_ORDER", true),
		ShortExpiryDays:          getEnvInt("SHORT_EXPIRY_DAYS", 180),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=eczane port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.MaxDiscountPercent < 0 || cfg.MaxDiscountPercent > 100 {
		log.Fatal("[FATAL] MAX_DISCOUNT_PERCENT 0 ile 100 arasında olmalıdır.")
	}
	if cfg.ShortExpiryDays <= 0 {
		log.Fatal("[FATAL] SHORT_EXPIRY_DAYS pozitif olmalıdır.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s sayı olarak çözümlenemedi, varsayılan kullanılıyor: %d", key, def)
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[WARN] %s bool olarak çözümlenemedi, varsayılan kullanılıyor: %t", key, def)
	}
	return def
}
