package main

import (
	"log"
	"strings"

	"eczane-backend/internal/audit"
	"eczane-backend/internal/auth"
	"eczane-backend/internal/catalog"
	"eczane-backend/internal/config"
	"eczane-backend/internal/database"
	"eczane-backend/internal/discrepancy"
	"eczane-backend/internal/inventory"
	"eczane-backend/internal/ledger"
	"eczane-backend/internal/models"
	"eczane-backend/internal/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-superuser", auth.RegisterSuperuserHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Superuser routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperuser))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Get("/users", auth.ListUsersHandler())
	adminRoutes.Get("/users/:id", auth.GetUserHandler())
	adminRoutes.Put("/users/:id", auth.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", auth.DeleteUserHandler())

	// Referans veriler (firma, formül, depo, müşteri)
	protected.Post("/companies", catalog.CreateCompanyHandler())
	protected.Get("/companies", catalog.ListCompaniesHandler())
	protected.Get("/companies/:id", catalog.GetCompanyHandler())
	protected.Put("/companies/:id", auth.RequireRole(models.RoleSuperuser), catalog.UpdateCompanyHandler())
	protected.Delete("/companies/:id", auth.RequireRole(models.RoleSuperuser), catalog.DeleteCompanyHandler())

	protected.Post("/formulas", catalog.CreateFormulaHandler())
	protected.Get("/formulas", catalog.ListFormulasHandler())
	protected.Get("/formulas/:id", catalog.GetFormulaHandler())
	protected.Put("/formulas/:id", auth.RequireRole(models.RoleSuperuser), catalog.UpdateFormulaHandler())
	protected.Delete("/formulas/:id", auth.RequireRole(models.RoleSuperuser), catalog.DeleteFormulaHandler())

	protected.Post("/distributions", catalog.CreateDistributionHandler())
	protected.Get("/distributions", catalog.ListDistributionsHandler())
	protected.Get("/distributions/:id", catalog.GetDistributionHandler())
	protected.Put("/distributions/:id", auth.RequireRole(models.RoleSuperuser), catalog.UpdateDistributionHandler())
	protected.Delete("/distributions/:id", auth.RequireRole(models.RoleSuperuser), catalog.DeleteDistributionHandler())

	protected.Post("/customers", catalog.CreateCustomerHandler())
	protected.Get("/customers", catalog.ListCustomersHandler())
	protected.Get("/customers/:id", catalog.GetCustomerHandler())
	protected.Put("/customers/:id", auth.RequireRole(models.RoleSuperuser), catalog.UpdateCustomerHandler())
	protected.Delete("/customers/:id", auth.RequireRole(models.RoleSuperuser), catalog.DeleteCustomerHandler())

	// Ürün kataloğu
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Get("/products", inventory.ListProductsHandler(cfg))
	protected.Get("/products/:id", inventory.GetProductHandler(cfg))
	protected.Put("/products/:id", auth.RequireRole(models.RoleSuperuser), inventory.UpdateProductHandler(cfg))
	protected.Delete("/products/:id", auth.RequireRole(models.RoleSuperuser), inventory.DeleteProductHandler())

	// Stok partileri
	protected.Post("/stocks", inventory.CreateStockHandler())
	protected.Get("/stocks", inventory.ListStocksHandler(cfg))
	protected.Get("/stocks/:id", inventory.GetStockHandler())
	protected.Put("/stocks/:id", auth.RequireRole(models.RoleSuperuser), inventory.UpdateStockHandler())
	protected.Delete("/stocks/:id", auth.RequireRole(models.RoleSuperuser), inventory.DeleteStockHandler())

	// Siparişler
	protected.Post("/orders", orders.CreateOrderHandler(cfg))
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Patch("/orders/:id", orders.UpdateOrderStatusHandler(cfg))

	// Cari hareketler
	protected.Post("/customer-transactions", ledger.CreateCustomerTransactionHandler())
	protected.Get("/customer-transactions", ledger.ListCustomerTransactionsHandler())
	protected.Post("/distribution-transactions", ledger.CreateDistributionTransactionHandler())
	protected.Get("/distribution-transactions", ledger.ListDistributionTransactionsHandler())

	// Satış dışı stok/nakit hareketleri
	protected.Post("/discrepancies", discrepancy.CreateDiscrepancyHandler())
	protected.Get("/discrepancies", discrepancy.ListDiscrepanciesHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
