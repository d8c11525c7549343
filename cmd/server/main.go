package main

import (
	"log"
	"strings"

	"freshmart-backend/internal/admin"
	"freshmart-backend/internal/audit"
	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/catalog"
	"freshmart-backend/internal/config"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/mutation"
	"freshmart-backend/internal/order"
	"freshmart-backend/internal/warehouse"

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
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.Middleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog (any authenticated user)
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/product-categories", catalog.ListCategoriesHandler())

	// Checkout
	protected.Post("/orders/create-order", order.CreateOrderHandler())

	// Stock mutations (staff; role resolved per request inside the handlers)
	protected.Get("/mutations/get-mutations", mutation.ListMutationsHandler())
	protected.Post("/mutations/confirm-mutations", mutation.ConfirmMutationHandler())

	// Warehouse order management (staff)
	protected.Get("/warehouse/manage-orders", warehouse.ManageOrdersHandler())
	protected.Get("/warehouse/manage-orders/export", warehouse.ExportOrdersHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireSuperAdmin())

	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())
	adminRoutes.Post("/stores/:id/admins", admin.CreateStoreAdminHandler())
	adminRoutes.Get("/stores/:id/admins", admin.ListStoreAdminsHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
