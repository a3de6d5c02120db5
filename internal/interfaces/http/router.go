package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cafearoma/backoffice-api/internal/application/auth"
	"github.com/cafearoma/backoffice-api/internal/application/crm"
	"github.com/cafearoma/backoffice-api/internal/application/export"
	"github.com/cafearoma/backoffice-api/internal/application/kardex"
	"github.com/cafearoma/backoffice-api/internal/application/sales"
	"github.com/cafearoma/backoffice-api/internal/application/usecase"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	ZoneUC           *usecase.DeliveryZoneUseCase
	RegisterMovement *kardex.RegisterMovementUseCase
	KardexQuery      *kardex.QueryUseCase
	CreateSale       *sales.CreateSaleUseCase
	CustomerUC       *crm.CustomerUseCase
	ReferralUC       *crm.ReferralUseCase
	PortalUC         *crm.PortalUseCase
	ExportUC         *export.UseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Portal de clientes (público, sin JWT)
	portal := api.Group("/portal")
	portalHandler := NewPortalHandler(deps.PortalUC)
	portal.Post("/summary", portalHandler.Summary)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Kardex (protegido)
	invGroup := protected.Group("/inventory")
	kardexHandler := NewKardexHandler(deps.RegisterMovement, deps.KardexQuery)
	invGroup.Post("/movements", kardexHandler.RegisterMovement)
	invGroup.Get("/products/:id/movements", kardexHandler.GetHistory)
	invGroup.Get("/products/:id/stock", kardexHandler.GetStock)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/deliver", saleHandler.MarkDelivered)

	// Customers y referidos (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ReferralUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Post("/rewards/:rewardId/apply", customerHandler.ApplyReward)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/rewards", customerHandler.ListRewards)

	// Zones (protegido, solo admin)
	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.ZoneUC)
	zones.Get("/", zoneHandler.List)
	zones.Post("/", RequireRole(entity.RoleAdmin), zoneHandler.Create)
	zones.Put("/:id", RequireRole(entity.RoleAdmin), zoneHandler.Update)
	zones.Delete("/:id", RequireRole(entity.RoleAdmin), zoneHandler.Delete)

	// Export (protegido)
	exportGroup := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exportGroup.Get("/products/:id/kardex.xlsx", exportHandler.Excel)
	exportGroup.Get("/products/:id/kardex.pdf", exportHandler.PDF)
}
