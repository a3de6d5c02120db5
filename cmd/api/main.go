package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cafearoma/backoffice-api/internal/application/auth"
	"github.com/cafearoma/backoffice-api/internal/application/crm"
	appexport "github.com/cafearoma/backoffice-api/internal/application/export"
	"github.com/cafearoma/backoffice-api/internal/application/kardex"
	"github.com/cafearoma/backoffice-api/internal/application/sales"
	"github.com/cafearoma/backoffice-api/internal/application/usecase"
	infraexcel "github.com/cafearoma/backoffice-api/internal/infrastructure/excel"
	infrapdf "github.com/cafearoma/backoffice-api/internal/infrastructure/pdf"
	"github.com/cafearoma/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/cafearoma/backoffice-api/internal/interfaces/http"
	"github.com/cafearoma/backoffice-api/pkg/config"
	"github.com/cafearoma/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	zoneRepo := postgres.NewDeliveryZoneRepository(pool)
	referralRepo := postgres.NewReferralRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := kardex.NewRegisterMovementUseCase(txRunner, productRepo, userRepo)
	kardexQueryUC := kardex.NewQueryUseCase(movementRepo, stockRepo, productRepo)
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, registerMovementUC,
		productRepo, customerRepo, zoneRepo, referralRepo, saleRepo,
	)
	customerUC := crm.NewCustomerUseCase(customerRepo, saleRepo, zoneRepo)
	referralUC := crm.NewReferralUseCase(referralRepo, customerRepo)
	portalUC := crm.NewPortalUseCase(customerRepo, saleRepo, referralRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	zoneUC := usecase.NewDeliveryZoneUseCase(zoneRepo)
	exportUC := appexport.NewUseCase(
		movementRepo, stockRepo, productRepo,
		infraexcel.NewKardexExporter(), infrapdf.NewKardexReport(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exportaciones grandes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café Aroma API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		ZoneUC:           zoneUC,
		RegisterMovement: registerMovementUC,
		KardexQuery:      kardexQueryUC,
		CreateSale:       createSaleUC,
		CustomerUC:       customerUC,
		ReferralUC:       referralUC,
		PortalUC:         portalUC,
		ExportUC:         exportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
