package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/inventario-pos/internal/application/analytics"
	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/application/report"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	infracache "github.com/jhoicas/inventario-pos/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos/pkg/config"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString(), false); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché del tablero (opcional)
	var summaryCache ports.SummaryCache = ports.NopCache{}
	if cfg.Redis.Addr != "" {
		client, err := infracache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché desactivada")
		} else {
			defer client.Close()
			summaryCache = infracache.NewRedisSummaryCache(client, cfg.Redis.TTL)
		}
	}

	// Eventos de inventario (opcional)
	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq no disponible, eventos desactivados")
		} else {
			defer conn.Close()
			publisher = events.NewAMQPPublisher(conn.Ch, cfg.AMQP.Exchange)
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB, log)

	movementQuery := inventory.NewMovementQuery(movementRepo, productRepo)
	orderProcessor := inventory.NewOrderProcessor(txRunner, publisher, summaryCache, log)
	movementRecorder := inventory.NewMovementRecorder(txRunner, publisher, summaryCache, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(dashboardRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, summaryCache, log.Named("dashboard"))

	// PDF: comprobantes de compra y venta, kardex
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	lowStock := scheduler.New(cfg.Scheduler.LowStockCron, int64(cfg.Scheduler.LowStockThreshold), replenishmentUC, publisher, log.Named("scheduler"))
	if cfg.Scheduler.LowStockCron != "" {
		if err := lowStock.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
		defer lowStock.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // imagen de producto en base64 (hasta 5MB)
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		CategoryUC:     usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool)),
		SupplierUC:     usecase.NewSupplierUseCase(postgres.NewSupplierRepository(pool)),
		CustomerUC:     usecase.NewCustomerUseCase(postgres.NewCustomerRepository(pool)),
		ProductUC:      usecase.NewProductUseCase(productRepo, txRunner),
		ExpenseUC:      usecase.NewExpenseUseCase(postgres.NewExpenseRepository(pool), summaryCache),
		OrderProcessor: orderProcessor,
		OrderQuery:     inventory.NewOrderQuery(orderRepo),
		MovementQuery:  movementQuery,
		MovementRecord: movementRecorder,
		Replenishment:  replenishmentUC,
		DashboardUC:    dashboardUC,
		OrderReportUC:  report.NewOrderReportUseCase(orderRepo, pdfGenerator),
		MovementReport: report.NewMovementReportUseCase(movementQuery, productRepo, pdfGenerator),
		JWTSecret:      cfg.JWT.Secret,
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
