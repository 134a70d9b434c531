package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/inventario-pos/internal/application/analytics"
	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/report"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CategoryUC     *usecase.CategoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	ProductUC      *usecase.ProductUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	OrderProcessor *inventory.OrderProcessor
	OrderQuery     *inventory.OrderQuery
	MovementQuery  *inventory.MovementQuery
	MovementRecord *inventory.MovementRecorder
	Replenishment  *inventory.ReplenishmentUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	OrderReportUC  *report.OrderReportUseCase
	MovementReport *report.MovementReportUseCase
	JWTSecret      string
}

// Tabla de permisos: lectura para los tres roles, escritura para admin y operador.
var (
	readers = []string{entity.RoleAdmin, entity.RoleOperador, entity.RoleSupervisor}
	writers = []string{entity.RoleAdmin, entity.RoleOperador}
	admins  = []string{entity.RoleAdmin}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	read := RequireRole(readers...)
	write := RequireRole(writers...)
	admin := RequireRole(admins...)

	protected.Get("/auth/me", authHandler.Me)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	protected.Get("/categories", read, categoryHandler.List)
	protected.Post("/categories", write, categoryHandler.Create)
	protected.Put("/categories/:id", write, categoryHandler.Update)

	for prefix, h := range map[string]*PartyHandler{
		"/suppliers": NewSupplierHandler(deps.SupplierUC),
		"/customers": NewCustomerHandler(deps.CustomerUC),
	} {
		protected.Get(prefix, read, h.List)
		protected.Post(prefix, write, h.Create)
		protected.Put(prefix+"/:id", write, h.Update)
		protected.Patch(prefix+"/:id/status", write, h.SetStatus)
	}

	productHandler := NewProductHandler(deps.ProductUC, deps.MovementQuery)
	protected.Get("/products", read, productHandler.List)
	protected.Post("/products", write, productHandler.Create)
	protected.Get("/products/:id", read, productHandler.GetByID)
	protected.Put("/products/:id", write, productHandler.Update)
	protected.Patch("/products/:id/deactivate", admin, productHandler.Deactivate)
	protected.Patch("/products/:id/activate", write, productHandler.Activate)
	protected.Get("/products/:id/movements", read, productHandler.Movements)

	for prefix, h := range map[string]*OrderHandler{
		"/purchases": NewPurchaseHandler(deps.OrderProcessor, deps.OrderQuery),
		"/sales":     NewSaleHandler(deps.OrderProcessor, deps.OrderQuery),
	} {
		protected.Get(prefix, read, h.List)
		protected.Post(prefix, write, h.Create)
		protected.Get(prefix+"/:id", read, h.GetByID)
		protected.Patch(prefix+"/:id/void", write, h.Void)
	}

	inventoryHandler := NewInventoryHandler(deps.MovementRecord, deps.MovementQuery, deps.Replenishment)
	protected.Get("/movements", read, inventoryHandler.ListMovements)
	protected.Post("/movements", write, inventoryHandler.RecordMovement)
	protected.Get("/movements/verify", admin, inventoryHandler.VerifyLedger)
	protected.Get("/inventory/replenishment-list", read, inventoryHandler.GetReplenishmentList)

	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	protected.Get("/expenses", read, expenseHandler.List)
	protected.Post("/expenses", write, expenseHandler.Create)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admin)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/status", userHandler.SetStatus)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", read, dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.OrderReportUC, deps.MovementReport)
	protected.Get("/reports/sales/:id/pdf", read, reportHandler.SalePDF)
	protected.Get("/reports/purchases/:id/pdf", read, reportHandler.PurchasePDF)
	protected.Get("/reports/movements/pdf", read, reportHandler.MovementsPDF)
}
