package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/punto-venta/internal/application/auth"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/application/product"
	"github.com/tu-usuario/punto-venta/internal/application/reports"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *product.UseCase
	InventoryUC *inventory.UseCase
	SalesUC     *sales.UseCase
	ReportsUC   *reports.UseCase
	Sessions    session.Store
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth: login público, logout con token.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret, deps.Sessions), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret, deps.Sessions), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token con sesión activa).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))

	// Catálogo: lectura para todos, mutaciones solo admin.
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Deactivate)

	// Ventas: registro y consulta para todos, anulación solo admin.
	ventas := protected.Group("/ventas")
	salesHandler := NewSalesHandler(deps.SalesUC)
	ventas.Post("/", salesHandler.Register)
	ventas.Get("/", salesHandler.List)
	ventas.Get("/consolidado", salesHandler.Consolidated)
	ventas.Get("/:id", salesHandler.GetByID)
	ventas.Patch("/:id/anular", RequireAdmin(), salesHandler.Void)

	// Inventario: movimientos, alertas, historial y vista de existencias.
	inventario := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ProductUC)
	inventario.Post("/movimientos", inventoryHandler.RegisterMovement)
	inventario.Get("/alertas", inventoryHandler.Alerts)
	inventario.Get("/historial", inventoryHandler.History)
	inventario.Get("/productos", inventoryHandler.Products)

	// Reportes.
	reportes := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportes.Get("/balance", reportHandler.Balance)
	reportes.Get("/indicadores-ventas", reportHandler.Indicators)
	reportes.Get("/productos-mas-vendidos", reportHandler.TopProducts)
}
