package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock         *stock.StockService
	Report        *stock.ReportUseCase
	ImportCharset string
	Logger        zerolog.Logger
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Stock)
	products.Post("/", productHandler.Create)
	products.Get("/:code", productHandler.GetByCode)

	// Stock
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Stock, deps.Report, deps.ImportCharset, deps.Logger)
	stockGroup.Post("/inventories", RequireRole(jwt.RoleAdmin, jwt.RoleInventory), stockHandler.RecordInventory)
	stockGroup.Post("/movements", stockHandler.RecordMovement)
	stockGroup.Post("/movements/batch", stockHandler.RecordBatch)
	stockGroup.Post("/movements/import", RequireRole(jwt.RoleAdmin), stockHandler.ImportMovements)
	stockGroup.Get("/products/:code", stockHandler.GetProductStock)
	stockGroup.Get("/products/:code/variation", stockHandler.GetProductStockVariation)
	stockGroup.Get("/products/:code/movements", stockHandler.GetProductMovements)
	stockGroup.Get("/in-stock", stockHandler.GetProductsInStock)
	stockGroup.Get("/total", stockHandler.GetAllProductsStock)
	stockGroup.Get("/report.pdf", stockHandler.DownloadReport)
}
