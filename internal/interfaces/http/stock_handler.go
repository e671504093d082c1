package http

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/application/stockimport"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// StockHandler maneja movimientos, inventarios y consultas de stock (protegido).
type StockHandler struct {
	svc           *stock.StockService
	report        *stock.ReportUseCase
	importCharset string
	log           zerolog.Logger
	now           func() time.Time
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *stock.StockService, report *stock.ReportUseCase, importCharset string, log zerolog.Logger) *StockHandler {
	return &StockHandler{svc: svc, report: report, importCharset: importCharset, log: log, now: time.Now}
}

// operatorContext propaga el usuario del token como operador de los movimientos.
func operatorContext(c *fiber.Ctx) context.Context {
	return stock.WithOperator(c.UserContext(), GetUserID(c))
}

// RecordInventory godoc
// @Summary      Registrar inventario físico (fecha de hoy)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordInventoryRequest  true  "product_code, quantity (>= 0)"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/inventories [post]
func (h *StockHandler) RecordInventory(c *fiber.Ctx) error {
	var in dto.RecordInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity es requerido"})
	}
	ctx := operatorContext(c)
	product, err := h.svc.FindProduct(ctx, in.ProductCode)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.RecordInventory(ctx, product, *in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "inventario registrado"})
}

// RecordMovement godoc
// @Summary      Registrar movimiento (crea el producto si no existe)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "date (YYYY-MM-DD), label, product_code, quantity"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return invalidDate(c, "date", in.Date)
	}
	if err := h.svc.RecordMovementByCode(operatorContext(c), date, in.Label, in.ProductCode, in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "movimiento registrado"})
}

// RecordBatch godoc
// @Summary      Registrar lote de movimientos (todo o nada)
// @Description  Todos los items comparten fecha y etiqueta. Un código desconocido rechaza el lote completo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordBatchRequest  true  "date, label, items"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/batch [post]
func (h *StockHandler) RecordBatch(c *fiber.Ctx) error {
	var in dto.RecordBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return invalidDate(c, "date", in.Date)
	}
	if in.Items == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items es requerido"})
	}

	ctx := operatorContext(c)
	entries := make([]stock.ProductQuantity, 0, len(in.Items))
	for _, item := range in.Items {
		product, err := h.svc.FindProduct(ctx, item.ProductCode)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return writeError(c, err)
		}
		// Un producto desconocido queda nulo y el motor rechaza el lote completo.
		entries = append(entries, stock.ProductQuantity{Product: product, Quantity: item.Quantity})
	}
	if err := h.svc.RecordMovements(ctx, date, in.Label, entries); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "lote registrado"})
}

// ImportMovements godoc
// @Summary      Importar movimientos desde CSV
// @Description  Cuerpo text/csv con cabecera date;label;product_code;quantity. Las filas consecutivas con la misma fecha y etiqueta forman un lote.
// @Tags         stock
// @Security     Bearer
// @Accept       plain
// @Produce      json
// @Param        charset  query  string  false  "UTF-8 (defecto), ISO-8859-1, windows-1252"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/import [post]
func (h *StockHandler) ImportMovements(c *fiber.Ctx) error {
	charset := c.Query("charset", h.importCharset)
	importer := stockimport.NewImporter(h.svc,
		stockimport.WithCharset(charset),
		stockimport.WithLogger(h.log),
	)
	report, err := importer.Import(operatorContext(c), bytes.NewReader(c.Body()))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ImportResponse{
		Batches:   report.Batches,
		Movements: report.Movements,
		Failures:  make([]dto.ImportFailure, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, dto.ImportFailure{
			FirstLine: f.FirstLine, LastLine: f.LastLine, Date: f.Date, Label: f.Label, Error: f.Err.Error(),
		})
	}
	return c.JSON(out)
}

// GetProductStock godoc
// @Summary      Stock de un producto al final de un día
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code  path   string  true   "Código del producto"
// @Param        date  query  string  false  "YYYY-MM-DD (defecto: hoy)"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{code} [get]
func (h *StockHandler) GetProductStock(c *fiber.Ctx) error {
	ctx := c.UserContext()
	product, err := h.svc.FindProduct(ctx, c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}

	date := inventory.CalendarDate(h.now())
	if raw := c.Query("date"); raw != "" {
		if date, err = parseDate(raw); err != nil {
			return invalidDate(c, "date", raw)
		}
	}
	qty, err := h.svc.GetProductStock(ctx, product, date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductCode: product.Code, Date: date.Format(dto.DateLayout), Stock: qty})
}

// GetProductStockVariation godoc
// @Summary      Variación de stock entre dos días
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code  path   string  true  "Código del producto"
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.VariationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{code}/variation [get]
func (h *StockHandler) GetProductStockVariation(c *fiber.Ctx) error {
	rawFrom, rawTo := c.Query("from"), c.Query("to")
	from, err := parseDate(rawFrom)
	if err != nil {
		return invalidDate(c, "from", rawFrom)
	}
	to, err := parseDate(rawTo)
	if err != nil {
		return invalidDate(c, "to", rawTo)
	}

	ctx := c.UserContext()
	product, err := h.svc.FindProduct(ctx, c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	v, err := h.svc.GetProductStockVariation(ctx, product, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.VariationResponse{
		ProductCode: product.Code,
		From:        from.Format(dto.DateLayout),
		To:          to.Format(dto.DateLayout),
		Variation:   v,
	})
}

// GetProductMovements godoc
// @Summary      Movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code  path   string  true   "Código del producto"
// @Param        from  query  string  false  "YYYY-MM-DD (defecto: sin límite)"
// @Param        to    query  string  false  "YYYY-MM-DD (defecto: mañana)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{code}/movements [get]
func (h *StockHandler) GetProductMovements(c *fiber.Ctx) error {
	from := inventory.MinDate
	to := inventory.CalendarDate(h.now()).AddDate(0, 0, 1)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			return invalidDate(c, "from", raw)
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			return invalidDate(c, "to", raw)
		}
	}

	ctx := c.UserContext()
	product, err := h.svc.FindProduct(ctx, c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	movements, err := h.svc.GetProductMovements(ctx, product, from, to)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.MovementListResponse{Total: len(movements), Movements: make([]dto.MovementResponse, 0, len(movements))}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.MovementToResponse(m))
	}
	return c.JSON(out)
}

// GetProductsInStock godoc
// @Summary      Productos con stock >= 0
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InStockResponse
// @Router       /api/stock/in-stock [get]
func (h *StockHandler) GetProductsInStock(c *fiber.Ctx) error {
	products, err := h.svc.GetProductsInStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InStockResponse{Total: len(products), Products: productsToResponse(products)})
}

// GetAllProductsStock godoc
// @Summary      Suma de los stocks positivos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalStockResponse
// @Router       /api/stock/total [get]
func (h *StockHandler) GetAllProductsStock(c *fiber.Ctx) error {
	total, err := h.svc.GetAllProductsStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TotalStockResponse{Total: total})
}

// DownloadReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) DownloadReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.DownloadStockReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, raw, time.UTC)
}

func productsToResponse(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductToResponse(p))
	}
	return out
}
