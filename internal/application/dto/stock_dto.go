package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// DateLayout formato de fechas del API (día calendario).
const DateLayout = "2006-01-02"

// RecordInventoryRequest conteo físico de hoy. Quantity es obligatorio (puede ser 0).
type RecordInventoryRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    *int   `json:"quantity"`
}

// RecordMovementRequest movimiento de un producto (se crea el producto si no existe).
type RecordMovementRequest struct {
	Date        string `json:"date"`
	Label       string `json:"label"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// BatchItem línea de un lote.
type BatchItem struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}

// RecordBatchRequest lote de movimientos con la misma fecha y etiqueta.
type RecordBatchRequest struct {
	Date  string      `json:"date"`
	Label string      `json:"label"`
	Items []BatchItem `json:"items"`
}

// StockResponse stock de un producto al final de un día.
type StockResponse struct {
	ProductCode string `json:"product_code"`
	Date        string `json:"date"`
	Stock       int    `json:"stock"`
}

// VariationResponse stock(to) - stock(from).
type VariationResponse struct {
	ProductCode string `json:"product_code"`
	From        string `json:"from"`
	To          string `json:"to"`
	Variation   int    `json:"variation"`
}

// MovementResponse entrada del libro.
type MovementResponse struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Date        string    `json:"date"`
	Label       string    `json:"label"`
	Kind        string    `json:"kind"`
	ProductCode string    `json:"product_code"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// MovementListResponse listado de movimientos de un producto.
type MovementListResponse struct {
	Total     int                `json:"total"`
	Movements []MovementResponse `json:"movements"`
}

// InStockResponse productos con stock >= 0.
type InStockResponse struct {
	Total    int               `json:"total"`
	Products []ProductResponse `json:"products"`
}

// TotalStockResponse suma de los stocks positivos.
type TotalStockResponse struct {
	Total int `json:"total"`
}

// ImportFailure lote rechazado durante una importación CSV.
type ImportFailure struct {
	FirstLine int    `json:"first_line"`
	LastLine  int    `json:"last_line"`
	Date      string `json:"date"`
	Label     string `json:"label"`
	Error     string `json:"error"`
}

// ImportResponse resultado de una importación CSV.
type ImportResponse struct {
	Batches   int             `json:"batches"`
	Movements int             `json:"movements"`
	Failures  []ImportFailure `json:"failures"`
}

// MovementToResponse mapea la entidad a su DTO.
func MovementToResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Seq:         m.Seq,
		Date:        m.Date.Format(DateLayout),
		Label:       m.Label,
		Kind:        string(m.Kind),
		ProductCode: m.ProductCode(),
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
