package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CreateProductRequest request para crear un producto.
type CreateProductRequest struct {
	Code string `json:"code"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductToResponse mapea la entidad a su DTO.
func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Code: p.Code, CreatedAt: p.CreatedAt}
}
