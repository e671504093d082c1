package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo directorio de productos en memoria.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// AddProduct inserta el producto si su código no existe (insert-if-absent atómico).
func (r *ProductRepo) AddProduct(_ context.Context, product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(product.Code) == "" {
		return fmt.Errorf("%w: no se puede agregar un producto con código vacío", domain.ErrInvalidInput)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.products[product.Code]; exists {
		return fmt.Errorf("producto %s: %w", product.Code, domain.ErrDuplicate)
	}
	r.store.products[product.Code] = product
	return nil
}

// GetProductByCode devuelve el producto o (nil, nil) si no existe.
func (r *ProductRepo) GetProductByCode(_ context.Context, code string) (*entity.Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.products[code], nil
}
