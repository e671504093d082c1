package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// AddProduct persiste un nuevo producto. ErrDuplicate si el código ya existe.
func (r *ProductRepo) AddProduct(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(product.Code) == "" {
		return fmt.Errorf("%w: no se puede agregar un producto con código vacío", domain.ErrInvalidInput)
	}
	query := `INSERT INTO products (id, code, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, product.ID, product.Code, product.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", product.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetProductByCode obtiene un producto por código; (nil, nil) si no existe.
func (r *ProductRepo) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	query := `SELECT id, code, created_at FROM products WHERE code = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, code).Scan(&p.ID, &p.Code, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
