package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductRepository --dir=. --output=./mocks --outpkg=mocks

// ProductRepository define el puerto del directorio de productos (DIP).
type ProductRepository interface {
	// AddProduct crea el producto. ErrInvalidInput si es nil o su código está vacío;
	// ErrDuplicate si el código ya existe.
	AddProduct(ctx context.Context, product *entity.Product) error
	// GetProductByCode devuelve (nil, nil) si el código no existe; ErrInvalidInput si está vacío.
	GetProductByCode(ctx context.Context, code string) (*entity.Product, error)
}
