package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=StockMovementRepository --dir=. --output=./mocks --outpkg=mocks

// StockMovementRepository define el puerto del libro de movimientos (append-only).
// No valida reglas de negocio: eso es responsabilidad del motor de stock.
type StockMovementRepository interface {
	// LockProducts serializa el ciclo verificar-y-agregar de cada producto hasta el fin de la
	// transacción en curso. Fuera de una transacción no hace nada.
	LockProducts(ctx context.Context, products ...*entity.Product) error
	AddMovement(ctx context.Context, movement *entity.StockMovement) error
	AddMovements(ctx context.Context, movements []*entity.StockMovement) error
	// GetLatestInventoryMovement devuelve el inventario más reciente por (Date, Seq) o (nil, nil).
	GetLatestInventoryMovement(ctx context.Context, product *entity.Product) (*entity.StockMovement, error)
	// GetMovements lista los movimientos del producto con from <= Date <= to, ordenados por (Date, Seq).
	GetMovements(ctx context.Context, product *entity.Product, from, to time.Time) ([]*entity.StockMovement, error)
	// GetAllMovements lista todos los movimientos de todos los productos, sin orden entre productos.
	GetAllMovements(ctx context.Context) ([]*entity.StockMovement, error)
}
