package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria. Con tx != nil las escrituras quedan
// pendientes hasta el commit de la transacción.
type StockMovementRepo struct {
	store *Store
	tx    *memTx
}

// NewStockMovementRepository construye el repositorio (fuera de transacción) sobre el store.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

// LockProducts toma el mutex de cada producto hasta el fin de la transacción.
func (r *StockMovementRepo) LockProducts(_ context.Context, products ...*entity.Product) error {
	if r.tx == nil {
		return nil
	}
	r.tx.lock(products)
	return nil
}

// AddMovement agrega un movimiento al libro.
func (r *StockMovementRepo) AddMovement(ctx context.Context, movement *entity.StockMovement) error {
	return r.AddMovements(ctx, []*entity.StockMovement{movement})
}

// AddMovements agrega los movimientos en bloque.
func (r *StockMovementRepo) AddMovements(_ context.Context, movements []*entity.StockMovement) error {
	for _, m := range movements {
		if m == nil || m.Product == nil {
			return fmt.Errorf("%w: movimiento sin producto", domain.ErrInvalidInput)
		}
	}
	if r.tx != nil {
		r.tx.pending = append(r.tx.pending, movements...)
		return nil
	}
	r.store.append(movements)
	return nil
}

// GetLatestInventoryMovement devuelve el último inventario del producto o (nil, nil).
func (r *StockMovementRepo) GetLatestInventoryMovement(_ context.Context, product *entity.Product) (*entity.StockMovement, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	list := r.store.movements[product.Code]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].IsInventory() {
			return list[i], nil
		}
	}
	return nil, nil
}

// GetMovements lista los movimientos del producto en [from, to], ordenados por (Date, Seq).
func (r *StockMovementRepo) GetMovements(_ context.Context, product *entity.Product, from, to time.Time) ([]*entity.StockMovement, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.store.movements[product.Code] {
		if m.Date.Before(from) {
			continue
		}
		if m.Date.After(to) {
			break
		}
		list = append(list, m)
	}
	return list, nil
}

// GetAllMovements lista todos los movimientos de todos los productos.
func (r *StockMovementRepo) GetAllMovements(_ context.Context) ([]*entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.StockMovement
	for _, movements := range r.store.movements {
		list = append(list, movements...)
	}
	return list, nil
}
