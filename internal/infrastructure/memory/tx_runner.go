package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks en una transacción en memoria: los bloqueos por producto se
// liberan al final y las escrituras solo se publican si el callback no devuelve error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn y publica sus escrituras pendientes si termina sin error.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.StockMovementRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{store: r.store, held: make(map[string]*sync.Mutex)}
	defer tx.release()

	if err := fn(&StockMovementRepo{store: r.store, tx: tx}); err != nil {
		return err
	}
	r.store.append(tx.pending)
	return nil
}

type memTx struct {
	store   *Store
	held    map[string]*sync.Mutex
	order   []string
	pending []*entity.StockMovement
}

// lock toma los mutex por código en orden para evitar interbloqueos entre transacciones.
func (tx *memTx) lock(products []*entity.Product) {
	codes := make([]string, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, ok := tx.held[p.Code]; ok {
			continue
		}
		codes = append(codes, p.Code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if _, ok := tx.held[code]; ok {
			continue
		}
		l := tx.store.productLock(code)
		l.Lock()
		tx.held[code] = l
		tx.order = append(tx.order, code)
	}
}

func (tx *memTx) release() {
	for i := len(tx.order) - 1; i >= 0; i-- {
		tx.held[tx.order[i]].Unlock()
	}
	tx.held = nil
	tx.order = nil
}
