package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `m.seq, m.id, m.movement_date, m.label, m.kind, m.quantity, m.created_at, m.created_by,
		p.id, p.code, p.created_at`

// StockMovementRepo libro de movimientos sobre PostgreSQL. inTx indica que q es una pgx.Tx.
type StockMovementRepo struct {
	q    Querier
	inTx bool
}

// NewStockMovementRepository construye el adaptador fuera de transacción (pool).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// LockProducts toma un advisory lock por producto que se libera al terminar la transacción.
// Fuera de transacción no hace nada.
func (r *StockMovementRepo) LockProducts(ctx context.Context, products ...*entity.Product) error {
	if !r.inTx {
		return nil
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, p.Code); err != nil {
			return fmt.Errorf("lock product %s: %w", p.Code, err)
		}
	}
	return nil
}

// AddMovement agrega un movimiento al libro.
func (r *StockMovementRepo) AddMovement(ctx context.Context, movement *entity.StockMovement) error {
	return r.AddMovements(ctx, []*entity.StockMovement{movement})
}

// AddMovements inserta el lote en un único envío; el servidor lo ejecuta como una transacción implícita.
func (r *StockMovementRepo) AddMovements(ctx context.Context, movements []*entity.StockMovement) error {
	for _, m := range movements {
		if m == nil || m.Product == nil {
			return fmt.Errorf("%w: movimiento sin producto", domain.ErrInvalidInput)
		}
	}
	if len(movements) == 0 {
		return nil
	}

	query := `
		INSERT INTO stock_movements (id, product_code, movement_date, label, kind, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query, m.ID, m.Product.Code, m.Date, m.Label, string(m.Kind), m.Quantity, m.CreatedAt, m.CreatedBy)
	}

	br := r.q.SendBatch(ctx, batch)
	seqs := make([]int64, len(movements))
	for i := range movements {
		if err := br.QueryRow().Scan(&seqs[i]); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert stock movement: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert stock movements: %w", err)
	}
	for i, m := range movements {
		m.Seq = seqs[i]
	}
	return nil
}

// GetLatestInventoryMovement devuelve el último inventario del producto o (nil, nil).
func (r *StockMovementRepo) GetLatestInventoryMovement(ctx context.Context, product *entity.Product) (*entity.StockMovement, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements m
		JOIN products p ON p.code = m.product_code
		WHERE m.product_code = $1 AND m.kind = 'inventory'
		ORDER BY m.movement_date DESC, m.seq DESC
		LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, product.Code), nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest inventory: %w", err)
	}
	return m, nil
}

// GetMovements lista los movimientos del producto en [from, to], ordenados por (fecha, seq).
func (r *StockMovementRepo) GetMovements(ctx context.Context, product *entity.Product, from, to time.Time) ([]*entity.StockMovement, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements m
		JOIN products p ON p.code = m.product_code
		WHERE m.product_code = $1 AND m.movement_date BETWEEN $2 AND $3
		ORDER BY m.movement_date, m.seq`
	rows, err := r.q.Query(ctx, query, product.Code, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	cache := map[string]*entity.Product{product.Code: product}
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows, cache)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetAllMovements lista todos los movimientos de todos los productos.
func (r *StockMovementRepo) GetAllMovements(ctx context.Context) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements m
		JOIN products p ON p.code = m.product_code
		ORDER BY m.product_code, m.movement_date, m.seq`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all stock movements: %w", err)
	}
	defer rows.Close()

	cache := make(map[string]*entity.Product)
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows, cache)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// scanMovement lee una fila de movementColumns. Con cache, los movimientos del mismo
// código comparten el *entity.Product.
func scanMovement(row pgx.Row, cache map[string]*entity.Product) (*entity.StockMovement, error) {
	var (
		m    entity.StockMovement
		kind string
		p    entity.Product
	)
	err := row.Scan(
		&m.Seq, &m.ID, &m.Date, &m.Label, &kind, &m.Quantity, &m.CreatedAt, &m.CreatedBy,
		&p.ID, &p.Code, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	if !m.Kind.Valid() {
		return nil, fmt.Errorf("movimiento %s: tipo desconocido %q", m.ID, kind)
	}
	m.Date = time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)

	if cache == nil {
		m.Product = &p
		return &m, nil
	}
	if cached, ok := cache[p.Code]; ok {
		m.Product = cached
	} else {
		cache[p.Code] = &p
		m.Product = &p
	}
	return &m, nil
}
