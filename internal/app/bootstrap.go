// Package app arma el motor de stock según la configuración (driver de almacenamiento y caché).
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// Stock motor listo para usar y la función que libera sus recursos.
type Stock struct {
	Service *stock.StockService
	Close   func()
}

// NewStock construye el motor sobre el almacenamiento indicado en cfg.Storage.Driver.
func NewStock(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stock, error) {
	var (
		txRunner    stock.TxRunner
		movRepo     repository.StockMovementRepository
		productRepo repository.ProductRepository
		closeFn     = func() {}
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		txRunner = memory.NewTxRunner(store)
		movRepo = memory.NewStockMovementRepository(store)
		productRepo = memory.NewProductRepository(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al detener el proceso")

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner = postgres.NewTxRunner(pool)
		movRepo = postgres.NewStockMovementRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		closeFn = pool.Close

	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
	}

	if cfg.Cache.ProductTTL > 0 {
		productRepo = cache.NewProductRepository(productRepo, cfg.Cache.ProductTTL)
	}

	svc := stock.NewStockService(txRunner, movRepo, productRepo,
		stock.WithLogger(log.With().Str("component", "stock").Logger()))
	return &Stock{Service: svc, Close: closeFn}, nil
}
