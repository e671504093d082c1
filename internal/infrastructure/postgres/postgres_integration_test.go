//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stock_ledger"),
		tcpostgres.WithUsername("stock"),
		tcpostgres.WithPassword("stock"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func TestPostgres_Integration(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	products := postgres.NewProductRepository(pool)
	ledger := postgres.NewStockMovementRepository(pool)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := stock.NewStockService(postgres.NewTxRunner(pool), ledger, products,
		stock.WithClock(func() time.Time { return today.Add(10 * time.Hour) }))

	t.Run("Directorio", func(t *testing.T) {
		p := &entity.Product{ID: uuid.NewString(), Code: "DIR-1", CreatedAt: today}
		require.NoError(t, products.AddProduct(ctx, p))

		err := products.AddProduct(ctx, &entity.Product{ID: uuid.NewString(), Code: "DIR-1"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		got, err := products.GetProductByCode(ctx, "DIR-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)

		missing, err := products.GetProductByCode(ctx, "NO-EXISTE")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Libro y motor", func(t *testing.T) {
		require.NoError(t, svc.RecordMovementByCode(ctx, today.AddDate(0, 0, -5), "Compra N°1", "EAN-1", 10))
		require.NoError(t, svc.RecordMovementByCode(ctx, today.AddDate(0, 0, -4), "Pedido N°1", "EAN-1", -3))
		require.NoError(t, svc.RecordMovementByCode(ctx, today.AddDate(0, 0, -3), "Pedido N°2", "EAN-1", -1))

		p, err := svc.FindProduct(ctx, "EAN-1")
		require.NoError(t, err)

		got, err := svc.GetProductStock(ctx, p, today.AddDate(0, 0, -4))
		require.NoError(t, err)
		assert.Equal(t, 7, got)

		require.NoError(t, svc.RecordInventory(ctx, p, 7))
		err = svc.RecordInventory(ctx, p, 6)
		assert.ErrorIs(t, err, domain.ErrBusinessRule)

		err = svc.RecordMovement(ctx, today, "Pedido N°3", p, -2)
		assert.ErrorIs(t, err, domain.ErrBusinessRule)

		require.NoError(t, svc.RecordMovement(ctx, today.AddDate(0, 0, 1), "Pedido N°3", p, -2))
		got, err = svc.GetProductStock(ctx, p, today.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, 5, got)

		movs, err := ledger.GetMovements(ctx, p, today.AddDate(0, 0, -5), today.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Len(t, movs, 5)
		for i := 1; i < len(movs); i++ {
			assert.True(t, movs[i-1].Before(movs[i]), "orden (fecha, seq)")
		}
		assert.Equal(t, today.AddDate(0, 0, -5), movs[0].Date)
	})

	t.Run("Lote fallido no escribe", func(t *testing.T) {
		a, err := svc.ResolveProduct(ctx, "LOT-A")
		require.NoError(t, err)
		b, err := svc.ResolveProduct(ctx, "LOT-B")
		require.NoError(t, err)
		require.NoError(t, svc.RecordInventory(ctx, b, 2))

		before, err := ledger.GetAllMovements(ctx)
		require.NoError(t, err)

		err = svc.RecordMovements(ctx, today.AddDate(0, 0, -1), "Pedido 13", []stock.ProductQuantity{
			{Product: a, Quantity: 1}, {Product: b, Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrBusinessRule)

		after, err := ledger.GetAllMovements(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("Inventarios concurrentes", func(t *testing.T) {
		p, err := svc.ResolveProduct(ctx, "CONC-1")
		require.NoError(t, err)

		const n = 8
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = svc.RecordInventory(ctx, p, i)
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			}
		}
		assert.Equal(t, 1, ok)
	})
}
