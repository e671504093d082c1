package stock_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// now es el reloj fijo de los tests: "hoy" es 2024-03-10.
var now = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return inventory.CalendarDate(now).AddDate(0, 0, offset)
}

type fixture struct {
	ctx      context.Context
	products *memory.ProductRepo
	ledger   *memory.StockMovementRepo
	svc      *stock.StockService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		products: memory.NewProductRepository(store),
		ledger:   memory.NewStockMovementRepository(store),
	}
	f.svc = stock.NewStockService(
		memory.NewTxRunner(store), f.ledger, f.products,
		stock.WithClock(func() time.Time { return now }),
	)
	return f
}

func (f *fixture) product(t *testing.T, code string) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: code, Code: code}
	require.NoError(t, f.products.AddProduct(f.ctx, p))
	return p
}

func (f *fixture) move(t *testing.T, offset int, label string, p *entity.Product, q int) {
	t.Helper()
	require.NoError(t, f.svc.RecordMovement(f.ctx, day(offset), label, p, q))
}

func (f *fixture) current(t *testing.T, p *entity.Product) int {
	t.Helper()
	got, err := f.svc.GetCurrentProductStock(f.ctx, p)
	require.NoError(t, err)
	return got
}

func (f *fixture) allMovements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	all, err := f.ledger.GetAllMovements(f.ctx)
	require.NoError(t, err)
	return all
}

func codes(products []*entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Code)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y cálculo de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_MovimientosPositivos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Compra N°2", p, 3)
	f.move(t, -3, "Compra N°3", p, 1)

	assert.Equal(t, 14, f.current(t, p))
}

func TestStock_MovimientosNegativos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Pedido N°1", p, -1)
	f.move(t, -4, "Pedido N°2", p, -3)
	f.move(t, -3, "Pedido N°3", p, -2)

	assert.Equal(t, -6, f.current(t, p))
}

func TestStock_MovimientosMixtos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°2", p, -3)
	f.move(t, -3, "Pedido N°2", p, -1)

	assert.Equal(t, 6, f.current(t, p))
}

func TestStock_StockEnCualquierFecha(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°2", p, -3)
	f.move(t, -3, "Pedido N°3", p, -1)

	cases := []struct {
		offset int
		want   int
	}{
		{-6, 0},
		{-5, 10},
		{-4, 7},
		{-3, 6},
		{-2, 6},
		{0, 6},
	}
	for _, tc := range cases {
		got, err := f.svc.GetProductStock(f.ctx, p, day(tc.offset))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "stock en el día %d", tc.offset)
	}
}

func TestStock_FechaConHoraIncluyeElDia(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	require.NoError(t, f.svc.RecordMovement(f.ctx, day(-2).Add(18*time.Hour), "Compra", p, 5))

	got, err := f.svc.GetProductStock(f.ctx, p, day(-2).Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	all := f.allMovements(t)
	require.Len(t, all, 1)
	assert.Equal(t, day(-2), all[0].Date, "la fecha se guarda sin hora")
}

func TestStock_SumasPrefijo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")
	rnd := rand.New(rand.NewSource(42))

	const n = 20
	prefix := make([]int, n)
	sum := 0
	for i := 0; i < n; i++ {
		q := rnd.Intn(41) - 20
		f.move(t, -n+i, "mov", p, q)
		sum += q
		prefix[i] = sum
	}

	for i := 0; i < n; i++ {
		got, err := f.svc.GetProductStock(f.ctx, p, day(-n+i))
		require.NoError(t, err)
		assert.Equal(t, prefix[i], got, "prefijo %d", i)
	}
	assert.Equal(t, sum, f.current(t, p))
}

// ──────────────────────────────────────────────────────────────────────────────
// Variaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_Variaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°1", p, -3)
	f.move(t, -3, "Pedido N°2", p, -1)
	f.move(t, -2, "Compra N°2", p, 2)

	v, err := f.svc.GetProductStockVariation(f.ctx, p, inventory.MinDate, day(-5))
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = f.svc.GetProductStockVariation(f.ctx, p, day(-5), day(-3))
	require.NoError(t, err)
	assert.Equal(t, -4, v)

	v, err = f.svc.GetProductStockVariation(f.ctx, p, day(-4), day(0))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = f.svc.GetProductStockVariation(f.ctx, p, day(-3), day(-3))
	require.NoError(t, err)
	assert.Zero(t, v, "from == to no varía")
}

func TestStock_VariacionRangoInvertido(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	_, err := f.svc.GetProductStockVariation(f.ctx, p, day(-1), day(-2))
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_LoteMismaEtiquetaYFecha(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "EAN00001")
	p2 := f.product(t, "EAN00002")
	p3 := f.product(t, "EAN00003")
	label := "Pedido 13"
	date := day(-5)

	err := f.svc.RecordMovements(f.ctx, date, label, []stock.ProductQuantity{
		{Product: p1, Quantity: 2},
		{Product: p2, Quantity: 3},
		{Product: p3, Quantity: 4},
	})
	require.NoError(t, err)

	for _, p := range []*entity.Product{p1, p2, p3} {
		movs, err := f.ledger.GetMovements(f.ctx, p, date, date)
		require.NoError(t, err)
		require.Len(t, movs, 1, "producto %s", p.Code)
		assert.Equal(t, label, movs[0].Label)
		assert.Equal(t, entity.MovementKindMovement, movs[0].Kind)
	}
}

func TestStock_LoteFallaParaTodos(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "EAN00001")
	p2 := f.product(t, "EAN00002")
	p3 := f.product(t, "EAN00003")
	label := "Pedido 13"
	date := day(-5)

	inStock, err := f.svc.GetProductsInStock(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, inStock)
	total, err := f.svc.GetAllProductsStock(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, f.svc.RecordInventory(f.ctx, p2, 2))

	assertUnchanged := func() {
		t.Helper()
		inStock, err := f.svc.GetProductsInStock(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"EAN00002"}, codes(inStock))
		total, err := f.svc.GetAllProductsStock(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, f.allMovements(t), 1)
	}
	assertUnchanged()

	// Producto nulo en el lote.
	err = f.svc.RecordMovements(f.ctx, date, label, []stock.ProductQuantity{
		{Product: p1, Quantity: 2}, {Product: nil, Quantity: 3}, {Product: p3, Quantity: 4},
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assertUnchanged()

	// Movimiento anterior al inventario de p2.
	err = f.svc.RecordMovements(f.ctx, date, label, []stock.ProductQuantity{
		{Product: p1, Quantity: 2}, {Product: p2, Quantity: 3}, {Product: p3, Quantity: 4},
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assertUnchanged()
}

func TestStock_LoteVacioNoHaceNada(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.RecordMovements(f.ctx, day(-1), "vacío", []stock.ProductQuantity{}))
	assert.Empty(t, f.allMovements(t))
}

func TestStock_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	err := f.svc.RecordMovements(f.ctx, day(-1), "x", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, domain.IsBusinessRule(err), "argumento inválido no es regla de negocio")
	assert.True(t, domain.IsInvalidInput(err))

	err = f.svc.RecordMovement(f.ctx, day(-1), "   ", p, 1)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	err = f.svc.RecordInventory(f.ctx, nil, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetProductStock(f.ctx, nil, day(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.svc.RecordMovementByCode(f.ctx, day(-1), "x", " ", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.allMovements(t))
}

func TestStock_MovimientoFuturo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	err := f.svc.RecordMovement(f.ctx, day(2), "Pedido", p, 1)
	var be *domain.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Msg, "futuro")

	require.NoError(t, f.svc.RecordMovement(f.ctx, day(1), "Pedido", p, 1), "mañana está permitido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_ProductosEnStock(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "EAN00001")
	p2 := f.product(t, "EAN00002")
	p3 := f.product(t, "EAN00003")
	f.product(t, "EAN00004") // sin movimientos: no aparece

	require.NoError(t, f.svc.RecordMovements(f.ctx, day(-5), "Pedido 13", []stock.ProductQuantity{
		{Product: p1, Quantity: 2}, {Product: p2, Quantity: -3}, {Product: p3, Quantity: 4},
	}))

	inStock, err := f.svc.GetProductsInStock(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EAN00001", "EAN00003"}, codes(inStock))
}

func TestStock_StockTotal(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "EAN00001")
	p2 := f.product(t, "EAN00002")
	f.product(t, "EAN00003")

	require.NoError(t, f.svc.RecordMovements(f.ctx, day(-5), "Pedido 13", []stock.ProductQuantity{
		{Product: p1, Quantity: 2}, {Product: p2, Quantity: -3},
	}))
	require.NoError(t, f.svc.RecordInventory(f.ctx, p2, 4))

	total, err := f.svc.GetAllProductsStock(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

// Umbrales distintos a propósito: en stock incluye cero, el total solo suma positivos.
func TestStock_UmbralesStockCero(t *testing.T) {
	f := newFixture(t)
	zero := f.product(t, "EAN00001")
	negative := f.product(t, "EAN00002")
	positive := f.product(t, "EAN00003")

	require.NoError(t, f.svc.RecordMovements(f.ctx, day(-3), "Compra", []stock.ProductQuantity{
		{Product: zero, Quantity: 2}, {Product: negative, Quantity: -1}, {Product: positive, Quantity: 5},
	}))
	f.move(t, -2, "Pedido", zero, -2)

	inStock, err := f.svc.GetProductsInStock(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EAN00001", "EAN00003"}, codes(inStock), "stock cero cuenta como en stock")

	total, err := f.svc.GetAllProductsStock(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total, "solo se suman stocks > 0")

	byProduct, err := f.svc.GetStockByProduct(f.ctx)
	require.NoError(t, err)
	require.Len(t, byProduct, 3)
	assert.Equal(t, 0, byProduct[0].Stock)
	assert.Equal(t, -1, byProduct[1].Stock)
	assert.Equal(t, 5, byProduct[2].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos por código
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_ProductoDesconocidoSeCrea(t *testing.T) {
	f := newFixture(t)

	p, err := f.products.GetProductByCode(f.ctx, "EAN00001")
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, f.svc.RecordMovementByCode(f.ctx, day(-5), "Compra N°1", "EAN00001", 10))

	p, err = f.products.GetProductByCode(f.ctx, "EAN00001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 10, f.current(t, p))

	// Un segundo registro reutiliza el producto existente.
	require.NoError(t, f.svc.RecordMovementByCode(f.ctx, day(-4), "Compra N°2", "EAN00001", 1))
	assert.Equal(t, 11, f.current(t, p))
}

func TestStock_ResolverConcurrenteCreaUnSoloProducto(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	results := make([]*entity.Product, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := f.svc.ResolveProduct(f.ctx, "EAN00001")
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	stored, err := f.products.GetProductByCode(f.ctx, "EAN00001")
	require.NoError(t, err)
	for _, p := range results {
		assert.Same(t, stored, p)
	}
}

// blockingDirectory retiene GetProductByCode hasta que se cierra release,
// respetando la cancelación del contexto recibido.
type blockingDirectory struct {
	next    repository.ProductRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (d *blockingDirectory) AddProduct(ctx context.Context, product *entity.Product) error {
	return d.next.AddProduct(ctx, product)
}

func (d *blockingDirectory) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	d.once.Do(func() { close(d.entered) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.release:
	}
	return d.next.GetProductByCode(ctx, code)
}

func TestStock_ResolverCanceladoNoAfectaAOtrosLlamadores(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	dir := &blockingDirectory{next: products, entered: make(chan struct{}), release: make(chan struct{})}
	svc := stock.NewStockService(
		memory.NewTxRunner(store), memory.NewStockMovementRepository(store), dir,
		stock.WithClock(func() time.Time { return now }),
	)

	type result struct {
		p   *entity.Product
		err error
	}
	resolve := func(ctx context.Context) <-chan result {
		out := make(chan result, 1)
		go func() {
			p, err := svc.ResolveProduct(ctx, "EAN00001")
			out <- result{p, err}
		}()
		return out
	}
	wait := func(ch <-chan result) result {
		t.Helper()
		select {
		case r := <-ch:
			return r
		case <-time.After(2 * time.Second):
			t.Fatal("ResolveProduct no respondió")
			return result{}
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	first := resolve(ctxA)
	<-dir.entered

	// El segundo llamador se une a la búsqueda en curso.
	second := resolve(context.Background())
	time.Sleep(20 * time.Millisecond)

	cancelA()
	a := wait(first)
	assert.ErrorIs(t, a.err, context.Canceled)

	close(dir.release)
	b := wait(second)
	require.NoError(t, b.err)
	require.NotNil(t, b.p)
	assert.Equal(t, "EAN00001", b.p.Code)

	stored, err := products.GetProductByCode(context.Background(), "EAN00001")
	require.NoError(t, err)
	assert.Same(t, stored, b.p)
}

func TestStock_FindYCreateProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindProduct(f.ctx, "EAN00001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := f.svc.CreateProduct(f.ctx, "EAN00001")
	require.NoError(t, err)

	found, err := f.svc.FindProduct(f.ctx, "EAN00001")
	require.NoError(t, err)
	assert.Same(t, created, found)

	_, err = f.svc.CreateProduct(f.ctx, "EAN00001")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventarios
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_InventarioFijaElStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Compra N°2", p, -3)
	f.move(t, -3, "Pedido N°2", p, -1)
	assert.Equal(t, 6, f.current(t, p))

	require.NoError(t, f.svc.RecordInventory(f.ctx, p, 7))
	assert.Equal(t, 7, f.current(t, p))

	f.move(t, 1, "Pedido N°3", p, -2)
	got, err := f.svc.GetProductStock(f.ctx, p, day(1))
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	latest, err := f.ledger.GetLatestInventoryMovement(f.ctx, p)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, entity.InventoryLabel, latest.Label)
	assert.Equal(t, day(0), latest.Date)
}

func TestStock_NoSePuedeRegistrarAntesOElDiaDelInventario(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°1", p, -3)
	require.NoError(t, f.svc.RecordInventory(f.ctx, p, 7))
	before := len(f.allMovements(t))

	err := f.svc.RecordMovement(f.ctx, day(-5), "Pedido N°3", p, -2)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	err = f.svc.RecordMovement(f.ctx, day(0), "Pedido N°3", p, -2)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	assert.Len(t, f.allMovements(t), before, "el libro no cambia")
	assert.Equal(t, 7, f.current(t, p))
}

func TestStock_InventarioUnicoPorDia(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°1", p, -3)
	require.NoError(t, f.svc.RecordInventory(f.ctx, p, 7))

	err := f.svc.RecordInventory(f.ctx, p, 6)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, 7, f.current(t, p), "el intento fallido no cambia el stock")
}

func TestStock_InventarioNoNegativo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -5, "Compra N°1", p, 10)
	f.move(t, -4, "Pedido N°1", p, -3)

	err := f.svc.RecordInventory(f.ctx, p, -6)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, 7, f.current(t, p))

	require.NoError(t, f.svc.RecordInventory(f.ctx, p, 0), "inventario cero es válido")
	assert.Equal(t, 0, f.current(t, p))
}

func TestStock_InventarioIgnoraHistorialPrevio(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -3, "Compra", p, 100)
	f.move(t, -2, "Pedido", p, -37)
	require.NoError(t, f.svc.RecordInventory(f.ctx, p, 12))
	f.move(t, 1, "Compra", p, 3)

	got, err := f.svc.GetProductStock(f.ctx, p, day(0))
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	got, err = f.svc.GetProductStock(f.ctx, p, day(1))
	require.NoError(t, err)
	assert.Equal(t, 15, got)
}

func TestStock_InventariosConcurrentesSoloUnoGana(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	const n = 12
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.RecordInventory(f.ctx, p, i)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrBusinessRule)
	}
	assert.Equal(t, 1, ok, "solo un inventario por día")
	assert.Len(t, f.allMovements(t), 1)
}

func TestStock_OperadorQuedaRegistrado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")
	ctx := stock.WithOperator(f.ctx, "user-1")

	require.NoError(t, f.svc.RecordMovement(ctx, day(-1), "Compra", p, 1))
	require.NoError(t, f.svc.RecordInventory(ctx, p, 3))

	for _, m := range f.allMovements(t) {
		assert.Equal(t, "user-1", m.CreatedBy)
		assert.Equal(t, now, m.CreatedAt)
		assert.NotEmpty(t, m.ID)
	}
	assert.Equal(t, "", stock.OperatorFrom(context.Background()))
}

func TestStock_MovimientosDelProducto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "EAN00001")

	f.move(t, -3, "a", p, 1)
	f.move(t, -2, "b", p, 1)
	f.move(t, -1, "c", p, 1)

	movs, err := f.svc.GetProductMovements(f.ctx, p, day(-2), day(-1))
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "b", movs[0].Label)
	assert.Equal(t, "c", movs[1].Label)

	_, err = f.svc.GetProductMovements(f.ctx, p, day(-1), day(-2))
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}
