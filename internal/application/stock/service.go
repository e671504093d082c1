package stock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ProductQuantity par (producto, cantidad) de un registro por lotes.
type ProductQuantity struct {
	Product  *entity.Product
	Quantity int
}

// ProductStock stock calculado de un producto (todo el historial).
type ProductStock = inventory.ProductStock

// Option configura el StockService.
type Option func(*StockService)

// WithClock reemplaza el reloj (por defecto time.Now). "Hoy" es el día calendario del reloj.
func WithClock(now func() time.Time) Option {
	return func(s *StockService) { s.now = now }
}

// WithLogger define el logger del servicio (por defecto no registra nada).
func WithLogger(log zerolog.Logger) Option {
	return func(s *StockService) { s.log = log }
}

// StockService es el motor de stock: valida y registra movimientos e inventarios en el libro
// y calcula cantidades reproduciendo los movimientos. No guarda estado de negocio propio.
type StockService struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	now         func() time.Time
	log         zerolog.Logger
	resolve     singleflight.Group
}

// NewStockService construye el servicio.
func NewStockService(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	opts ...Option,
) *StockService {
	s := &StockService{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		now:         time.Now,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StockService) today() time.Time {
	return inventory.CalendarDate(s.now())
}

// RecordInventory registra un conteo físico del producto con fecha de hoy.
// Falla si la cantidad es negativa o si ya existe un inventario de hoy para el producto.
func (s *StockService) RecordInventory(ctx context.Context, product *entity.Product, quantity int) error {
	if product == nil {
		return fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if quantity < 0 {
		err := domain.NewBusinessError(fmt.Sprintf(
			"el inventario del producto %s no puede ser negativo, valor recibido %d", product, quantity))
		s.logFailure("record_inventory", err)
		return err
	}

	today := s.today()
	movement := &entity.StockMovement{
		ID:        uuid.NewString(),
		Date:      today,
		Label:     entity.InventoryLabel,
		Kind:      entity.MovementKindInventory,
		Product:   product,
		Quantity:  quantity,
		CreatedAt: s.now(),
		CreatedBy: OperatorFrom(ctx),
	}

	err := s.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository) error {
		if err := movRepo.LockProducts(ctx, product); err != nil {
			return err
		}
		latest, err := movRepo.GetLatestInventoryMovement(ctx, product)
		if err != nil {
			return err
		}
		if latest != nil && latest.Date.Equal(today) {
			return domain.NewBusinessError(fmt.Sprintf(
				"ya existe un inventario del producto %s el %s", product, today.Format(dateLayout)))
		}
		return movRepo.AddMovement(ctx, movement)
	})
	if err != nil {
		s.logFailure("record_inventory", err)
		return err
	}

	s.log.Debug().
		Str("product", product.Code).
		Int("quantity", quantity).
		Msg("inventario registrado")
	return nil
}

// RecordMovementByCode registra un movimiento para el producto con el código dado,
// creándolo en el directorio si aún no existe.
func (s *StockService) RecordMovementByCode(ctx context.Context, date time.Time, label, productCode string, quantity int) error {
	product, err := s.ResolveProduct(ctx, productCode)
	if err != nil {
		return err
	}
	return s.RecordMovement(ctx, date, label, product, quantity)
}

// RecordMovement registra un único movimiento (lote de una entrada).
func (s *StockService) RecordMovement(ctx context.Context, date time.Time, label string, product *entity.Product, quantity int) error {
	return s.RecordMovements(ctx, date, label, []ProductQuantity{{Product: product, Quantity: quantity}})
}

// RecordMovements registra un lote de movimientos con la misma fecha y etiqueta.
// Todas las entradas se validan antes de escribir: si una falla no se persiste ninguna.
func (s *StockService) RecordMovements(ctx context.Context, date time.Time, label string, entries []ProductQuantity) error {
	date = inventory.CalendarDate(date)
	if date.After(s.today().AddDate(0, 0, 1)) {
		err := domain.NewBusinessError(fmt.Sprintf(
			"no se puede registrar un movimiento en el futuro: %s", date.Format(dateLayout)))
		s.logFailure("record_movements", err)
		return err
	}
	if entries == nil {
		return fmt.Errorf("%w: entradas requeridas", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(label) == "" {
		err := domain.NewBusinessError("la etiqueta del movimiento no puede estar vacía")
		s.logFailure("record_movements", err)
		return err
	}

	now := s.now()
	operator := OperatorFrom(ctx)

	err := s.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository) error {
		if err := movRepo.LockProducts(ctx, lockOrder(entries)...); err != nil {
			return err
		}

		// Se construye primero el lote completo; AddMovements solo se llama si todo es válido.
		movements := make([]*entity.StockMovement, 0, len(entries))
		for i, e := range entries {
			if e.Product == nil {
				return domain.NewBusinessError(fmt.Sprintf("el producto de la entrada %d es nulo", i))
			}
			latest, err := movRepo.GetLatestInventoryMovement(ctx, e.Product)
			if err != nil {
				return err
			}
			if latest != nil && !latest.Date.Before(date) {
				return domain.NewBusinessError(fmt.Sprintf(
					"no se puede registrar un movimiento del producto %s el %s: existe un inventario el %s",
					e.Product, date.Format(dateLayout), latest.Date.Format(dateLayout)))
			}
			movements = append(movements, &entity.StockMovement{
				ID:        uuid.NewString(),
				Date:      date,
				Label:     label,
				Kind:      entity.MovementKindMovement,
				Product:   e.Product,
				Quantity:  e.Quantity,
				CreatedAt: now,
				CreatedBy: operator,
			})
		}
		return movRepo.AddMovements(ctx, movements)
	})
	if err != nil {
		s.logFailure("record_movements", err)
		return err
	}

	s.log.Debug().
		Str("date", date.Format(dateLayout)).
		Str("label", label).
		Int("entries", len(entries)).
		Msg("movimientos registrados")
	return nil
}

// lockOrder devuelve los productos del lote sin repetir y ordenados por código,
// para que dos lotes concurrentes tomen los bloqueos en el mismo orden.
func lockOrder(entries []ProductQuantity) []*entity.Product {
	seen := make(map[string]bool, len(entries))
	products := make([]*entity.Product, 0, len(entries))
	for _, e := range entries {
		if e.Product == nil || seen[e.Product.Code] {
			continue
		}
		seen[e.Product.Code] = true
		products = append(products, e.Product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products
}

// GetProductStock calcula el stock del producto al final del día de date.
func (s *StockService) GetProductStock(ctx context.Context, product *entity.Product, date time.Time) (int, error) {
	if product == nil {
		return 0, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	movements, err := s.movRepo.GetMovements(ctx, product, inventory.MinDate, inventory.CalendarDate(date))
	if err != nil {
		return 0, err
	}
	return inventory.CalculateStock(movements), nil
}

// GetCurrentProductStock calcula el stock del producto hoy.
func (s *StockService) GetCurrentProductStock(ctx context.Context, product *entity.Product) (int, error) {
	return s.GetProductStock(ctx, product, s.today())
}

// GetProductStockVariation devuelve stock(to) - stock(from).
func (s *StockService) GetProductStockVariation(ctx context.Context, product *entity.Product, from, to time.Time) (int, error) {
	from, to = inventory.CalendarDate(from), inventory.CalendarDate(to)
	if from.After(to) {
		return 0, domain.NewBusinessError(fmt.Sprintf(
			"la fecha inicial %s no puede ser posterior a la final %s", from.Format(dateLayout), to.Format(dateLayout)))
	}
	toStock, err := s.GetProductStock(ctx, product, to)
	if err != nil {
		return 0, err
	}
	fromStock, err := s.GetProductStock(ctx, product, from)
	if err != nil {
		return 0, err
	}
	return toStock - fromStock, nil
}

// GetProductMovements lista los movimientos del producto entre from y to (inclusive).
func (s *StockService) GetProductMovements(ctx context.Context, product *entity.Product, from, to time.Time) ([]*entity.StockMovement, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	from, to = inventory.CalendarDate(from), inventory.CalendarDate(to)
	if from.After(to) {
		return nil, domain.NewBusinessError(fmt.Sprintf(
			"la fecha inicial %s no puede ser posterior a la final %s", from.Format(dateLayout), to.Format(dateLayout)))
	}
	return s.movRepo.GetMovements(ctx, product, from, to)
}

// GetStockByProduct calcula el stock de todo el historial de cada producto con movimientos.
func (s *StockService) GetStockByProduct(ctx context.Context) ([]ProductStock, error) {
	movements, err := s.movRepo.GetAllMovements(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.StockByProduct(movements), nil
}

// GetProductsInStock devuelve los productos con stock >= 0 (incluye stock cero).
func (s *StockService) GetProductsInStock(ctx context.Context) ([]*entity.Product, error) {
	stocks, err := s.GetStockByProduct(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(stocks))
	for _, ps := range stocks {
		if ps.Stock >= 0 {
			products = append(products, ps.Product)
		}
	}
	return products, nil
}

// GetAllProductsStock suma solo los stocks estrictamente positivos.
func (s *StockService) GetAllProductsStock(ctx context.Context) (int, error) {
	stocks, err := s.GetStockByProduct(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, ps := range stocks {
		if ps.Stock > 0 {
			total += ps.Stock
		}
	}
	return total, nil
}

// ResolveProduct busca el producto por código y lo crea si no existe.
// Resoluciones concurrentes del mismo código comparten una sola creación.
func (s *StockService) ResolveProduct(ctx context.Context, code string) (*entity.Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	// La búsqueda compartida no se cancela con el contexto de quien la inició;
	// cada llamador deja de esperar cuando se cancela su propio contexto.
	shared := context.WithoutCancel(ctx)
	ch := s.resolve.DoChan(code, func() (interface{}, error) {
		product, err := s.productRepo.GetProductByCode(shared, code)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
		product = &entity.Product{ID: uuid.NewString(), Code: code, CreatedAt: s.now()}
		if err := s.productRepo.AddProduct(shared, product); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				return nil, err
			}
			// Creado por otro proceso entre la búsqueda y la inserción.
			existing, err := s.productRepo.GetProductByCode(shared, code)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, fmt.Errorf("producto %s duplicado pero no encontrado: %w", code, domain.ErrNotFound)
			}
			return existing, nil
		}
		s.log.Info().Str("product", code).Msg("producto creado")
		return product, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Product), nil
	}
}

// FindProduct busca el producto por código sin crearlo. ErrNotFound si no existe.
func (s *StockService) FindProduct(ctx context.Context, code string) (*entity.Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	product, err := s.productRepo.GetProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// CreateProduct crea el producto en el directorio. ErrDuplicate si el código ya existe.
func (s *StockService) CreateProduct(ctx context.Context, code string) (*entity.Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	product := &entity.Product{ID: uuid.NewString(), Code: code, CreatedAt: s.now()}
	if err := s.productRepo.AddProduct(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info().Str("product", code).Msg("producto creado")
	return product, nil
}

func (s *StockService) logFailure(op string, err error) {
	if domain.IsBusinessRule(err) {
		s.log.Warn().Err(err).Str("op", op).Msg("operación rechazada")
		return
	}
	s.log.Error().Err(err).Str("op", op).Msg("operación fallida")
}
