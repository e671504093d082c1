package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository decora un directorio de productos con una caché en memoria por código.
// Solo se guardan productos encontrados: una búsqueda sin resultado siempre llega al repositorio.
type ProductRepository struct {
	next  repository.ProductRepository
	items *gocache.Cache
}

// NewProductRepository envuelve next con una caché de vida ttl.
func NewProductRepository(next repository.ProductRepository, ttl time.Duration) *ProductRepository {
	return &ProductRepository{
		next:  next,
		items: gocache.New(ttl, 2*ttl),
	}
}

// AddProduct delega la inserción y cachea el producto si se creó.
func (r *ProductRepository) AddProduct(ctx context.Context, product *entity.Product) error {
	if err := r.next.AddProduct(ctx, product); err != nil {
		return err
	}
	r.items.SetDefault(product.Code, product)
	return nil
}

// GetProductByCode devuelve el producto cacheado o lo busca en el repositorio.
func (r *ProductRepository) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	if cached, found := r.items.Get(code); found {
		return cached.(*entity.Product), nil
	}
	product, err := r.next.GetProductByCode(ctx, code)
	if err != nil || product == nil {
		return product, err
	}
	r.items.SetDefault(code, product)
	return product, nil
}

// ItemCount número de productos cacheados (incluye expirados aún no purgados).
func (r *ProductRepository) ItemCount() int {
	return r.items.ItemCount()
}
