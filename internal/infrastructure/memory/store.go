// Package memory implementa el directorio de productos y el libro de movimientos en memoria.
// El Store se construye explícitamente y se inyecta; no hay estado global.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Store agrupa el estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	products  map[string]*entity.Product
	movements map[string][]*entity.StockMovement // por código de producto, ordenados por (Date, Seq)
	seq       int64

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		movements: make(map[string][]*entity.StockMovement),
		locks:     make(map[string]*sync.Mutex),
	}
}

// productLock devuelve el mutex del producto, creándolo si hace falta.
func (s *Store) productLock(code string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[code]
	if !ok {
		l = &sync.Mutex{}
		s.locks[code] = l
	}
	return l
}

// append asigna Seq a cada movimiento y lo inserta en la secuencia de su producto
// después de todos los movimientos con fecha <= a la suya. Todo el lote es visible a la vez.
func (s *Store) append(movements []*entity.StockMovement) {
	if len(movements) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movements {
		s.seq++
		m.Seq = s.seq
		code := m.Product.Code
		list := s.movements[code]
		i := sort.Search(len(list), func(i int) bool { return list[i].Date.After(m.Date) })
		list = append(list, nil)
		copy(list[i+1:], list[i:])
		list[i] = m
		s.movements[code] = list
	}
}
