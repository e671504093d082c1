package entity

import (
	"fmt"
	"time"
)

// MovementKind es el tipo de un movimiento de stock (variante etiquetada).
// Cada tipo define cómo se acumula en el cálculo de stock (ver Apply).
type MovementKind string

// Tipos de movimiento.
const (
	MovementKindMovement  MovementKind = "movement"  // delta con signo (compra, pedido)
	MovementKindInventory MovementKind = "inventory" // conteo físico absoluto, reinicia el stock
)

// InventoryLabel etiqueta fija de los movimientos de inventario.
const InventoryLabel = "inventory"

// Valid indica si el tipo es conocido.
func (k MovementKind) Valid() bool {
	return k == MovementKindMovement || k == MovementKindInventory
}

// Apply aplica un movimiento de cantidad q sobre el acumulado acc.
// Un tipo desconocido es un defecto interno: entra en pánico.
func (k MovementKind) Apply(acc, q int) int {
	switch k {
	case MovementKindMovement:
		return acc + q
	case MovementKindInventory:
		return q
	}
	panic(fmt.Sprintf("entity: tipo de movimiento desconocido %q", string(k)))
}

// StockMovement es un hecho inmutable del libro de movimientos.
// Para Movement, Quantity es un delta con signo; para Inventory, un valor absoluto >= 0.
type StockMovement struct {
	ID        string
	Seq       int64 // orden de inserción asignado por el libro; desempata fechas iguales
	Date      time.Time
	Label     string
	Kind      MovementKind
	Product   *Product
	Quantity  int
	CreatedAt time.Time
	CreatedBy string // operador que registró el movimiento (opcional)
}

// IsInventory indica si el movimiento es un inventario (checkpoint).
func (m *StockMovement) IsInventory() bool {
	return m.Kind == MovementKindInventory
}

// ProductCode devuelve el código del producto o "" si no hay producto.
func (m *StockMovement) ProductCode() string {
	if m.Product == nil {
		return ""
	}
	return m.Product.Code
}

// Before ordena por (Date, Seq).
func (m *StockMovement) Before(other *StockMovement) bool {
	if !m.Date.Equal(other.Date) {
		return m.Date.Before(other.Date)
	}
	return m.Seq < other.Seq
}
