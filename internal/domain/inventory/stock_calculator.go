package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MinDate es la fecha mínima posible para consultas de rango abiertas por la izquierda.
var MinDate = time.Time{}

// CalendarDate trunca t a su día calendario (según la zona de t) y lo expresa a medianoche UTC.
// Todas las fechas de movimiento se guardan en esta forma.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculateStock recorre los movimientos en orden y acumula el stock desde 0.
// Movement suma su delta; Inventory reinicia el acumulado a su valor.
// Los movimientos deben venir ordenados por (Date, Seq).
func CalculateStock(movements []*entity.StockMovement) int {
	stock := 0
	for _, m := range movements {
		stock = m.Kind.Apply(stock, m.Quantity)
	}
	return stock
}

// SortMovements ordena por (Date, Seq) en el lugar.
func SortMovements(movements []*entity.StockMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Before(movements[j])
	})
}

// ProductStock stock calculado de un producto.
type ProductStock struct {
	Product *entity.Product
	Stock   int
}

// StockByProduct agrupa movimientos (de cualquier producto, sin orden) por código de producto,
// ordena cada grupo y calcula su stock sin límite de fecha. El resultado va ordenado por código.
func StockByProduct(movements []*entity.StockMovement) []ProductStock {
	groups := make(map[string][]*entity.StockMovement)
	products := make(map[string]*entity.Product)
	for _, m := range movements {
		code := m.ProductCode()
		groups[code] = append(groups[code], m)
		if _, ok := products[code]; !ok {
			products[code] = m.Product
		}
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]ProductStock, 0, len(codes))
	for _, code := range codes {
		group := groups[code]
		SortMovements(group)
		result = append(result, ProductStock{Product: products[code], Stock: CalculateStock(group)})
	}
	return result
}
