package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// fakeRow entrega valores fijos en el orden de movementColumns.
type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("se esperaban %d columnas, llegaron %d", len(r), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r[i].(int64)
		case *int:
			*p = r[i].(int)
		case *string:
			*p = r[i].(string)
		case *time.Time:
			*p = r[i].(time.Time)
		default:
			return fmt.Errorf("destino no soportado %T", d)
		}
	}
	return nil
}

func movementRow(kind, code string, quantity int) fakeRow {
	created := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.FixedZone("COT", -5*3600))
	return fakeRow{
		int64(7), "mov-1", date, "Compra", kind, quantity, created, "user-1",
		"prod-" + code, code, created,
	}
}

func TestScanMovement(t *testing.T) {
	m, err := scanMovement(movementRow("movement", "EAN00001", 4), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.Seq)
	assert.Equal(t, entity.MovementKindMovement, m.Kind)
	assert.Equal(t, 4, m.Quantity)
	assert.Equal(t, "EAN00001", m.ProductCode())
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), m.Date)
}

func TestScanMovement_CompartePunteroDeProducto(t *testing.T) {
	cache := map[string]*entity.Product{}
	a, err := scanMovement(movementRow("movement", "EAN00001", 1), cache)
	require.NoError(t, err)
	b, err := scanMovement(movementRow("inventory", "EAN00001", 5), cache)
	require.NoError(t, err)
	assert.Same(t, a.Product, b.Product)
}

func TestScanMovement_TipoDesconocido(t *testing.T) {
	_, err := scanMovement(movementRow("ajuste", "EAN00001", 1), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ajuste")
}
