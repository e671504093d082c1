package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
)

type fakeGenerator struct {
	got *stock.Report
	err error
}

func (g *fakeGenerator) GenerateStockReport(_ context.Context, r *stock.Report) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestReport_TotalesYConteo(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "EAN00001")
	b := f.product(t, "EAN00002")
	c := f.product(t, "EAN00003")
	require.NoError(t, f.svc.RecordMovements(f.ctx, day(-2), "Pedido", []stock.ProductQuantity{
		{Product: a, Quantity: 4}, {Product: b, Quantity: -2}, {Product: c, Quantity: 0},
	}))

	report, err := f.svc.BuildReport(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.InStock)
	require.Len(t, report.Lines, 3)
	assert.Equal(t, "EAN00002", report.Lines[1].Product.Code)
}

func TestReportUseCase_Descarga(t *testing.T) {
	f := newFixture(t)
	gen := &fakeGenerator{}
	uc := stock.NewReportUseCase(f.svc, gen)

	data, name, err := uc.DownloadStockReport(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Equal(t, "stock-2024-03-10.pdf", name)
	require.NotNil(t, gen.got)
	assert.Empty(t, gen.got.Lines)
}

func TestReportUseCase_ErrorDelGenerador(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("fuente no disponible")
	uc := stock.NewReportUseCase(f.svc, &fakeGenerator{err: boom})

	_, _, err := uc.DownloadStockReport(f.ctx)
	assert.ErrorIs(t, err, boom)
}
