package stock

import (
	"context"
	"fmt"
	"time"
)

// Report resumen de stock de todos los productos con movimientos.
type Report struct {
	GeneratedAt time.Time
	Lines       []ProductStock // ordenadas por código
	Total       int            // suma de stocks > 0
	InStock     int            // productos con stock >= 0
}

// ReportGenerator puerto de salida para renderizar el reporte (PDF).
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, report *Report) ([]byte, error)
}

// BuildReport calcula el reporte con una única lectura del libro.
func (s *StockService) BuildReport(ctx context.Context) (*Report, error) {
	stocks, err := s.GetStockByProduct(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{GeneratedAt: s.now(), Lines: stocks}
	for _, ps := range stocks {
		if ps.Stock >= 0 {
			report.InStock++
		}
		if ps.Stock > 0 {
			report.Total += ps.Stock
		}
	}
	return report, nil
}

// ReportUseCase genera el reporte de stock en PDF.
type ReportUseCase struct {
	svc       *StockService
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(svc *StockService, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{svc: svc, generator: generator}
}

// DownloadStockReport devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadStockReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	report, err := uc.svc.BuildReport(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: calcular stock: %w", err)
	}
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("stock-%s.pdf", report.GeneratedAt.Format(dateLayout))
	return pdfBytes, filename, nil
}
