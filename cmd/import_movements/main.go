// import_movements carga movimientos de stock desde un CSV (date;label;product_code;quantity).
//
// Uso: go run ./cmd/import_movements [-charset ISO-8859-1] [-operator id] archivo.csv
// El almacenamiento se toma de la configuración (STORAGE_DRIVER, DATABASE_URL, ...).
// Sale con código 1 si algún lote fue rechazado.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/stock-ledger/internal/app"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/application/stockimport"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(2)
	}

	charset := flag.String("charset", cfg.Import.Charset, "codificación del archivo (UTF-8, ISO-8859-1, windows-1252)")
	operator := flag.String("operator", "import", "operador registrado en los movimientos")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_movements [-charset X] [-operator id] archivo.csv")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	os.Exit(run(cfg, log, flag.Arg(0), *charset, *operator))
}

// run importa el archivo y devuelve el código de salida. Los defer cierran el archivo
// y el almacenamiento antes de que main llame a os.Exit.
func run(cfg *config.Config, log *logger.Logger, path, charset, operator string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stk, err := app.NewStock(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("inicializar almacenamiento")
		return 1
	}
	defer stk.Close()

	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("abrir CSV")
		return 1
	}
	defer f.Close()

	importer := stockimport.NewImporter(stk.Service,
		stockimport.WithCharset(charset),
		stockimport.WithLogger(log.Component("import")),
	)
	report, err := importer.Import(stock.WithOperator(ctx, operator), f)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		return 1
	}

	for _, failure := range report.Failures {
		fmt.Fprintln(os.Stderr, failure.String())
	}
	fmt.Printf("lotes: %d  movimientos: %d  rechazados: %d\n", report.Batches, report.Movements, len(report.Failures))
	if len(report.Failures) > 0 {
		return 1
	}
	return 0
}
