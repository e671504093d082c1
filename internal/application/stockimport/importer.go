// Package stockimport carga movimientos de stock desde archivos CSV.
//
// Formato: separador ';', una fila de cabecera y columnas
//
//	date;label;product_code;quantity
//
// Las filas consecutivas con la misma (date, label) forman un lote que se registra de forma
// atómica. Un lote rechazado se reporta y la importación sigue con el siguiente.
package stockimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

const (
	dateLayout = "2006-01-02"
	columns    = 4
)

// Recorder es la parte del motor de stock que usa el importador.
type Recorder interface {
	ResolveProduct(ctx context.Context, code string) (*entity.Product, error)
	RecordMovements(ctx context.Context, date time.Time, label string, entries []stock.ProductQuantity) error
}

// Failure lote rechazado: líneas del archivo (1-based, incluye cabecera) y causa.
type Failure struct {
	FirstLine int
	LastLine  int
	Date      string
	Label     string
	Err       error
}

func (f Failure) String() string {
	return fmt.Sprintf("líneas %d-%d (%s, %q): %v", f.FirstLine, f.LastLine, f.Date, f.Label, f.Err)
}

// Report resultado de una importación.
type Report struct {
	Batches   int // lotes registrados
	Movements int // movimientos registrados
	Failures  []Failure
}

// Option configura el Importer.
type Option func(*Importer)

// WithCharset define la codificación de entrada (UTF-8 por defecto).
func WithCharset(name string) Option {
	return func(i *Importer) { i.charset = name }
}

// WithLogger define el logger del importador.
func WithLogger(log zerolog.Logger) Option {
	return func(i *Importer) { i.log = log }
}

// Importer lee el CSV y registra los lotes en el motor.
type Importer struct {
	rec     Recorder
	charset string
	log     zerolog.Logger
}

// NewImporter construye el importador.
func NewImporter(rec Recorder, opts ...Option) *Importer {
	i := &Importer{rec: rec, charset: "UTF-8", log: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type row struct {
	line     int
	code     string
	quantity int
}

type batch struct {
	firstLine, lastLine int
	rawDate             string
	date                time.Time
	label               string
	rows                []row
	err                 error // primer error de parseo del lote
}

// Import lee todo r y registra cada lote. Devuelve error solo si el archivo no se puede leer
// o el contexto se cancela; los lotes rechazados quedan en Report.Failures.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	decoded, err := decodeReader(r, i.charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return &Report{}, nil
		}
		return nil, fmt.Errorf("leer cabecera CSV: %w", err)
	}

	report := &Report{}
	var current *batch
	flush := func() error {
		if current == nil {
			return nil
		}
		b := current
		current = nil
		return i.record(ctx, b, report)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return report, fmt.Errorf("leer CSV: %w", err)
			}
			return report, fmt.Errorf("CSV mal formado en la línea %d: %w", parseErr.Line, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		rawDate, label := field(record, 0), field(record, 1)
		if current == nil || current.rawDate != rawDate || current.label != label {
			if err := flush(); err != nil {
				return report, err
			}
			current = &batch{firstLine: line, rawDate: rawDate, label: label}
			current.date, current.err = parseDate(rawDate)
		}
		current.lastLine = line

		if current.err != nil {
			continue
		}
		if len(record) != columns {
			current.err = fmt.Errorf("%w: línea %d tiene %d columnas, se esperaban %d",
				domain.ErrInvalidInput, line, len(record), columns)
			continue
		}
		qty, err := strconv.Atoi(field(record, 3))
		if err != nil {
			current.err = fmt.Errorf("%w: cantidad inválida en la línea %d: %q",
				domain.ErrInvalidInput, line, field(record, 3))
			continue
		}
		current.rows = append(current.rows, row{line: line, code: field(record, 2), quantity: qty})
	}
	if err := flush(); err != nil {
		return report, err
	}

	i.log.Info().
		Int("batches", report.Batches).
		Int("movements", report.Movements).
		Int("failures", len(report.Failures)).
		Msg("importación terminada")
	return report, nil
}

// record registra un lote. Solo devuelve error si el contexto se canceló.
func (i *Importer) record(ctx context.Context, b *batch, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.err
	if err == nil {
		err = i.recordBatch(ctx, b)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		f := Failure{FirstLine: b.firstLine, LastLine: b.lastLine, Date: b.rawDate, Label: b.label, Err: err}
		report.Failures = append(report.Failures, f)
		i.log.Warn().Err(err).
			Int("first_line", b.firstLine).
			Int("last_line", b.lastLine).
			Str("label", b.label).
			Msg("lote rechazado")
		return nil
	}
	report.Batches++
	report.Movements += len(b.rows)
	return nil
}

func (i *Importer) recordBatch(ctx context.Context, b *batch) error {
	entries := make([]stock.ProductQuantity, 0, len(b.rows))
	for _, r := range b.rows {
		product, err := i.rec.ResolveProduct(ctx, r.code)
		if err != nil {
			return fmt.Errorf("línea %d: %w", r.line, err)
		}
		entries = append(entries, stock.ProductQuantity{Product: product, Quantity: r.quantity})
	}
	return i.rec.RecordMovements(ctx, b.date, b.label, entries)
}

// decodeReader envuelve r para convertir charset a UTF-8. El BOM de UTF-8 se descarta.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	name := strings.TrimSpace(charset)
	if name == "" {
		name = "UTF-8"
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: charset %q desconocido", domain.ErrInvalidInput, charset)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
	}
	if enc == unicode.UTF8 {
		return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())), nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q (formato %s)", domain.ErrInvalidInput, s, dateLayout)
	}
	return d, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
