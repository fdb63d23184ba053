// Package domain holds DTOs for reports http and service contracts
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/tableview"
)

// Column describes one displayed column of a dataset
type Column struct {
	Key        string `json:"key"                  yaml:"key"        example:"precio"`
	Header     string `json:"header"               yaml:"header"     example:"Precio"`
	Kind       string `json:"kind"                 yaml:"kind"       example:"number"`
	Sortable   bool   `json:"sortable,omitempty"   yaml:"sortable"   example:"true"`
	Filterable bool   `json:"filterable,omitempty" yaml:"filterable" example:"false"`
}

// Dataset is the catalog entry of a report
type Dataset struct {
	Name      string   `json:"name"                 example:"products"`
	Title     string   `json:"title"                example:"Productos"`
	IDPrefix  string   `json:"id_prefix"            example:"P"`
	DateField string   `json:"date_field,omitempty" example:"fecha"`
	Columns   []Column `json:"columns"`
	Rows      int      `json:"rows"                 example:"5"`
}

// Kinds maps column keys to their value kinds
func (d Dataset) Kinds() map[string]tableview.Kind {
	out := make(map[string]tableview.Kind, len(d.Columns))
	for _, c := range d.Columns {
		out[c.Key] = tableview.ParseKind(c.Kind)
	}
	return out
}

// Column looks up a column by key
func (d Dataset) Column(key string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// SortInput is a requested sort, an empty field keeps input order
type SortInput struct {
	Field     string `json:"field,omitempty"     validate:"omitempty,max=64"          example:"precio"`
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=asc desc" example:"desc"`
}

// GroupInput matches when any of Fields holds one of Values
type GroupInput struct {
	Fields []string `json:"fields" validate:"required,min=1,max=8,dive,min=1,max=64" example:"tiendaOrigen,tiendaDestino"`
	Values []any    `json:"values" validate:"max=50"                                  swaggertype:"array,string" example:"Cocina"`
}

// ViewInput is the filter, sort and page state of a table view
type ViewInput struct {
	Search    string           `json:"search,omitempty"     validate:"omitempty,max=200"                 example:"arroz"`
	Filters   map[string][]any `json:"filters,omitempty"    validate:"omitempty,max=16"                  swaggertype:"object"`
	AnyOf     []GroupInput     `json:"any_of,omitempty"     validate:"omitempty,max=8,dive"`
	DateField string           `json:"date_field,omitempty" validate:"omitempty,max=64"                  example:"fecha"`
	DateFrom  string           `json:"date_from,omitempty"  validate:"omitempty,datetime=2006-01-02"     example:"2023-05-15"`
	DateTo    string           `json:"date_to,omitempty"    validate:"omitempty,datetime=2006-01-02"     example:"2023-05-17"`
	Sort      SortInput        `json:"sort"`
	Limit     int              `json:"limit,omitempty"      validate:"omitempty,min=1,max=1000"          example:"50"`
	Offset    int              `json:"offset,omitempty"     validate:"omitempty,min=0"                   example:"0"`
}

// ExportInput is a view plus the name of the file to produce
type ExportInput struct {
	ViewInput
	FileName string `json:"file_name,omitempty" validate:"omitempty,max=120,filename" example:"reporte_ingresos.csv"`
}

// ToggleInput asks for the next sort state after a click on Field
type ToggleInput struct {
	Sort  SortInput `json:"sort"`
	Field string    `json:"field" validate:"required,max=64" example:"monto"`
}

// RecordInput is a new row for a dataset, or the columns to change on an existing one
type RecordInput struct {
	Fields map[string]any `json:"fields" validate:"required,min=1,max=64" swaggertype:"object"`
}

// LineItem is one product line of a purchase order or an invoice
type LineItem struct {
	Line           int             `json:"line"            example:"1"`
	Producto       string          `json:"producto"        example:"Aceite de oliva extra virgen"`
	Cantidad       decimal.Decimal `json:"cantidad"        swaggertype:"string" example:"10"`
	Unidad         string          `json:"unidad,omitempty" example:"Botella 500ml"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" swaggertype:"string" example:"45.9"`
	Subtotal       decimal.Decimal `json:"subtotal"        swaggertype:"string" example:"459"`
}

// RecordDetail is a single record with its line items, if the dataset has any
type RecordDetail struct {
	Dataset string           `json:"dataset"         example:"invoices"`
	Record  tableview.Record `json:"record"          swaggertype:"object"`
	Lines   []LineItem       `json:"lines,omitempty"`
	// LinesTotal sums the line subtotals, zero without lines
	LinesTotal decimal.Decimal `json:"lines_total" swaggertype:"string" example:"163.5"`
}

// View is one page of a dataset
type View struct {
	Dataset string             `json:"dataset" example:"income"`
	Columns []Column           `json:"columns"`
	Sort    SortInput          `json:"sort"`
	Rows    []tableview.Record `json:"rows"    swaggertype:"array,object"`
	Total   int                `json:"total"   example:"5"`
	Limit   int                `json:"limit"   example:"50"`
	Offset  int                `json:"offset"  example:"0"`
}

// PreviewInfo describes a rendered snapshot before it is saved
type PreviewInfo struct {
	Dataset  string  `json:"dataset"   example:"income"`
	WidthMM  float64 `json:"width_mm"  example:"210"`
	HeightMM float64 `json:"height_mm" example:"96.4"`
	Pages    int     `json:"pages"     example:"1"`
}

// FinanceSummary totals the finance movements
type FinanceSummary struct {
	Income    decimal.Decimal `json:"income"    swaggertype:"string" example:"4530.5"`
	Expenses  decimal.Decimal `json:"expenses"  swaggertype:"string" example:"4671.25"`
	Balance   decimal.Decimal `json:"balance"   swaggertype:"string" example:"-140.75"`
	Movements int             `json:"movements" example:"5"`
}

// Export formats
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportEvent records one export attempt
type ExportEvent struct {
	ID       string        `json:"id"`
	Dataset  string        `json:"dataset"`
	Format   string        `json:"format"`
	FileName string        `json:"file_name"`
	Rows     int           `json:"rows"`
	User     string        `json:"user,omitempty"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	At       time.Time     `json:"at"`
	Took     time.Duration `json:"took_ns"`
}
