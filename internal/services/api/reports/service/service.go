// Package service contains reports workflows
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"backoffice/internal/core/delimited"
	"backoffice/internal/core/snapshot"
	"backoffice/internal/core/tableview"
	perr "backoffice/internal/platform/errors"
	"backoffice/internal/platform/files"
	"backoffice/internal/platform/logger"
	pnet "backoffice/internal/platform/net"
	tim "backoffice/internal/platform/time"
	"backoffice/internal/services/api/reports/domain"
	"backoffice/internal/services/api/reports/repo"
)

// DefaultCSVName is the base name of a csv export when none is given
const DefaultCSVName = "datos"

// FinanceDataset holds the movements behind FinanceSummary
const FinanceDataset = "movements"

const idAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Options tunes the service
type Options struct {
	// Locale drives string collation in sorts
	Locale language.Tag
	// DefaultPage is the page size when a view asks for none
	DefaultPage int
	// MaxPage caps the page size of a view
	MaxPage int
	// Archive receives pdf exports that have no per request destination
	Archive snapshot.DocumentSink
	// Audit receives one event per export attempt
	Audit domain.AuditPort
	// IDLength is the random part of generated record ids
	IDLength int
}

// Svc implements the reports service
type Svc struct {
	Repo repo.Repo

	catalog []domain.Dataset
	byName  map[string]domain.Dataset
	opt     Options
	snap    *snapshot.Exporter

	now   func() time.Time
	newID func() string
}

// New constructs a reports service over the given catalog
func New(r repo.Repo, catalog []domain.Dataset, opt Options) *Svc {
	if r == nil {
		panic("reports.Service requires a non nil Repo")
	}
	if opt.Locale == language.Und {
		opt.Locale = tableview.DefaultLocale
	}
	if opt.MaxPage <= 0 {
		opt.MaxPage = 500
	}
	if opt.DefaultPage <= 0 {
		opt.DefaultPage = min(50, opt.MaxPage)
	}
	if opt.IDLength <= 0 {
		opt.IDLength = 8
	}
	if opt.Archive == nil {
		opt.Archive = files.NewDir("exports")
	}
	s := &Svc{
		Repo:    r,
		catalog: append([]domain.Dataset(nil), catalog...),
		byName:  make(map[string]domain.Dataset, len(catalog)),
		opt:     opt,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, ds := range catalog {
		s.byName[ds.Name] = ds
	}
	s.snap = snapshot.New(
		snapshot.NewTableRenderer(snapshot.TableSourceFunc(s.region)),
		snapshot.NewPDFEmbedder(opt.Archive, ""),
	)
	return s
}

// Catalog lists the datasets with their current row counts
func (s *Svc) Catalog(ctx context.Context) ([]domain.Dataset, error) {
	out := make([]domain.Dataset, 0, len(s.catalog))
	for _, ds := range s.catalog {
		rows, err := s.Repo.Records(ctx, ds.Name)
		if err != nil {
			return nil, err
		}
		ds.Rows = len(rows)
		out = append(out, ds)
	}
	return out, nil
}

// View returns one filtered, sorted page of dataset
func (s *Svc) View(ctx context.Context, dataset string, in domain.ViewInput) (domain.View, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return domain.View{}, err
	}
	st, err := s.state(ds, in)
	if err != nil {
		return domain.View{}, err
	}
	records, err := s.records(ctx, ds)
	if err != nil {
		return domain.View{}, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = s.opt.DefaultPage
	}
	limit = min(limit, s.opt.MaxPage)

	page := tableview.Apply(records, st.Query(limit, in.Offset), tableview.WithLocale(s.opt.Locale))
	return domain.View{
		Dataset: ds.Name,
		Columns: ds.Columns,
		Sort:    sortOut(st.Sort),
		Rows:    page.Rows,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, nil
}

// ToggleSort returns the sort after a click on in.Field
func (s *Svc) ToggleSort(in domain.ToggleInput) domain.SortInput {
	return sortOut(tableview.ToggleSort(sortIn(in.Sort), strings.TrimSpace(in.Field)))
}

// Rows returns every record of dataset passing the view, in view order
func (s *Svc) Rows(ctx context.Context, dataset string, in domain.ViewInput) (domain.Dataset, []tableview.Record, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return domain.Dataset{}, nil, err
	}
	st, err := s.state(ds, in)
	if err != nil {
		return domain.Dataset{}, nil, err
	}
	records, err := s.records(ctx, ds)
	if err != nil {
		return domain.Dataset{}, nil, err
	}
	page := tableview.Apply(records, st.Query(0, 0), tableview.WithLocale(s.opt.Locale))
	ds.Rows = page.Total
	return ds, page.Rows, nil
}

// ExportCSV writes the rows of a view to dst as delimited text
func (s *Svc) ExportCSV(ctx context.Context, dataset string, in domain.ExportInput, dst delimited.Saver) (domain.ExportEvent, error) {
	start := s.now()
	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = DefaultCSVName
	}
	ev := s.event(ctx, dataset, domain.FormatCSV, files.WithExt(name, delimited.Ext))

	_, rows, err := s.Rows(ctx, dataset, in.ViewInput)
	if err == nil {
		ev.Rows = len(rows)
		err = delimited.Export(ctx, dst, rows, name)
		if errors.Is(err, delimited.ErrNoRecords) {
			err = perr.InvalidArgf("%s: no records to export", dataset)
		}
	}
	return s.finish(ctx, ev, start, err)
}

// Preview renders the view without saving a document
func (s *Svc) Preview(ctx context.Context, dataset string, in domain.ViewInput) (snapshot.Preview, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return snapshot.Preview{}, err
	}
	if _, err := s.state(ds, in); err != nil {
		return snapshot.Preview{}, err
	}
	p, err := s.snap.Preview(withView(ctx, in), ds.Name)
	if err != nil {
		return snapshot.Preview{}, renderErr(ds.Name, err)
	}
	return p, nil
}

// ExportPDF renders the view and saves it as an A4 document into dst
// a nil dst saves into the archive
func (s *Svc) ExportPDF(ctx context.Context, dataset string, in domain.ExportInput, dst snapshot.DocumentSink) (domain.ExportEvent, error) {
	start := s.now()
	name := strings.TrimSpace(in.FileName)
	if name == "" {
		name = snapshot.DefaultFileName
	}
	name = files.WithExt(name, ".pdf")
	ev := s.event(ctx, dataset, domain.FormatPDF, name)

	ds, rows, err := s.Rows(ctx, dataset, in.ViewInput)
	if err != nil {
		return s.finish(ctx, ev, start, err)
	}
	ev.Rows = len(rows)
	if dst == nil {
		dst = s.opt.Archive
	}
	err = s.snap.ExportWith(withView(ctx, in.ViewInput), snapshot.NewPDFEmbedder(dst, ds.Title), ds.Name, name)
	if err != nil {
		err = renderErr(ds.Name, err)
	}
	return s.finish(ctx, ev, start, err)
}

// Busy reports whether a pdf export of dataset is running
func (s *Svc) Busy(dataset string) bool { return s.snap.Busy(dataset) }

// AddRecord appends a record built from in.Fields
// keys must be columns of the dataset, a missing id is generated from the dataset prefix
func (s *Svc) AddRecord(ctx context.Context, dataset string, in domain.RecordInput) (tableview.Record, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return tableview.Record{}, err
	}
	if err := checkColumns(ds, in.Fields); err != nil {
		return tableview.Record{}, err
	}

	id, err := s.recordID(ds, in.Fields[repo.IDField])
	if err != nil {
		return tableview.Record{}, err
	}
	rec := tableview.NewRecord(tableview.F(repo.IDField, tableview.String(id)))
	if err := setColumns(ds, &rec, in.Fields); err != nil {
		return tableview.Record{}, err
	}

	if err := s.Repo.Append(ctx, ds.Name, rec); err != nil {
		return tableview.Record{}, err
	}
	logger.C(ctx).Info().Str("dataset", ds.Name).Str("id", id).Msg("record added")
	return rec, nil
}

// GetRecord returns one record with its line items and their total
func (s *Svc) GetRecord(ctx context.Context, dataset, id string) (domain.RecordDetail, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return domain.RecordDetail{}, err
	}
	id, err = recordKey(id)
	if err != nil {
		return domain.RecordDetail{}, err
	}
	rec, err := s.Repo.Get(ctx, ds.Name, id)
	if err != nil {
		return domain.RecordDetail{}, err
	}
	lines, err := s.Repo.Lines(ctx, ds.Name, id)
	if err != nil {
		return domain.RecordDetail{}, err
	}
	out := domain.RecordDetail{Dataset: ds.Name, Record: rec.Coerce(ds.Kinds()), Lines: lines, LinesTotal: decimal.Zero}
	for _, l := range lines {
		out.LinesTotal = out.LinesTotal.Add(l.Subtotal)
	}
	return out, nil
}

// UpdateRecord sets the given columns on an existing record and keeps the rest
// the id cannot change
func (s *Svc) UpdateRecord(ctx context.Context, dataset, id string, in domain.RecordInput) (tableview.Record, error) {
	ds, err := s.dataset(dataset)
	if err != nil {
		return tableview.Record{}, err
	}
	id, err = recordKey(id)
	if err != nil {
		return tableview.Record{}, err
	}
	if raw, ok := in.Fields[repo.IDField]; ok {
		v, err := jsonValue(repo.IDField, raw)
		if err != nil {
			return tableview.Record{}, err
		}
		if strings.TrimSpace(v.String()) != id {
			return tableview.Record{}, perr.WithField(perr.InvalidArgf("%s: id %q cannot change to %q", ds.Name, id, v.String()), repo.IDField)
		}
	}
	if err := checkColumns(ds, in.Fields); err != nil {
		return tableview.Record{}, err
	}

	rec, err := s.Repo.Get(ctx, ds.Name, id)
	if err != nil {
		return tableview.Record{}, err
	}
	if err := setColumns(ds, &rec, in.Fields); err != nil {
		return tableview.Record{}, err
	}
	if err := s.Repo.Update(ctx, ds.Name, id, rec); err != nil {
		return tableview.Record{}, err
	}
	logger.C(ctx).Info().Str("dataset", ds.Name).Str("id", id).Int("fields", len(in.Fields)).Msg("record updated")
	return rec.Coerce(ds.Kinds()), nil
}

// DeleteRecord removes a record and its line items
func (s *Svc) DeleteRecord(ctx context.Context, dataset, id string) error {
	ds, err := s.dataset(dataset)
	if err != nil {
		return err
	}
	id, err = recordKey(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, ds.Name, id); err != nil {
		return err
	}
	logger.C(ctx).Info().Str("dataset", ds.Name).Str("id", id).Msg("record deleted")
	return nil
}

// FinanceSummary totals income and expenses over the finance movements
func (s *Svc) FinanceSummary(ctx context.Context) (domain.FinanceSummary, error) {
	ds, err := s.dataset(FinanceDataset)
	if err != nil {
		return domain.FinanceSummary{}, err
	}
	records, err := s.records(ctx, ds)
	if err != nil {
		return domain.FinanceSummary{}, err
	}
	out := domain.FinanceSummary{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, r := range records {
		tipo, _ := r.Get("tipo")
		monto, _ := r.Get("monto")
		n, ok := monto.Float()
		if !ok {
			continue
		}
		amount := decimal.NewFromFloat(n)
		switch strings.ToLower(tipo.String()) {
		case "ingreso":
			out.Income = out.Income.Add(amount)
		case "egreso":
			out.Expenses = out.Expenses.Add(amount)
		default:
			continue
		}
		out.Movements++
	}
	out.Balance = out.Income.Sub(out.Expenses)
	return out, nil
}

func (s *Svc) dataset(name string) (domain.Dataset, error) {
	ds, ok := s.byName[strings.TrimSpace(name)]
	if !ok {
		return domain.Dataset{}, perr.NotFoundf("dataset %q not found", name)
	}
	return ds, nil
}

// records loads dataset with values coerced to the column kinds
func (s *Svc) records(ctx context.Context, ds domain.Dataset) ([]tableview.Record, error) {
	rows, err := s.Repo.Records(ctx, ds.Name)
	if err != nil {
		return nil, err
	}
	kinds := ds.Kinds()
	for i := range rows {
		rows[i] = rows[i].Coerce(kinds)
	}
	return rows, nil
}

// state turns a view request into engine state
// filter values are coerced to the column kind so "12" matches a numeric column
func (s *Svc) state(ds domain.Dataset, in domain.ViewInput) (tableview.ViewState, error) {
	var st tableview.ViewState
	kinds := ds.Kinds()

	st.SetSearch(in.Search)
	for field, raw := range in.Filters {
		vals, err := fieldValues(field, raw, kinds[field])
		if err != nil {
			return st, err
		}
		st.SetField(field, vals...)
	}
	for _, g := range in.AnyOf {
		if len(g.Fields) == 0 {
			continue
		}
		vals, err := groupValues(g.Fields, g.Values, kinds)
		if err != nil {
			return st, err
		}
		st.SetAnyOf(g.Fields, vals...)
	}

	from, err := parseDay("date_from", in.DateFrom)
	if err != nil {
		return st, err
	}
	to, err := parseDay("date_to", in.DateTo)
	if err != nil {
		return st, err
	}
	if from != nil || to != nil {
		field := strings.TrimSpace(in.DateField)
		if field == "" {
			field = ds.DateField
		}
		if field == "" {
			return st, perr.WithField(perr.InvalidArgf("%s has no date column", ds.Name), "date_field")
		}
		st.SetDateRange(field, from, to)
	}

	st.Sort = sortIn(in.Sort)
	return st, nil
}

func recordKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", perr.WithField(perr.InvalidArgf("record id is required"), repo.IDField)
	}
	return id, nil
}

// checkColumns rejects keys that are neither a column nor the id
func checkColumns(ds domain.Dataset, fields map[string]any) error {
	for key := range fields {
		if _, ok := ds.Column(key); !ok && key != repo.IDField {
			return perr.WithField(perr.InvalidArgf("%s: unknown column %q", ds.Name, key), key)
		}
	}
	return nil
}

// setColumns stores fields on rec coerced to the column kinds, in column order
func setColumns(ds domain.Dataset, rec *tableview.Record, fields map[string]any) error {
	kinds := ds.Kinds()
	for _, c := range ds.Columns {
		if c.Key == repo.IDField {
			continue
		}
		raw, ok := fields[c.Key]
		if !ok {
			continue
		}
		v, err := fieldValue(c.Key, raw, kinds[c.Key])
		if err != nil {
			return err
		}
		rec.Set(c.Key, v)
	}
	return nil
}

func (s *Svc) recordID(ds domain.Dataset, raw any) (string, error) {
	if raw != nil {
		v, err := jsonValue(repo.IDField, raw)
		if err != nil {
			return "", err
		}
		if id := strings.TrimSpace(v.String()); id != "" {
			return id, nil
		}
	}
	suffix, err := nanoid.Generate(idAlphabet, s.opt.IDLength)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "generate id")
	}
	if ds.IDPrefix == "" {
		return suffix, nil
	}
	return ds.IDPrefix + "-" + suffix, nil
}

func (s *Svc) event(ctx context.Context, dataset, format, fileName string) domain.ExportEvent {
	return domain.ExportEvent{
		ID:       s.newID(),
		Dataset:  dataset,
		Format:   format,
		FileName: fileName,
		User:     pnet.UserID(ctx),
		At:       s.now().UTC(),
	}
}

func (s *Svc) finish(ctx context.Context, ev domain.ExportEvent, start time.Time, err error) (domain.ExportEvent, error) {
	ev.Took = s.now().Sub(start)
	ev.OK = err == nil
	if err != nil {
		ev.Error = err.Error()
	}
	if s.opt.Audit != nil {
		s.opt.Audit.Record(ctx, ev)
	}
	return ev, err
}

// region feeds the table renderer, the view travels on ctx
func (s *Svc) region(ctx context.Context, regionID string) (snapshot.Table, error) {
	ds, rows, err := s.Rows(ctx, regionID, viewFrom(ctx))
	if err != nil {
		return snapshot.Table{}, err
	}
	tbl := snapshot.Table{Title: ds.Title, Columns: make([]string, 0, len(ds.Columns))}
	for _, c := range ds.Columns {
		tbl.Columns = append(tbl.Columns, c.Header)
	}
	tbl.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, len(ds.Columns))
		for _, c := range ds.Columns {
			v, _ := r.Get(c.Key)
			cells = append(cells, v.String())
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl, nil
}

type viewKey struct{}

func withView(ctx context.Context, in domain.ViewInput) context.Context {
	return context.WithValue(ctx, viewKey{}, in)
}

func viewFrom(ctx context.Context) domain.ViewInput {
	in, _ := ctx.Value(viewKey{}).(domain.ViewInput)
	return in
}

// renderErr maps snapshot failures onto api errors
func renderErr(dataset string, err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	if errors.Is(err, snapshot.ErrInFlight) {
		return perr.Conflictf("%s: pdf export already in progress", dataset)
	}
	if out, ok := perr.FromContext(err, "%s: export canceled", dataset); ok {
		return out
	}
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: render failed", dataset)
}

// ParseLocale reads the collation locale for sorts
// an unknown tag logs a warning and falls back to Spanish
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		logger.Named("reports").Warn().Err(err).Str("locale", s).Msg("unknown locale, using spanish")
		return language.Spanish
	}
	return tag
}

func sortIn(in domain.SortInput) tableview.SortSpec {
	field := strings.TrimSpace(in.Field)
	if field == "" {
		return tableview.SortSpec{}
	}
	dir := tableview.Asc
	if strings.EqualFold(in.Direction, string(tableview.Desc)) {
		dir = tableview.Desc
	}
	return tableview.SortSpec{Field: field, Direction: dir}
}

func sortOut(s tableview.SortSpec) domain.SortInput {
	if s.IsZero() {
		return domain.SortInput{}
	}
	return domain.SortInput{Field: s.Field, Direction: string(s.Direction)}
}

func parseDay(field, s string) (*time.Time, error) {
	t, err := tim.ParseDay(s)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("%s: %v", field, err), field)
	}
	return t, nil
}

func fieldValues(field string, raw []any, kind tableview.Kind) ([]tableview.Value, error) {
	out := make([]tableview.Value, 0, len(raw))
	for _, r := range raw {
		v, err := fieldValue(field, r, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// groupValues keeps values as sent, the engine coerces them per field
// a value no listed column can hold is rejected
func groupValues(fields []string, raw []any, kinds map[string]tableview.Kind) ([]tableview.Value, error) {
	out := make([]tableview.Value, 0, len(raw))
	for _, r := range raw {
		v, err := jsonValue(fields[0], r)
		if err != nil {
			return nil, err
		}
		fits := false
		for _, f := range fields {
			if k := kinds[f]; k == tableview.KindNull {
				fits = true
			} else if _, ok := v.Coerce(k); ok {
				fits = true
			}
		}
		if !fits {
			return nil, perr.WithField(perr.InvalidArgf("any_of %v: %v fits none of the columns", fields, r), "any_of")
		}
		out = append(out, v)
	}
	return out, nil
}

// fieldValue converts a decoded json value, coercing it when the column kind is known
func fieldValue(field string, raw any, kind tableview.Kind) (tableview.Value, error) {
	v, err := jsonValue(field, raw)
	if err != nil || kind == tableview.KindNull {
		return v, err
	}
	c, ok := v.Coerce(kind)
	if !ok {
		return tableview.Value{}, perr.WithField(perr.InvalidArgf("%s: %v is not a %s", field, raw, kind), field)
	}
	return c, nil
}

func jsonValue(field string, raw any) (tableview.Value, error) {
	switch x := raw.(type) {
	case nil:
		return tableview.Null(), nil
	case string:
		return tableview.String(x), nil
	case float64:
		return tableview.Number(x), nil
	case int:
		return tableview.Int(x), nil
	case bool:
		return tableview.Bool(x), nil
	case time.Time:
		return tableview.Date(x), nil
	default:
		return tableview.Value{}, perr.WithField(perr.InvalidArgf("%s: unsupported value %T", field, raw), field)
	}
}
