package tableview

import "time"

// Query is one full pass through the pipeline
type Query struct {
	Filter FilterSpec `json:"filter"`
	Sort   SortSpec   `json:"sort"`

	// Limit caps the returned rows, zero returns all of them
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Page is the bounded result of Apply
type Page struct {
	Rows   []Record `json:"rows"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// Apply filters, sorts and then slices records
// Total counts the filtered records before paging
func Apply(records []Record, q Query, opts ...SortOption) Page {
	rows := Sort(Filter(records, q.Filter), q.Sort, opts...)
	total := len(rows)

	off := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 && q.Limit < total-off {
		end = off + q.Limit
	}
	return Page{Rows: rows[off:end], Total: total, Limit: q.Limit, Offset: off}
}

// ViewState is the caller owned state behind one table on screen
// the zero value shows every record in input order
type ViewState struct {
	Filter FilterSpec
	Sort   SortSpec
}

// SetSearch replaces the search term
func (s *ViewState) SetSearch(term string) { s.Filter.Search = term }

// SetField replaces the accepted values for a field, no values clears it
func (s *ViewState) SetField(name string, vals ...Value) {
	if len(vals) == 0 {
		delete(s.Filter.Fields, name)
		return
	}
	if s.Filter.Fields == nil {
		s.Filter.Fields = map[string][]Value{}
	}
	s.Filter.Fields[name] = vals
}

// SetAnyOf adds a group matched against several fields
func (s *ViewState) SetAnyOf(fields []string, vals ...Value) {
	if len(fields) == 0 || len(vals) == 0 {
		return
	}
	s.Filter.AnyOf = append(s.Filter.AnyOf, FieldGroup{Fields: fields, Values: vals})
}

// SetDateRange bounds field between from and to, nil bounds are open
func (s *ViewState) SetDateRange(field string, from, to *time.Time) {
	if from == nil && to == nil {
		s.Filter.DateField = ""
		s.Filter.DateRange = nil
		return
	}
	s.Filter.DateField = field
	s.Filter.DateRange = &DateRange{Start: from, End: to}
}

// ToggleSort advances the sort for field
func (s *ViewState) ToggleSort(field string) { s.Sort = ToggleSort(s.Sort, field) }

// Reset clears search, filters and sort
func (s *ViewState) Reset() { *s = ViewState{} }

// Query snapshots the state into a Query
func (s ViewState) Query(limit, offset int) Query {
	return Query{Filter: s.Filter, Sort: s.Sort, Limit: limit, Offset: offset}
}
