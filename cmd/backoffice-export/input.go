package main

import (
	"fmt"
	"strings"

	"backoffice/internal/core/tableview"
	str "backoffice/internal/platform/strings"
	"backoffice/internal/services/api/reports/domain"
)

// buildInput turns command flags into an export request
func buildInput(search string, filters, anyOf []string, dateField, from, to, sortArg string) (domain.ExportInput, error) {
	in := domain.ExportInput{ViewInput: domain.ViewInput{
		Search:    strings.TrimSpace(search),
		DateField: strings.TrimSpace(dateField),
		DateFrom:  strings.TrimSpace(from),
		DateTo:    strings.TrimSpace(to),
	}}

	for _, f := range filters {
		k, v, ok := str.Pair(f, "=")
		if !ok {
			return in, fmt.Errorf("bad --filter %q, want field=value", f)
		}
		if in.Filters == nil {
			in.Filters = map[string][]any{}
		}
		in.Filters[k] = append(in.Filters[k], v)
	}

	for _, g := range anyOf {
		k, v, found := strings.Cut(g, "=")
		if !found {
			return in, fmt.Errorf("bad --any-of %q, want field1,field2=value", g)
		}
		fields := str.List(k)
		if len(fields) == 0 {
			return in, fmt.Errorf("bad --any-of %q, no fields", g)
		}
		in.AnyOf = append(in.AnyOf, domain.GroupInput{Fields: fields, Values: []any{strings.TrimSpace(v)}})
	}

	if sortArg = strings.TrimSpace(sortArg); sortArg != "" {
		field, dir, _ := str.Pair(sortArg, ":")
		switch dir = strings.ToLower(dir); dir {
		case "":
			dir = string(tableview.Asc)
		case string(tableview.Asc), string(tableview.Desc):
		default:
			return in, fmt.Errorf("bad --sort %q, direction must be asc or desc", sortArg)
		}
		in.Sort = domain.SortInput{Field: field, Direction: dir}
	}
	return in, nil
}
