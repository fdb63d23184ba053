package tableview

import (
	"encoding/json"
	"math"
	"testing"
)

func TestApply_Pipeline(t *testing.T) {
	q := Query{
		Filter: FilterSpec{Fields: map[string][]Value{"tipo": {String("vip"), String("regular")}}},
		Sort:   SortSpec{Field: "nombre", Direction: Asc},
	}
	p := Apply(clients(), q)
	if p.Total != 3 {
		t.Fatalf("total = %d, want 3", p.Total)
	}
	sameStrings(t, field(p.Rows, "nombre"), "Ana Martínez", "Juan Pérez", "María García")
}

func TestApply_Paging(t *testing.T) {
	in := nums(5, 4, 3, 2, 1)
	q := Query{Sort: SortSpec{Field: "n", Direction: Asc}, Limit: 2, Offset: 1}
	p := Apply(in, q)
	if p.Total != 5 || p.Offset != 1 || p.Limit != 2 {
		t.Fatalf("page meta = %+v", p)
	}
	sameStrings(t, field(p.Rows, "n"), "2", "3")

	p = Apply(in, Query{Offset: 10})
	if len(p.Rows) != 0 || p.Total != 5 || p.Offset != 5 {
		t.Fatalf("offset past end = %+v", p)
	}

	p = Apply(in, Query{Offset: -3, Limit: 100})
	if len(p.Rows) != 5 || p.Offset != 0 {
		t.Fatalf("negative offset = %+v", p)
	}
}

func TestApply_HugeLimit(t *testing.T) {
	p := Apply(nums(3, 2, 1), Query{Sort: SortSpec{Field: "n", Direction: Asc}, Limit: math.MaxInt, Offset: 1})
	if p.Total != 3 || p.Offset != 1 {
		t.Fatalf("page meta = %+v", p)
	}
	sameStrings(t, field(p.Rows, "n"), "2", "3")
}

func TestApply_EmptyInput(t *testing.T) {
	p := Apply(nil, Query{Filter: FilterSpec{Search: "x"}})
	if p.Total != 0 || len(p.Rows) != 0 {
		t.Fatalf("empty = %+v", p)
	}
}

func TestViewState_Lifecycle(t *testing.T) {
	var s ViewState
	s.SetSearch("a")
	s.SetField("tipo", String("vip"))
	s.SetDateRange("fechaRegistro", ts("2020-01-01"), nil)
	s.ToggleSort("nombre")
	s.ToggleSort("nombre")

	p := Apply(clients(), s.Query(0, 0))
	// Ana has a malformed date so only María survives
	sameIDs(t, p.Rows, 2)
	if s.Sort.Direction != Desc {
		t.Fatalf("sort = %+v", s.Sort)
	}

	s.SetField("tipo")
	if _, ok := s.Filter.Fields["tipo"]; ok {
		t.Fatalf("SetField with no values must clear")
	}
	s.SetDateRange("fechaRegistro", nil, nil)
	if s.Filter.DateRange != nil {
		t.Fatalf("clearing both bounds must drop the range")
	}

	s.SetAnyOf([]string{"nombre"}, String("x"))
	s.Reset()
	if !s.Filter.IsZero() || !s.Sort.IsZero() {
		t.Fatalf("Reset left state behind: %+v", s)
	}
	sameIDs(t, Apply(clients(), s.Query(0, 0)).Rows, 1, 2, 3, 4)
}

func TestPage_JSON(t *testing.T) {
	p := Apply(nums(2, 1), Query{Sort: SortSpec{Field: "n", Direction: Asc}})
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"rows":[{"id":2,"n":1},{"id":1,"n":2}],"total":2,"limit":0,"offset":0}`
	if string(b) != want {
		t.Fatalf("json = %s\nwant %s", b, want)
	}
}
