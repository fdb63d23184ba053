package tableview

import (
	"testing"

	"golang.org/x/text/language"
)

func nums(vals ...float64) []Record {
	out := make([]Record, 0, len(vals))
	for i, v := range vals {
		out = append(out, NewRecord(F("id", Int(i+1)), F("n", Number(v))))
	}
	return out
}

func field(rs []Record, name string) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		v, _ := r.Get(name)
		out = append(out, v.String())
	}
	return out
}

func sameStrings(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSort_NumbersAscDesc(t *testing.T) {
	in := nums(3, 1, 2)
	sameStrings(t, field(Sort(in, SortSpec{Field: "n", Direction: Asc}), "n"), "1", "2", "3")
	sameStrings(t, field(Sort(in, SortSpec{Field: "n", Direction: Desc}), "n"), "3", "2", "1")
	// input untouched
	sameStrings(t, field(in, "n"), "3", "1", "2")
}

func TestSort_EmptyFieldKeepsOrder(t *testing.T) {
	sameIDs(t, Sort(nums(3, 1, 2), SortSpec{}), 1, 2, 3)
}

func TestSort_Stable(t *testing.T) {
	rs := []Record{
		NewRecord(F("id", Int(1)), F("tipo", String("vip"))),
		NewRecord(F("id", Int(2)), F("tipo", String("nuevo"))),
		NewRecord(F("id", Int(3)), F("tipo", String("vip"))),
		NewRecord(F("id", Int(4)), F("tipo", String("nuevo"))),
	}
	sameIDs(t, Sort(rs, SortSpec{Field: "tipo", Direction: Asc}), 2, 4, 1, 3)
	sameIDs(t, Sort(rs, SortSpec{Field: "tipo", Direction: Desc}), 1, 3, 2, 4)
}

func TestSort_IsPermutation(t *testing.T) {
	in := clients()
	out := Sort(in, SortSpec{Field: "nombre", Direction: Desc})
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	seen := map[float64]int{}
	for _, id := range ids(out) {
		seen[id]++
	}
	for _, id := range ids(in) {
		if seen[id] != 1 {
			t.Fatalf("id %v appears %d times", id, seen[id])
		}
	}
}

func TestSort_LocaleAwareStrings(t *testing.T) {
	rs := []Record{
		NewRecord(F("id", Int(1)), F("s", String("zanahoria"))),
		NewRecord(F("id", Int(2)), F("s", String("Álvaro"))),
		NewRecord(F("id", Int(3)), F("s", String("ñame"))),
		NewRecord(F("id", Int(4)), F("s", String("nabo"))),
		NewRecord(F("id", Int(5)), F("s", String("azúcar"))),
	}
	got := field(Sort(rs, SortSpec{Field: "s", Direction: Asc}), "s")
	sameStrings(t, got, "Álvaro", "azúcar", "nabo", "ñame", "zanahoria")
}

func TestSort_WithLocale(t *testing.T) {
	rs := []Record{
		NewRecord(F("s", String("b"))),
		NewRecord(F("s", String("A"))),
	}
	got := field(Sort(rs, SortSpec{Field: "s", Direction: Asc}, WithLocale(language.English)), "s")
	sameStrings(t, got, "A", "b")
}

func TestSort_Dates(t *testing.T) {
	rs := []Record{
		NewRecord(F("id", Int(1)), F("fecha", Day(2024, 3, 1))),
		NewRecord(F("id", Int(2)), F("fecha", Day(2023, 12, 31))),
		NewRecord(F("id", Int(3)), F("fecha", Day(2024, 1, 15))),
	}
	sameIDs(t, Sort(rs, SortSpec{Field: "fecha", Direction: Asc}), 2, 3, 1)
	sameIDs(t, Sort(rs, SortSpec{Field: "fecha", Direction: Desc}), 1, 3, 2)
}

func TestSort_MixedKindsCompareEqual(t *testing.T) {
	rs := []Record{
		NewRecord(F("id", Int(1)), F("v", String("x"))),
		NewRecord(F("id", Int(2)), F("v", Bool(true))),
		NewRecord(F("id", Int(3))),
		NewRecord(F("id", Int(4)), F("v", Number(1))),
	}
	sameIDs(t, Sort(rs, SortSpec{Field: "v", Direction: Asc}), 1, 2, 3, 4)
	sameIDs(t, Sort(rs, SortSpec{Field: "v", Direction: Desc}), 1, 2, 3, 4)
}

func TestToggleSort_Cycle(t *testing.T) {
	s := SortSpec{}
	s = ToggleSort(s, "precio")
	if s != (SortSpec{Field: "precio", Direction: Asc}) {
		t.Fatalf("first toggle = %+v", s)
	}
	s = ToggleSort(s, "precio")
	if s.Direction != Desc {
		t.Fatalf("second toggle = %+v", s)
	}
	s = ToggleSort(s, "precio")
	if s.Direction != Asc {
		t.Fatalf("third toggle = %+v", s)
	}
}

func TestToggleSort_NewFieldResets(t *testing.T) {
	s := ToggleSort(SortSpec{Field: "precio", Direction: Desc}, "nombre")
	if s != (SortSpec{Field: "nombre", Direction: Asc}) {
		t.Fatalf("toggle to new field = %+v", s)
	}
}
