package tableview

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{String("x,y"), "x,y"},
		{Int(1), "1"},
		{Number(12.5), "12.5"},
		{Bool(true), "true"},
		{Day(2024, 1, 15), "2024-01-15"},
		{Date(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)), "2024-01-15T10:30:00Z"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("%v String = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	if !Int(1).Equal(Number(1)) {
		t.Fatalf("numbers should be equal")
	}
	if Int(1).Equal(String("1")) {
		t.Fatalf("different kinds must not be equal")
	}
	est := time.FixedZone("EST", -5*3600)
	a := Date(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC))
	b := Date(time.Date(2024, 1, 1, 0, 0, 0, 0, est))
	if !a.Equal(b) {
		t.Fatalf("dates compare by instant")
	}
	if !Null().Equal(Value{}) {
		t.Fatalf("nulls are equal")
	}
}

func TestValue_Coerce(t *testing.T) {
	v, ok := String("2024-02-01").Coerce(KindDate)
	if !ok || v.Kind() != KindDate {
		t.Fatalf("coerce date = %v %v", v.Kind(), ok)
	}
	if _, ok := String("soon").Coerce(KindDate); ok {
		t.Fatalf("malformed date must not coerce")
	}
	if v, ok := String("3.5").Coerce(KindNumber); !ok || v.String() != "3.5" {
		t.Fatalf("coerce number = %v %v", v, ok)
	}
	if v, ok := String("true").Coerce(KindBool); !ok || v.Kind() != KindBool {
		t.Fatalf("coerce bool = %v %v", v, ok)
	}
	if v, ok := Int(7).Coerce(KindString); !ok || v.String() != "7" || v.Kind() != KindString {
		t.Fatalf("coerce string = %v %v", v, ok)
	}
	if v, ok := Null().Coerce(KindNumber); !ok || !v.IsNull() {
		t.Fatalf("null stays null")
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	in := `{"id":1,"nombre":"Ana","activo":true,"nota":null,"items":[1, 2],"precio":12.5}`
	var r Record
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	sameStrings(t, r.Keys(), "id", "nombre", "activo", "nota", "items", "precio")
	if v, _ := r.Get("items"); v.String() != "[1,2]" {
		t.Fatalf("nested = %q", v.String())
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"nombre":"Ana","activo":true,"nota":null,"items":"[1,2]","precio":12.5}`
	if string(out) != want {
		t.Fatalf("json = %s, want %s", out, want)
	}
}

func TestValue_JSONNonFinite(t *testing.T) {
	b, err := json.Marshal(Number(math.NaN()))
	if err != nil || string(b) != "null" {
		t.Fatalf("NaN json = %s %v", b, err)
	}
}

func TestRecord_UnmarshalRejectsArrays(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`[1,2]`), &r); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecord_SetKeepsOrder(t *testing.T) {
	r := NewRecord(F("b", Int(1)), F("a", Int(2)))
	r.Set("b", Int(3))
	r.Set("c", Int(4))
	sameStrings(t, r.Keys(), "b", "a", "c")
	if v, _ := r.Get("b"); v.String() != "3" {
		t.Fatalf("b = %v", v)
	}

	c := r.Coerce(map[string]Kind{"a": KindString})
	if v, _ := c.Get("a"); v.Kind() != KindString {
		t.Fatalf("coerced kind = %v", v.Kind())
	}
	if v, _ := r.Get("a"); v.Kind() != KindNumber {
		t.Fatalf("Coerce must not modify the receiver")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindString, KindNumber, KindBool, KindDate, KindNull} {
		if ParseKind(k.String()) != k {
			t.Fatalf("ParseKind(%q) mismatch", k.String())
		}
	}
}
