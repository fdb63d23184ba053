package delimited

import (
	"context"
	"errors"
	"testing"

	tv "backoffice/internal/core/tableview"
)

type captureSaver struct {
	content, name, mime string
	calls               int
	err                 error
}

func (c *captureSaver) SaveTextFile(_ context.Context, content, fileName, mimeType string) error {
	c.calls++
	c.content, c.name, c.mime = content, fileName, mimeType
	return c.err
}

func TestEncode_QuotesEveryCell(t *testing.T) {
	t.Parallel()

	out, err := Encode([]tv.Record{tv.NewRecord(tv.F("a", tv.Int(1)), tv.F("b", tv.String("x,y")))})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\"a\",\"b\"\n\"1\",\"x,y\""
	if out != want {
		t.Fatalf("Encode = %q, want %q", out, want)
	}
}

func TestEncode_DoublesQuotes(t *testing.T) {
	t.Parallel()

	out, err := Encode([]tv.Record{tv.NewRecord(tv.F(`say "hi"`, tv.String(`she said "no"`)))})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\"say \"\"hi\"\"\"\n\"she said \"\"no\"\"\""
	if out != want {
		t.Fatalf("Encode = %q, want %q", out, want)
	}
}

func TestEncode_HeaderFromFirstRecord(t *testing.T) {
	t.Parallel()

	rs := []tv.Record{
		tv.NewRecord(tv.F("id", tv.Int(1)), tv.F("nombre", tv.String("Ana"))),
		tv.NewRecord(tv.F("nombre", tv.String("Luis")), tv.F("extra", tv.Bool(true))),
		tv.NewRecord(tv.F("id", tv.Int(3)), tv.F("nombre", tv.Null()), tv.F("fecha", tv.Day(2024, 1, 15))),
	}
	out, err := Encode(rs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\"id\",\"nombre\"\n\"1\",\"Ana\"\n\"\",\"Luis\"\n\"3\",\"\""
	if out != want {
		t.Fatalf("Encode = %q, want %q", out, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	t.Parallel()

	if _, err := Encode(nil); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}

func TestExport_Saves(t *testing.T) {
	t.Parallel()

	s := &captureSaver{}
	rs := []tv.Record{tv.NewRecord(tv.F("a", tv.Int(1)))}
	if err := Export(context.Background(), s, rs, "reporte-ingresos"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if s.name != "reporte-ingresos.csv" || s.mime != MIMEType || s.content != "\"a\"\n\"1\"" {
		t.Fatalf("saved %+v", s)
	}
}

func TestTryExport(t *testing.T) {
	t.Parallel()

	s := &captureSaver{}
	if TryExport(context.Background(), s, nil, "x") {
		t.Fatalf("empty export must report false")
	}
	if s.calls != 0 {
		t.Fatalf("saver called on empty input")
	}

	rs := []tv.Record{tv.NewRecord(tv.F("a", tv.Int(1)))}
	if !TryExport(context.Background(), s, rs, "x.csv") {
		t.Fatalf("expected success")
	}
	if s.name != "x.csv" {
		t.Fatalf("name = %q", s.name)
	}

	failing := SaverFunc(func(context.Context, string, string, string) error { return errors.New("disk full") })
	if TryExport(context.Background(), failing, rs, "x") {
		t.Fatalf("saver failure must report false")
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	if got := Quote(`a"b`); got != `"a""b"` {
		t.Fatalf("Quote = %s", got)
	}
	if got := Quote(""); got != `""` {
		t.Fatalf("Quote empty = %s", got)
	}
}
