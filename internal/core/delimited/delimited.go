// Package delimited turns record sets into quoted comma separated text
//
// Every cell, the header included, is wrapped in double quotes and any
// embedded quote is doubled. Rows are joined by a bare "\n".
package delimited

import (
	"context"
	"errors"
	"io"
	"strings"

	"backoffice/internal/core/tableview"
	"backoffice/internal/platform/files"
	"backoffice/internal/platform/logger"
)

// MIMEType is the content type handed to savers
const MIMEType = "text/csv;charset=utf-8;"

// Ext is the file extension appended to export names
const Ext = ".csv"

// ErrNoRecords is returned when there is nothing to export
var ErrNoRecords = errors.New("no records to export")

// Saver persists a text file, eg as a browser download or a file on disk
type Saver interface {
	SaveTextFile(ctx context.Context, content, fileName, mimeType string) error
}

// SaverFunc adapts a function to Saver
type SaverFunc func(ctx context.Context, content, fileName, mimeType string) error

// SaveTextFile calls f
func (f SaverFunc) SaveTextFile(ctx context.Context, content, fileName, mimeType string) error {
	return f(ctx, content, fileName, mimeType)
}

// Header returns the column names taken from the first record
func Header(records []tableview.Record) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].Keys()
}

// Encode renders records as text
// columns come from the first record, a key missing from a later record becomes an empty cell
func Encode(records []tableview.Record) (string, error) {
	var b strings.Builder
	if err := Write(&b, records); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams the encoded text to w
func Write(w io.Writer, records []tableview.Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	header := Header(records)
	bw := &errWriter{w: w}

	writeRow(bw, header)
	cells := make([]string, len(header))
	for _, r := range records {
		for i, k := range header {
			v, ok := r.Get(k)
			if !ok {
				cells[i] = ""
				continue
			}
			cells[i] = v.String()
		}
		bw.str("\n")
		writeRow(bw, cells)
	}
	return bw.err
}

// Quote wraps s in double quotes and doubles any quote inside it
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(w *errWriter, cells []string) {
	for i, c := range cells {
		if i > 0 {
			w.str(",")
		}
		w.str(Quote(c))
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// Export encodes records and hands them to s as fileName.csv
func Export(ctx context.Context, s Saver, records []tableview.Record, fileName string) error {
	content, err := Encode(records)
	if err != nil {
		return err
	}
	return s.SaveTextFile(ctx, content, files.WithExt(fileName, Ext), MIMEType)
}

// TryExport is Export reporting success as a bool
// failures are logged and never returned
func TryExport(ctx context.Context, s Saver, records []tableview.Record, fileName string) bool {
	log := logger.C(ctx)
	if err := Export(ctx, s, records, fileName); err != nil {
		log.Error().Err(err).Str("file", fileName).Int("rows", len(records)).Msg("csv export failed")
		return false
	}
	log.Info().Str("file", fileName).Int("rows", len(records)).Msg("csv exported")
	return true
}
