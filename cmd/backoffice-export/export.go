package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/files"
	"backoffice/internal/services/api/reports/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <dataset>",
	Short: "Export one dataset view",
	Example: `  backoffice-export export income --search tienda --sort monto:desc
  backoffice-export export movements --filter tipo=egreso --from 2023-05-13 --format pdf --out s3://reports/daily`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("search", "", "free text search over every field")
	f.StringArray("filter", nil, "field=value, repeat to accept more values")
	f.StringArray("any-of", nil, "field1,field2=value, matches when any field holds the value")
	f.String("date-field", "", "date column for --from and --to, defaults to the dataset date column")
	f.String("from", "", "first day to keep, YYYY-MM-DD")
	f.String("to", "", "last day to keep, YYYY-MM-DD")
	f.String("sort", "", "field[:asc|desc]")
	f.String("format", config.New().MayEnum("EXPORT_FORMAT", domain.FormatCSV, domain.FormatCSV, domain.FormatPDF), "csv or pdf")
	f.String("out", ".", "directory or s3://bucket/prefix")
	f.String("name", "", "file name, defaults to datos.csv or reporte.pdf")
	f.String("s3-region", "", "s3 region")
	f.String("s3-endpoint", "", "s3 compatible endpoint, eg minio")
	f.Duration("timeout", time.Minute, "give up after this long")
}

// saver is both destinations the service writes to
type saver interface {
	SaveTextFile(ctx context.Context, content, fileName, mimeType string) error
	SaveFile(ctx context.Context, data []byte, fileName, mimeType string) error
}

func runExport(cmd *cobra.Command, args []string) error {
	fl := cmd.Flags()
	search, _ := fl.GetString("search")
	filters, _ := fl.GetStringArray("filter")
	anyOf, _ := fl.GetStringArray("any-of")
	dateField, _ := fl.GetString("date-field")
	from, _ := fl.GetString("from")
	to, _ := fl.GetString("to")
	sortArg, _ := fl.GetString("sort")
	format, _ := fl.GetString("format")
	out, _ := fl.GetString("out")
	name, _ := fl.GetString("name")
	region, _ := fl.GetString("s3-region")
	endpoint, _ := fl.GetString("s3-endpoint")
	timeout, _ := fl.GetDuration("timeout")

	in, err := buildInput(search, filters, anyOf, dateField, from, to, sortArg)
	if err != nil {
		return err
	}
	in.FileName = name

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	dst, err := destination(ctx, out, files.S3Options{Region: region, Endpoint: endpoint})
	if err != nil {
		return err
	}
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	var ev domain.ExportEvent
	switch strings.ToLower(format) {
	case domain.FormatCSV:
		ev, err = e.svc.ExportCSV(ctx, args[0], in, dst)
	case domain.FormatPDF:
		ev, err = e.svc.ExportPDF(ctx, args[0], in, dst)
	default:
		return fmt.Errorf("unknown format %q, want csv or pdf", format)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows -> %s\n", ev.Dataset, ev.Rows, where(out, ev.FileName))
	return nil
}

// destination resolves --out to a bucket or a directory
func destination(ctx context.Context, out string, o files.S3Options) (saver, error) {
	if bucket, prefix, ok := files.ParseS3URL(out); ok {
		b, err := files.NewBucket(ctx, bucket, prefix, o)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	if strings.HasPrefix(out, "s3:") {
		return nil, fmt.Errorf("bad s3 url %q, want s3://bucket/prefix", out)
	}
	return files.NewDir(out), nil
}

func where(out, fileName string) string {
	if _, _, ok := files.ParseS3URL(out); ok {
		return strings.TrimSuffix(out, "/") + "/" + fileName
	}
	return files.NewDir(out).Path(fileName)
}
