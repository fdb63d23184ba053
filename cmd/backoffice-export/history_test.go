package main

import (
	"bytes"
	"testing"

	"backoffice/internal/platform/testkit"
	"backoffice/internal/services/api/reports/audit"
)

func TestPrintTallies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printTallies(&buf, nil)
	testkit.MustContain(t, buf.String(), "no exports recorded")

	buf.Reset()
	printTallies(&buf, []audit.Tally{{Dataset: "income", Format: "csv", OK: 3, Failed: 1, Rows: 42}})
	testkit.MustContain(t, buf.String(), "income")
	testkit.MustContain(t, buf.String(), "3 ok    1 failed       42 rows")
}

func TestHistory_NeedsURL(t *testing.T) {
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")
	if err := historyCmd.Flags().Set("ch", ""); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	err := historyCmd.RunE(historyCmd, nil)
	if err == nil {
		t.Fatalf("expected missing url error")
	}
	testkit.MustContain(t, err.Error(), "--ch")
}
