package domain

import (
	"context"

	"backoffice/internal/core/delimited"
	"backoffice/internal/core/snapshot"
	"backoffice/internal/core/tableview"
)

// ServicePort defines the service contract for reports
type ServicePort interface {
	Catalog(ctx context.Context) ([]Dataset, error)
	View(ctx context.Context, dataset string, in ViewInput) (View, error)
	ToggleSort(in ToggleInput) SortInput
	Rows(ctx context.Context, dataset string, in ViewInput) (Dataset, []tableview.Record, error)
	ExportCSV(ctx context.Context, dataset string, in ExportInput, dst delimited.Saver) (ExportEvent, error)
	Preview(ctx context.Context, dataset string, in ViewInput) (snapshot.Preview, error)
	ExportPDF(ctx context.Context, dataset string, in ExportInput, dst snapshot.DocumentSink) (ExportEvent, error)
	AddRecord(ctx context.Context, dataset string, in RecordInput) (tableview.Record, error)
	GetRecord(ctx context.Context, dataset, id string) (RecordDetail, error)
	UpdateRecord(ctx context.Context, dataset, id string, in RecordInput) (tableview.Record, error)
	DeleteRecord(ctx context.Context, dataset, id string) error
	FinanceSummary(ctx context.Context) (FinanceSummary, error)
}

// AuditPort receives one event per export attempt
type AuditPort interface {
	Record(ctx context.Context, ev ExportEvent)
}
