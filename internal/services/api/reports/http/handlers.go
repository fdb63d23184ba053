// Package http provides http transport for reports
package http

import (
	"fmt"
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/platform/files"
	"backoffice/internal/platform/net/http/bind"
	"backoffice/internal/platform/net/middleware"
	"backoffice/internal/services/api/reports/domain"
	svc "backoffice/internal/services/api/reports/service"
)

// exportBody accepts an empty body as the unfiltered view
var exportBody = bind.JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true, AllowEmptyBody: true}

// RecordRole is the session role allowed to add, change and delete records
const RecordRole = "admin"

// Register mounts reports endpoints on the given router, every route needs a session
// renders share one throttle so a burst of exports queues instead of piling up
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/", h.catalog)
		httpkit.Get(pr, "/finance/summary", h.financeSummary)
		httpkit.PostJSON[domain.ToggleInput](pr, "/sort/toggle", h.toggleSort)
		httpkit.PostJSON[domain.ViewInput](pr, "/{dataset}/view", h.view)
		httpkit.Get(pr, "/{dataset}/records/{id}", h.getRecord)

		admin := pr.With(httpkit.RequireRole(RecordRole))
		httpkit.PostJSON[domain.RecordInput](admin, "/{dataset}/records", h.addRecord)
		httpkit.PutJSON[domain.RecordInput](admin, "/{dataset}/records/{id}", h.updateRecord)
		httpkit.Delete(admin, "/{dataset}/records/{id}", h.deleteRecord)

		render := pr.With(middleware.Throttle(4, 16, 30*time.Second))
		render.Post("/{dataset}/export/csv", h.exportCSV)
		render.Post("/{dataset}/export/pdf", h.exportPDF)
		render.Post("/{dataset}/export/preview", h.preview)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /reports Reports reportsCatalog
// @Summary List datasets
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Dataset "ok"
// @Router /reports [get]
func (h *handlers) catalog(r *stdhttp.Request) (any, error) {
	return h.svc.Catalog(r.Context())
}

// swagger:route POST /reports/{dataset}/view Reports reportsView
// @Summary Filtered, sorted page of a dataset
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param payload body domain.ViewInput true "View state"
// @Success 200 {object} domain.View "ok"
// @Failure 404 {object} httpkit.Envelope "unknown dataset"
// @Failure 422 {object} httpkit.Envelope "bad filter value"
// @Router /reports/{dataset}/view [post]
func (h *handlers) view(r *stdhttp.Request, in domain.ViewInput) (any, error) {
	return h.svc.View(r.Context(), chi.URLParam(r, "dataset"), in)
}

// swagger:route POST /reports/sort/toggle Reports reportsToggleSort
// @Summary Next sort state after a header click
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ToggleInput true "Current sort and clicked field"
// @Success 200 {object} domain.SortInput "ok"
// @Router /reports/sort/toggle [post]
func (h *handlers) toggleSort(_ *stdhttp.Request, in domain.ToggleInput) (any, error) {
	return h.svc.ToggleSort(in), nil
}

// swagger:route POST /reports/{dataset}/records Reports reportsAddRecord
// @Summary Add a record to a dataset
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param payload body domain.RecordInput true "Column values"
// @Success 201 {object} object "created"
// @Failure 403 {object} httpkit.Envelope "role may not add records"
// @Failure 409 {object} httpkit.Envelope "duplicate id"
// @Failure 422 {object} httpkit.Envelope "unknown column or bad value"
// @Router /reports/{dataset}/records [post]
func (h *handlers) addRecord(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	rec, err := h.svc.AddRecord(r.Context(), chi.URLParam(r, "dataset"), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rec), nil
}

// swagger:route GET /reports/{dataset}/records/{id} Reports reportsGetRecord
// @Summary One record with its line items
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param id path string true "Record id"
// @Success 200 {object} domain.RecordDetail "ok"
// @Failure 404 {object} httpkit.Envelope "unknown dataset or record"
// @Router /reports/{dataset}/records/{id} [get]
func (h *handlers) getRecord(r *stdhttp.Request) (any, error) {
	return h.svc.GetRecord(r.Context(), chi.URLParam(r, "dataset"), chi.URLParam(r, "id"))
}

// swagger:route PUT /reports/{dataset}/records/{id} Reports reportsUpdateRecord
// @Summary Change columns of a record
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param id path string true "Record id"
// @Param payload body domain.RecordInput true "Column values to set"
// @Success 200 {object} object "updated record"
// @Failure 403 {object} httpkit.Envelope "role may not change records"
// @Failure 404 {object} httpkit.Envelope "unknown dataset or record"
// @Failure 422 {object} httpkit.Envelope "unknown column, bad value or id change"
// @Router /reports/{dataset}/records/{id} [put]
func (h *handlers) updateRecord(r *stdhttp.Request, in domain.RecordInput) (any, error) {
	return h.svc.UpdateRecord(r.Context(), chi.URLParam(r, "dataset"), chi.URLParam(r, "id"), in)
}

// swagger:route DELETE /reports/{dataset}/records/{id} Reports reportsDeleteRecord
// @Summary Delete a record and its line items
// @Tags Reports
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param id path string true "Record id"
// @Success 204 "deleted"
// @Failure 403 {object} httpkit.Envelope "role may not delete records"
// @Failure 404 {object} httpkit.Envelope "unknown dataset or record"
// @Router /reports/{dataset}/records/{id} [delete]
func (h *handlers) deleteRecord(r *stdhttp.Request) (any, error) {
	if err := h.svc.DeleteRecord(r.Context(), chi.URLParam(r, "dataset"), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route GET /reports/finance/summary Reports reportsFinanceSummary
// @Summary Income, expenses and balance of the finance movements
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.FinanceSummary "ok"
// @Router /reports/finance/summary [get]
func (h *handlers) financeSummary(r *stdhttp.Request) (any, error) {
	return h.svc.FinanceSummary(r.Context())
}

// swagger:route POST /reports/{dataset}/export/csv Reports reportsExportCSV
// @Summary Download the view as csv
// @Tags Reports
// @Accept json
// @Produce text/csv
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param payload body domain.ExportInput false "View state and file name"
// @Success 200 {file} file "csv attachment"
// @Failure 422 {object} httpkit.Envelope "no records to export"
// @Router /reports/{dataset}/export/csv [post]
func (h *handlers) exportCSV(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.ExportInput](r, exportBody)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	dst := files.NewAttachment(w)
	if _, err := h.svc.ExportCSV(r.Context(), chi.URLParam(r, "dataset"), in, dst); err != nil && !dst.Written() {
		httpkit.RespondError(w, r, err)
	}
}

// swagger:route POST /reports/{dataset}/export/pdf Reports reportsExportPDF
// @Summary Download the view as an A4 pdf
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param payload body domain.ExportInput false "View state and file name"
// @Success 200 {file} file "pdf attachment"
// @Failure 409 {object} httpkit.Envelope "export already running"
// @Failure 503 {object} httpkit.Envelope "render failed"
// @Router /reports/{dataset}/export/pdf [post]
func (h *handlers) exportPDF(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.ExportInput](r, exportBody)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	dst := files.NewAttachment(w)
	if _, err := h.svc.ExportPDF(r.Context(), chi.URLParam(r, "dataset"), in, dst); err != nil && !dst.Written() {
		httpkit.RespondError(w, r, err)
	}
}

// swagger:route POST /reports/{dataset}/export/preview Reports reportsPreview
// @Summary Render the view without saving it
// @Description Returns the page layout as json, or the rendered image with format=png
// @Tags Reports
// @Accept json
// @Produce json,image/png
// @Security BearerAuth
// @Param dataset path string true "Dataset name"
// @Param format query string false "png for the raw image"
// @Param payload body domain.ViewInput false "View state"
// @Success 200 {object} domain.PreviewInfo "ok"
// @Router /reports/{dataset}/export/preview [post]
func (h *handlers) preview(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.ViewInput](r, exportBody)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	dataset := chi.URLParam(r, "dataset")
	p, err := h.svc.Preview(r.Context(), dataset, in)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") != "png" {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response {
			return httpkit.OK(domain.PreviewInfo{Dataset: dataset, WidthMM: p.WidthMM, HeightMM: p.HeightMM, Pages: p.Pages})
		})(w, r)
		return
	}
	hd := w.Header()
	hd.Set("Content-Type", "image/png")
	hd.Set("Content-Length", strconv.Itoa(len(p.Image.PNG)))
	hd.Set("X-Preview-Pages", strconv.Itoa(p.Pages))
	hd.Set("X-Preview-Size-Mm", fmt.Sprintf("%.1fx%.1f", p.WidthMM, p.HeightMM))
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(p.Image.PNG)
}
