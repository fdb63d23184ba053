// Package snapshot exports a rendered screen region as a paginated A4 document
//
// An export runs render, then embed, then save. A region has at most one
// export in flight; a second trigger for the same region fails fast with
// ErrInFlight. Each call produces exactly one Notification.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"backoffice/internal/platform/logger"
)

// A4 page size in millimetres, portrait
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// DefaultFileName is used when the caller gives none
const DefaultFileName = "reporte.pdf"

var (
	// ErrInFlight is returned when the region is already being exported
	ErrInFlight = errors.New("export already in progress")

	// ErrEmptyImage is returned when a renderer produced nothing
	ErrEmptyImage = errors.New("rendered image is empty")
)

// Image is a rendered region in pixels
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Renderer rasterizes a region of the screen by id
type Renderer interface {
	RenderRegion(ctx context.Context, regionID string) (Image, error)
}

// Embedder places an image on A4 pages and saves the document
type Embedder interface {
	EmbedAndSave(ctx context.Context, img Image, widthMM, heightMM float64, fileName string) error
}

// Notification is the single outcome report of an export
type Notification struct {
	RegionID string
	FileName string
	OK       bool
	Err      error
	Took     time.Duration
}

// Notifier receives export outcomes
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// LogNotifier writes outcomes to the request logger
type LogNotifier struct{}

// Notify logs n
func (LogNotifier) Notify(ctx context.Context, n Notification) {
	log := logger.C(ctx)
	if n.OK {
		log.Info().Str("region", n.RegionID).Str("file", n.FileName).Dur("took", n.Took).Msg("pdf exported")
		return
	}
	log.Error().Err(n.Err).Str("region", n.RegionID).Str("file", n.FileName).Dur("took", n.Took).Msg("pdf export failed")
}

// Preview is a render without a saved document
type Preview struct {
	Image    Image
	WidthMM  float64
	HeightMM float64
	Pages    int
}

// Exporter coordinates renderer, embedder and notifier
type Exporter struct {
	render Renderer
	embed  Embedder
	notify Notifier
	now    func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures an Exporter
type Option func(*Exporter)

// WithNotifier replaces the default log notifier
func WithNotifier(n Notifier) Option {
	return func(x *Exporter) {
		if n != nil {
			x.notify = n
		}
	}
}

// New builds an Exporter, renderer and embedder are required
func New(r Renderer, e Embedder, opts ...Option) *Exporter {
	if r == nil {
		panic("snapshot.Exporter requires a non nil Renderer")
	}
	if e == nil {
		panic("snapshot.Exporter requires a non nil Embedder")
	}
	x := &Exporter{
		render:   r,
		embed:    e,
		notify:   LogNotifier{},
		now:      time.Now,
		inflight: map[string]struct{}{},
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Dimensions maps an image onto the page width keeping its aspect ratio
func Dimensions(img Image) (widthMM, heightMM float64, err error) {
	if img.Width <= 0 || img.Height <= 0 {
		return 0, 0, ErrEmptyImage
	}
	return PageWidthMM, float64(img.Height) * PageWidthMM / float64(img.Width), nil
}

// Pages is the number of A4 pages an image of heightMM spans
func Pages(heightMM float64) int {
	if heightMM <= 0 {
		return 0
	}
	n := int(heightMM / PageHeightMM)
	if heightMM-float64(n)*PageHeightMM > 1e-6 {
		n++
	}
	return max(n, 1)
}

// Preview renders regionID without saving anything
func (x *Exporter) Preview(ctx context.Context, regionID string) (Preview, error) {
	img, err := x.render.RenderRegion(ctx, regionID)
	if err != nil {
		return Preview{}, fmt.Errorf("render %s: %w", regionID, err)
	}
	w, h, err := Dimensions(img)
	if err != nil {
		return Preview{}, fmt.Errorf("render %s: %w", regionID, err)
	}
	return Preview{Image: img, WidthMM: w, HeightMM: h, Pages: Pages(h)}, nil
}

// Export renders regionID and saves it as fileName
// a duplicate call for a region already exporting returns ErrInFlight without rendering
func (x *Exporter) Export(ctx context.Context, regionID, fileName string) error {
	return x.ExportWith(ctx, x.embed, regionID, fileName)
}

// ExportWith is Export with a per call embedder, eg one writing to an http response
func (x *Exporter) ExportWith(ctx context.Context, e Embedder, regionID, fileName string) (err error) {
	if e == nil {
		e = x.embed
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = DefaultFileName
	}
	if !x.acquire(regionID) {
		err = fmt.Errorf("region %s: %w", regionID, ErrInFlight)
		x.notify.Notify(ctx, Notification{RegionID: regionID, FileName: fileName, Err: err})
		return err
	}
	start := x.now()
	defer func() {
		x.release(regionID)
		x.notify.Notify(ctx, Notification{
			RegionID: regionID,
			FileName: fileName,
			OK:       err == nil,
			Err:      err,
			Took:     x.now().Sub(start),
		})
	}()

	p, err := x.Preview(ctx, regionID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.EmbedAndSave(ctx, p.Image, p.WidthMM, p.HeightMM, fileName); err != nil {
		return fmt.Errorf("embed %s: %w", regionID, err)
	}
	return nil
}

// TryExport runs Export and reports success as a bool
func (x *Exporter) TryExport(ctx context.Context, regionID, fileName string) bool {
	return x.Export(ctx, regionID, fileName) == nil
}

// Busy reports whether regionID has an export in flight
func (x *Exporter) Busy(regionID string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.inflight[regionID]
	return ok
}

func (x *Exporter) acquire(regionID string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.inflight[regionID]; ok {
		return false
	}
	x.inflight[regionID] = struct{}{}
	return true
}

func (x *Exporter) release(regionID string) {
	x.mu.Lock()
	delete(x.inflight, regionID)
	x.mu.Unlock()
}
