package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"unicode/utf8"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Table is the content of a tabular region
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// TableSource resolves a region id to its current table content
type TableSource interface {
	Region(ctx context.Context, regionID string) (Table, error)
}

// TableSourceFunc adapts a function to TableSource
type TableSourceFunc func(ctx context.Context, regionID string) (Table, error)

// Region calls f
func (f TableSourceFunc) Region(ctx context.Context, regionID string) (Table, error) {
	return f(ctx, regionID)
}

// layout in unscaled pixels
const (
	cellPadX   = 6
	rowHeight  = 20
	titleSpace = 28
	margin     = 12
	maxCell    = 40
)

var (
	colBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colHeader     = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colStripe     = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colRule       = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colText       = color.RGBA{0x11, 0x18, 0x27, 0xff}
)

// TableRenderer rasterizes tables into PNG images
type TableRenderer struct {
	Source TableSource
	Scale  int
	Face   font.Face
}

// NewTableRenderer returns a renderer drawing at scale 2 with the built in bitmap face
func NewTableRenderer(src TableSource) *TableRenderer {
	if src == nil {
		panic("snapshot.TableRenderer requires a non nil TableSource")
	}
	return &TableRenderer{Source: src, Scale: 2, Face: basicfont.Face7x13}
}

// RenderRegion implements Renderer
func (t *TableRenderer) RenderRegion(ctx context.Context, regionID string) (Image, error) {
	tbl, err := t.Source.Region(ctx, regionID)
	if err != nil {
		return Image{}, err
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	return t.Render(tbl)
}

// Render draws tbl and encodes it as PNG
func (t *TableRenderer) Render(tbl Table) (Image, error) {
	face := t.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	scale := max(t.Scale, 1)

	ncol := len(tbl.Columns)
	widths := make([]int, ncol)
	for i, c := range tbl.Columns {
		widths[i] = textWidth(face, clip(c)) + 2*cellPadX
	}
	for _, row := range tbl.Rows {
		for i := 0; i < ncol && i < len(row); i++ {
			widths[i] = max(widths[i], textWidth(face, clip(row[i]))+2*cellPadX)
		}
	}

	tableW := 0
	for _, w := range widths {
		tableW += w
	}
	w := max(tableW, textWidth(face, tbl.Title)) + 2*margin
	top := margin
	if tbl.Title != "" {
		top += titleSpace
	}
	h := top + rowHeight*(len(tbl.Rows)+1) + margin
	if ncol == 0 {
		h = top + margin
	}

	base := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(base, base.Bounds(), colBackground)

	d := &font.Drawer{Dst: base, Src: image.NewUniform(colText), Face: face}
	if tbl.Title != "" {
		drawText(d, margin, margin+rowHeight-6, tbl.Title)
	}

	if ncol > 0 {
		y := top
		fill(base, image.Rect(margin, y, margin+tableW, y+rowHeight), colHeader)
		drawRow(d, widths, y, tbl.Columns)
		for r, row := range tbl.Rows {
			y += rowHeight
			if r%2 == 1 {
				fill(base, image.Rect(margin, y, margin+tableW, y+rowHeight), colStripe)
			}
			drawRow(d, widths, y, row)
		}
		bottom := y + rowHeight
		for yy := top; yy <= bottom; yy += rowHeight {
			fill(base, image.Rect(margin, yy, margin+tableW, yy+1), colRule)
		}
		x := margin
		for _, cw := range widths {
			fill(base, image.Rect(x, top, x+1, bottom), colRule)
			x += cw
		}
		fill(base, image.Rect(x, top, x+1, bottom+1), colRule)
	}

	out := image.Image(base)
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return Image{}, fmt.Errorf("png encode: %w", err)
	}
	b := out.Bounds()
	return Image{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

func drawRow(d *font.Drawer, widths []int, y int, cells []string) {
	x := margin
	for i, cw := range widths {
		if i < len(cells) {
			drawText(d, x+cellPadX, y+rowHeight-6, clip(cells[i]))
		}
		x += cw
	}
}

func drawText(d *font.Drawer, x, baseline int, s string) {
	d.Dot = fixed.P(x, baseline)
	d.DrawString(s)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	xdraw.Draw(img, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// clip shortens long cell text so one column cannot take the whole page
func clip(s string) string {
	if utf8.RuneCountInString(s) <= maxCell {
		return s
	}
	r := []rune(s)
	return string(r[:maxCell-3]) + "..."
}
