package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFMIMEType is the content type of generated documents
const PDFMIMEType = "application/pdf"

// DocumentSink saves binary documents, eg files.Dir or files.Attachment
type DocumentSink interface {
	SaveFile(ctx context.Context, data []byte, fileName, mimeType string) error
}

// PDFEmbedder draws an image across as many A4 portrait pages as it needs
type PDFEmbedder struct {
	Sink  DocumentSink
	Title string
}

// NewPDFEmbedder returns an embedder saving into sink
func NewPDFEmbedder(sink DocumentSink, title string) *PDFEmbedder {
	if sink == nil {
		panic("snapshot.PDFEmbedder requires a non nil DocumentSink")
	}
	return &PDFEmbedder{Sink: sink, Title: title}
}

// EmbedAndSave builds the document and hands it to the sink
func (p *PDFEmbedder) EmbedAndSave(ctx context.Context, img Image, widthMM, heightMM float64, fileName string) error {
	doc, err := BuildPDF(img, widthMM, heightMM, p.Title)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.Sink.SaveFile(ctx, doc, fileName, PDFMIMEType)
}

// BuildPDF returns the encoded document
// the image is placed at the top left at widthMM x heightMM, anything past one page
// continues on the next page by shifting the image up one page height
func BuildPDF(img Image, widthMM, heightMM float64, title string) ([]byte, error) {
	if len(img.PNG) == 0 || widthMM <= 0 || heightMM <= 0 {
		return nil, ErrEmptyImage
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("backoffice", true)

	const name = "snapshot"
	opt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(img.PNG))
	if pdf.Err() {
		return nil, fmt.Errorf("pdf image: %w", pdf.Error())
	}

	for page := 0; page < Pages(heightMM); page++ {
		pdf.AddPage()
		y := -float64(page) * PageHeightMM
		pdf.ImageOptions(name, 0, y, widthMM, heightMM, false, opt, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
