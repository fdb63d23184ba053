// Package files provides destinations for generated downloads
// a Dir writes into a local directory and an Attachment streams to an http client
package files

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// Dir saves files under Root, Root is created on first write
// a file is either fully written or not replaced at all
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root
func NewDir(root string) *Dir { return &Dir{Root: root} }

// SaveTextFile writes content as fileName
func (d *Dir) SaveTextFile(ctx context.Context, content, fileName, mimeType string) error {
	return d.SaveFile(ctx, []byte(content), fileName, mimeType)
}

// SaveFile writes data as fileName, only the base name of fileName is used
func (d *Dir) SaveFile(ctx context.Context, data []byte, fileName, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := CleanName(fileName)
	if err != nil {
		return err
	}
	root := d.Root
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("files: mkdir %s: %w", root, err)
	}
	p := filepath.Join(root, name)
	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("files: write %s: %w", p, err)
	}
	return nil
}

// Path returns where fileName would be saved
func (d *Dir) Path(fileName string) string {
	name, _ := CleanName(fileName)
	return filepath.Join(d.Root, name)
}

// Attachment writes a file as an http download
// only the first save writes, later saves fail since headers are gone
type Attachment struct {
	W       http.ResponseWriter
	written bool
}

// NewAttachment wraps w
func NewAttachment(w http.ResponseWriter) *Attachment { return &Attachment{W: w} }

// SaveTextFile streams content to the client
func (a *Attachment) SaveTextFile(ctx context.Context, content, fileName, mimeType string) error {
	return a.SaveFile(ctx, []byte(content), fileName, mimeType)
}

// SaveFile streams data to the client with a Content-Disposition attachment header
func (a *Attachment) SaveFile(ctx context.Context, data []byte, fileName, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.written {
		return fmt.Errorf("files: attachment already written")
	}
	name, err := CleanName(fileName)
	if err != nil {
		return err
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h := a.W.Header()
	h.Set("Content-Type", mimeType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("Cache-Control", "no-store")
	a.W.WriteHeader(http.StatusOK)
	a.written = true
	_, err = a.W.Write(data)
	return err
}

// Written reports whether a file was sent
func (a *Attachment) Written() bool { return a.written }

// CleanName strips directories from fileName and rejects empty names
func CleanName(fileName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(strings.ReplaceAll(fileName, "\\", "/")))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("files: invalid file name %q", fileName)
	}
	return name, nil
}

// WithExt appends ext unless fileName already ends with it
func WithExt(fileName, ext string) string {
	if strings.HasSuffix(strings.ToLower(fileName), strings.ToLower(ext)) {
		return fileName
	}
	return fileName + ext
}
