package vcard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/facebookgo/atomicfile"
	"github.com/samber/mo"
)

// Document is a rendered card ready to be sent or saved.
type Document struct {
	Format   Format
	Filename string // including extension
	Charset  string
	Body     []byte
}

// ContentType returns the Content-Type header value.
func (d *Document) ContentType() string {
	return d.Format.ContentType() + "; charset=" + d.Charset
}

// Headers returns the download headers for the document.
func (d *Document) Headers() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", d.ContentType())
	h.Set("Content-Disposition", "attachment; filename="+d.Filename)
	h.Set("Content-Length", strconv.Itoa(len(d.Body)))
	h.Set("Connection", "close")
	return h
}

// WriteTo writes the body to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Body)
	return int64(n), err
}

// Render builds the document for the client identified by userAgent.
func (b *Builder) Render(userAgent string) *Document {
	format := DetectFormat(userAgent)
	now := b.now()

	var body string
	if format == FormatVCalendar {
		body = b.buildVCalendar(now)
	} else {
		body = b.buildVCard(now)
	}
	return &Document{
		Format:   format,
		Filename: b.Filename() + "." + format.Extension(),
		Charset:  b.charset,
		Body:     []byte(body),
	}
}

// Output returns the rendered document body for userAgent.
func (b *Builder) Output(userAgent string) string {
	return string(b.Render(userAgent).Body)
}

// Download writes the download headers and the document to w.
func (b *Builder) Download(w http.ResponseWriter, userAgent string) error {
	doc := b.Render(userAgent)
	for k, v := range doc.Headers() {
		w.Header()[k] = v
	}
	w.WriteHeader(http.StatusOK)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	b.logger.Debug("document downloaded", "filename", doc.Filename, "format", doc.Format.String(), "size", len(doc.Body))
	return nil
}

// SavePath returns the directory Save writes to, if one was set.
func (b *Builder) SavePath() (string, bool) {
	return b.savePath.Get()
}

// SetSavePath sets the directory Save writes to. The directory must exist.
func (b *Builder) SetSavePath(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &Error{Kind: ErrOutputDirectoryNotFound, Path: dir, Err: err}
	}
	b.savePath = mo.Some(dir)
	return nil
}

// Save writes the document for userAgent to <save path>/<filename> and
// returns the written path. Without a save path the file goes to the working
// directory. The file is replaced atomically.
func (b *Builder) Save(userAgent string) (string, error) {
	doc := b.Render(userAgent)
	path := filepath.Join(b.savePath.OrElse("."), doc.Filename)

	f, err := atomicfile.New(path, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Kind: ErrOutputDirectoryNotFound, Path: filepath.Dir(path), Err: err}
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Abort()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	b.logger.Info("document saved", "path", path, "format", doc.Format.String())
	return path, nil
}
