package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// ErrStorage marks artifact read/write failures. Unlike upstream provider
// errors these are fatal to the request: there is no fallback for content
// that cannot be persisted.
var ErrStorage = errors.New("artifact storage error")

const emptySectionPlaceholder = "Not available"

// Renderer writes report PDFs into the artifact store directory.
type Renderer struct {
	dir string
}

func New(dir string) *Renderer { return &Renderer{dir: dir} }

// Dir returns the artifact store directory.
func (r *Renderer) Dir() string { return r.dir }

// CreateReport renders content into a PDF artifact and writes it under a
// freshly generated filename. Returns the filename accepted verbatim by the
// download endpoint.
func (r *Renderer) CreateReport(topic, content, author string) (string, error) {
	payload, err := RenderPDF(topic, content, author)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	filename := Filename(topic)
	if err := os.WriteFile(filepath.Join(r.dir, filename), payload, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return filename, nil
}

// Read returns the artifact bytes for filename. Unknown names yield
// os.ErrNotExist; IO failures are wrapped in ErrStorage.
func (r *Renderer) Read(filename string) ([]byte, error) {
	name := SafeName(filename)
	if name == "" {
		return nil, os.ErrNotExist
	}
	payload, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return payload, nil
}

// FilePath resolves filename inside the artifact store, or "" when unsafe.
func (r *Renderer) FilePath(filename string) string {
	name := SafeName(filename)
	if name == "" {
		return ""
	}
	return filepath.Join(r.dir, name)
}

// RenderPDF lays out the report as one titled page flow: topic header, then
// each section as heading plus paragraphs. Empty sections render as an
// explicit placeholder so the document structure stays predictable.
// Compression is disabled so ExtractText can recover the text.
func RenderPDF(topic, content, author string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle(topic, true)
	pdf.SetAuthor(author, true)
	pdf.SetMargins(18, 20, 18)
	pdf.SetAutoPageBreak(true, 22)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(topic), "", "L", false)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("Prepared for %s on %s", author, time.Now().UTC().Format("2006-01-02"))
	pdf.MultiCell(0, 5, tr(meta), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, section := range ParseSections(content) {
		if section.Title != "" {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(section.Title), "", "L", false)
			pdf.Ln(1)
		}

		paragraphs := section.Paragraphs
		if len(paragraphs) == 0 {
			paragraphs = []string{emptySectionPlaceholder}
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, para := range paragraphs {
			pdf.MultiCell(0, 5.6, tr(strings.TrimSpace(para)), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
