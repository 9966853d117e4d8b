package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ledongEngine backs the primary-engine capability with
// github.com/ledongthuc/pdf, which reads directly from an in-memory
// buffer. The library panics on malformed structures, so every entry
// point converts panics to errors.
type ledongEngine struct{}

func openReader(data []byte) (r *pdf.Reader, err error) {
	defer recoverTo(&err)
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// StructuredText returns linear text per page in document order. A
// failure on any page fails the whole pass; the tolerant variant lives
// in tolerantPageExtractor.
func (e *ledongEngine) StructuredText(data []byte) (pages []string, err error) {
	defer recoverTo(&err)
	r, err := openReader(data)
	if err != nil {
		return nil, err
	}
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Blocks returns every positioned text fragment, page by page, in
// content-stream order. The reflow sort happens in the cascade, where
// the tie-break semantics are part of the stage contract.
func (e *ledongEngine) Blocks(data []byte) (blocks []Block, err error) {
	defer recoverTo(&err)
	r, err := openReader(data)
	if err != nil {
		return nil, err
	}
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content := p.Content()
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			blocks = append(blocks, Block{Page: i, X: t.X, Y: t.Y, Text: t.S})
		}
	}
	return blocks, nil
}

// tolerantPageExtractor is the pure structural fallback: same library,
// but each page is isolated so a panic or error on one page only loses
// that page.
type tolerantPageExtractor struct{}

func (e *tolerantPageExtractor) PageText(data []byte) (string, error) {
	r, err := openReader(data)
	if err != nil {
		return "", err
	}
	var parts []string
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if text, ok := safePageText(r, i); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func safePageText(r *pdf.Reader, i int) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	p := r.Page(i)
	if p.V.IsNull() {
		return "", false
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return t, true
}

// recoverTo converts a panic in the underlying parser into an error so
// the cascade can record an execution failure and continue.
func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf parser panic: %v", r)
	}
}
