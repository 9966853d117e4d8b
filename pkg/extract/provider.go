package extract

import "context"

// The pipeline depends on capability contracts, not on library
// identities: any compliant provider may be substituted, and tests stub
// these interfaces directly.

// Block is one positioned text fragment from a PDF page. Coordinates are
// in PDF space (origin bottom-left, Y grows upward).
type Block struct {
	Page int
	X, Y float64
	Text string
}

// PrimaryEngine is the in-memory structured PDF text provider: linear
// per-page text for the first stage and positioned fragments for the
// block-reflow stage.
type PrimaryEngine interface {
	// StructuredText returns per-page linear text in document order.
	StructuredText(data []byte) ([]string, error)
	// Blocks returns positioned fragments for every page, in page order.
	Blocks(data []byte) ([]Block, error)
}

// SecondaryParser is an independent PDF parsing library that requires a
// filesystem path. The pipeline materializes the input to a scoped temp
// file once at entry to serve this asymmetry.
type SecondaryParser interface {
	ExtractPath(path string) (string, error)
}

// PageExtractor is the pure last-structural-resort pass: page-by-page
// with per-page failure isolation, so one corrupt page cannot void the
// rest of the document.
type PageExtractor interface {
	PageText(data []byte) (string, error)
}

// Rasterizer renders PDF pages to PNG images from a filesystem path at
// the given upscale factor (1 = native 72 DPI).
type Rasterizer interface {
	RenderPages(ctx context.Context, path string, scale int) ([][]byte, error)
}

// Recognizer runs a single multi-language OCR pass over one encoded
// image and returns the transcription.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
