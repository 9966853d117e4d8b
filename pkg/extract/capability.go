package extract

import (
	"fmt"
	"os/exec"

	"github.com/otiai10/gosseract/v2"
)

// Capability names, used in traces and availability reports.
const (
	CapPrimary    = "pdf-primary"
	CapSecondary  = "pdf-secondary"
	CapFallback   = "pdf-page-fallback"
	CapRasterizer = "pdf-rasterizer"
	CapRecognizer = "ocr"
)

// Capabilities is the process-wide provider registry. It is resolved
// once at startup, is immutable afterwards, and is safe to share
// read-only across concurrent requests. A nil field means the capability
// is unavailable; Reason explains why.
type Capabilities struct {
	Primary    PrimaryEngine
	Secondary  SecondaryParser
	Fallback   PageExtractor
	Rasterizer Rasterizer
	Recognizer Recognizer

	reasons map[string]string
}

// Reason returns the recorded unavailability reason for a capability
// name, or a generic fallback when none was recorded.
func (c *Capabilities) Reason(name string) string {
	if c != nil && c.reasons != nil {
		if r, ok := c.reasons[name]; ok {
			return r
		}
	}
	return "not configured"
}

// Report lists each capability with its availability, for startup logs
// and diagnostics.
func (c *Capabilities) Report() map[string]string {
	out := make(map[string]string, 5)
	set := func(name string, ok bool) {
		if ok {
			out[name] = "ok"
		} else {
			out[name] = c.Reason(name)
		}
	}
	set(CapPrimary, c.Primary != nil)
	set(CapSecondary, c.Secondary != nil)
	set(CapFallback, c.Fallback != nil)
	set(CapRasterizer, c.Rasterizer != nil)
	set(CapRecognizer, c.Recognizer != nil)
	return out
}

// CapabilityConfig tunes provider resolution.
type CapabilityConfig struct {
	// PdftoppmBin is the rasterizer binary name or absolute path;
	// empty means "pdftoppm".
	PdftoppmBin string
	// Languages are the Tesseract traineddata names requested for the
	// single multi-language OCR pass. Empty means eng+hin+mar.
	Languages []string
	// Scale is the rasterization upscale factor. 2x native resolution is
	// the empirical sweet spot for small Devanagari glyphs.
	Scale int
}

func (c *CapabilityConfig) withDefaults() CapabilityConfig {
	out := CapabilityConfig{}
	if c != nil {
		out = *c
	}
	if out.PdftoppmBin == "" {
		out.PdftoppmBin = "pdftoppm"
	}
	if len(out.Languages) == 0 {
		out.Languages = []string{"eng", "hin", "mar"}
	}
	if out.Scale <= 0 {
		out.Scale = 2
	}
	return out
}

// ResolveCapabilities probes every provider once and returns the
// registry. Call it at process start and share the result; per-call
// re-probing is deliberately not supported.
func ResolveCapabilities(cfg *CapabilityConfig) *Capabilities {
	c := cfg.withDefaults()
	caps := &Capabilities{reasons: make(map[string]string)}

	// Pure-Go parsers carry no runtime requirement beyond the module
	// itself.
	caps.Primary = &ledongEngine{}
	caps.Secondary = &pdfcpuParser{}
	caps.Fallback = &tolerantPageExtractor{}

	if path, err := exec.LookPath(c.PdftoppmBin); err != nil {
		caps.reasons[CapRasterizer] = fmt.Sprintf("%s: %v", c.PdftoppmBin, err)
	} else {
		caps.Rasterizer = &pdftoppmRasterizer{bin: path, runner: execRunner{}}
	}

	if rec, err := probeTesseract(c.Languages); err != nil {
		caps.reasons[CapRecognizer] = err.Error()
	} else {
		caps.Recognizer = rec
	}

	return caps
}

// probeTesseract checks that the Tesseract runtime is linked and that
// every requested traineddata file is installed.
func probeTesseract(langs []string) (Recognizer, error) {
	available, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return nil, fmt.Errorf("tesseract: %v", err)
	}
	installed := make(map[string]bool, len(available))
	for _, l := range available {
		installed[l] = true
	}
	var missing []string
	for _, l := range langs {
		if !installed[l] {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("tesseract: missing traineddata %v", missing)
	}
	return &tesseractRecognizer{langs: langs}, nil
}
