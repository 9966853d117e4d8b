package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Runner lets tests stub external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	if err != nil {
		slog.Error("exec failed", "cmd", name, "error", err, "stderr", truncate(errb.String(), 8<<10))
	} else {
		slog.Debug("exec ok", "cmd", name, "stdout_bytes", out.Len())
	}
	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

// pdftoppmRasterizer renders PDF pages to PNG via the poppler pdftoppm
// binary. Pages land in a scratch directory that is removed before the
// call returns.
type pdftoppmRasterizer struct {
	bin    string
	runner Runner
}

// nativeDPI is the PDF user-space resolution; scale multiplies it.
const nativeDPI = 72

func (r *pdftoppmRasterizer) RenderPages(ctx context.Context, path string, scale int) ([][]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	tmpDir, err := os.MkdirTemp("", "nivada-raster-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			slog.Warn("raster scratch dir cleanup failed", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.bin, "-r", strconv.Itoa(nativeDPI*scale), "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm writes page-1.png, page-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sortByPageNumber(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([][]byte, 0, len(matches))
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, err
		}
		pages = append(pages, data)
	}
	return pages, nil
}
