package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// tesseractRecognizer runs one multi-language Tesseract pass per image.
// Mixed-script lines are common in this domain, so the languages are
// loaded together rather than recognized in separate passes.
type tesseractRecognizer struct {
	langs []string
}

func (r *tesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	c := gosseract.NewClient()
	defer c.Close()
	if err := c.SetLanguage(r.langs...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
