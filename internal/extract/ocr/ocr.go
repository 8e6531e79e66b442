// Package ocr reads text out of images with Tesseract. It needs libtesseract
// at build time, so it lives apart from the routing in the parent package.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

type Config struct {
	Language    string // default "eng"
	TessdataDir string // optional; empty uses the system prefix
}

type Tesseract struct {
	cfg Config
}

func New(cfg Config) *Tesseract {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg}
}

// ExtractText runs one recognition pass. A fresh client per call keeps
// concurrent uploads independent.
func (t *Tesseract) ExtractText(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if t.cfg.TessdataDir != "" {
		client.TessdataPrefix = t.cfg.TessdataDir
	}
	if err := client.SetLanguage(t.cfg.Language); err != nil {
		return "", fmt.Errorf("tesseract language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
