// Package extract turns an uploaded file into plain text, picking the
// extraction method from the declared MIME type.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/doc"
)

var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrExtractionFailed = errors.New("extraction failed")
)

// ExtractionError carries the underlying extractor failure.
type ExtractionError struct {
	Method string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrExtractionFailed, e.Method, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtractionFailed }

const (
	MethodPDF  = "pdf-text"
	MethodDocx = "docx-text"
	MethodOCR  = "image-ocr"
)

// Extractor maps raw file bytes to text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

func (f ExtractorFunc) ExtractText(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

type Result struct {
	Mode   doc.Mode
	Text   string
	Method string
}

type Adapter struct {
	PDF    Extractor
	Word   Extractor
	Image  Extractor
	logger *zap.Logger
}

func NewAdapter(pdf, word, image Extractor, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{PDF: pdf, Word: word, Image: image, logger: logger}
}

// Route resolves the mode and extraction method for a declared MIME type.
// Word documents ground the conversation the same way PDFs do.
func Route(mimeType string) (doc.Mode, string, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.Contains(mt, "pdf"):
		return doc.ModePDF, MethodPDF, nil
	case strings.Contains(mt, "word"), strings.Contains(mt, "docx"):
		return doc.ModePDF, MethodDocx, nil
	case strings.HasPrefix(mt, "image/"):
		return doc.ModeImage, MethodOCR, nil
	}
	return doc.ModeNone, "", fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
}

// Extract runs the extractor selected by f.MIMEType. The returned text is
// trimmed; an empty result is not an error.
func (a *Adapter) Extract(ctx context.Context, f doc.File) (Result, error) {
	start := time.Now()
	mode, method, err := Route(f.MIMEType)
	if err != nil {
		a.logger.Warn("unsupported upload", zap.String("mime", f.MIMEType), zap.String("name", f.Name))
		return Result{}, err
	}

	var ex Extractor
	switch method {
	case MethodPDF:
		ex = a.PDF
	case MethodDocx:
		ex = a.Word
	case MethodOCR:
		ex = a.Image
	}
	if ex == nil {
		return Result{}, &ExtractionError{Method: method, Cause: errors.New("no extractor configured")}
	}

	a.logger.Debug("starting extraction", zap.String("method", method), zap.Int("bytes", len(f.Data)))
	text, err := ex.ExtractText(ctx, f.Data)
	if err != nil {
		a.logger.Error("extraction failed", zap.String("method", method), zap.String("name", f.Name), zap.Error(err))
		return Result{}, &ExtractionError{Method: method, Cause: err}
	}
	text = strings.TrimSpace(text)
	a.logger.Info("extraction done",
		zap.String("method", method),
		zap.Int("chars", len(text)),
		zap.Duration("took", time.Since(start)),
	)
	return Result{Mode: mode, Text: text, Method: method}, nil
}
