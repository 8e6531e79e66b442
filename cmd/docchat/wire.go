package main

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/ai"
	"github.com/thywilljoshua/docchat/internal/config"
	"github.com/thywilljoshua/docchat/internal/doc"
	"github.com/thywilljoshua/docchat/internal/extract"
	"github.com/thywilljoshua/docchat/internal/extract/ocr"
	"github.com/thywilljoshua/docchat/internal/logger"
)

func newLogger(cfg *config.Config) *zap.Logger {
	return logger.New(logger.Options{
		FilePath:   cfg.Log.FilePath,
		Level:      cfg.Log.Level,
		Production: cfg.IsProduction(),
	})
}

func newAdapter(cfg *config.Config, log *zap.Logger) *extract.Adapter {
	return extract.NewAdapter(
		extract.PDFText{},
		extract.DocxText{},
		ocr.New(ocr.Config{Language: cfg.OCR.Language, TessdataDir: cfg.OCR.TessdataDir}),
		log.Named("extract"),
	)
}

// newGateway wraps the Gemini client with the configured timeout and retry.
func newGateway(ctx context.Context, cfg *config.Config) (ai.Gateway, error) {
	g, err := ai.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	var gw ai.Gateway = g
	gw = ai.WithTimeout(gw, cfg.LLM.Timeout)
	gw = ai.WithRetry(gw, cfg.LLM.MaxTries)
	return gw, nil
}

// readFile loads a local file and guesses its MIME type.
func readFile(path string) (doc.File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return doc.File{}, err
	}
	return doc.File{Name: filepath.Base(path), MIMEType: extract.DetectType(path, b), Data: b}, nil
}
