package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsLanguage(t *testing.T) {
	assert.Equal(t, "eng", New(Config{}).cfg.Language)

	tess := New(Config{Language: "deu", TessdataDir: "/opt/tessdata"})
	assert.Equal(t, "deu", tess.cfg.Language)
	assert.Equal(t, "/opt/tessdata", tess.cfg.TessdataDir)
}

func TestExtractText_EmptyInput(t *testing.T) {
	_, err := New(Config{}).ExtractText(context.Background(), nil)
	assert.EqualError(t, err, "empty image")
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{}).ExtractText(ctx, []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractText_BlankImage(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed")
	}
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	text, err := New(Config{}).ExtractText(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}
