package extract

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a one-page PDF whose only font is standard-14 Helvetica
// with no /Widths, so glyph advances are unknown to the readers.
func buildPDF(t *testing.T, content string) []byte {
	t.Helper()
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

const invoiceStream = "BT /F1 12 Tf 72 720 Td (Invoice 42 due May 1) Tj 0 -14 Td [(Net)-250(30)] TJ ET"

func TestPDFText_StandardFont(t *testing.T) {
	data := buildPDF(t, invoiceStream)

	got, err := PDFText{}.ExtractText(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, got, "Invoice 42 due May 1")
}

func TestPlainText_StandardFont(t *testing.T) {
	got, err := plainText(buildPDF(t, invoiceStream))
	require.NoError(t, err)
	assert.Contains(t, got, "Invoice 42 due May 1")
}

func TestPageWalk_KeepsWordsWithoutWidths(t *testing.T) {
	got, err := pageWalk(buildPDF(t, invoiceStream))
	require.NoError(t, err)
	assert.Equal(t, "Invoice 42 due May 1\nNet 30\n", got)
}

func TestPageWalk_QuoteOperatorStartsLine(t *testing.T) {
	got, err := pageWalk(buildPDF(t, "BT /F1 12 Tf 14 TL 72 720 Td (first line) Tj (second line) ' ET"))
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", got)
}
