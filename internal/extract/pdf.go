package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	rpdf "rsc.io/pdf"
)

// PDFText extracts the text layer of a PDF. It tries the ledongthuc reader
// first and falls back to walking pages with rsc.io/pdf.
type PDFText struct{}

func (PDFText) ExtractText(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf")
	}
	text, err := plainText(data)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	text, err2 := pageWalk(data)
	if err2 != nil {
		return "", fmt.Errorf("read pdf: %w (fallback: %v)", err, err2)
	}
	return text, nil
}

func plainText(data []byte) (out string, err error) {
	// Both readers panic on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rd, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func pageWalk(data []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		runs := p.Content().Text
		if hasWidths(runs) {
			writeRuns(&sb, runs)
		} else {
			writeStream(&sb, p)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// writeRuns joins positioned text runs, breaking lines when the baseline
// moves and inserting a space across visible gaps.
func writeRuns(sb *strings.Builder, runs []rpdf.Text) {
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			switch {
			case math.Abs(prev.Y-t.Y) > prev.FontSize/2:
				sb.WriteString("\n")
			case t.X-(prev.X+prev.W) > prev.FontSize/4:
				sb.WriteString(" ")
			}
		}
		sb.WriteString(t.S)
	}
}

// hasWidths reports whether every run carries a glyph advance. Fonts without
// a /Widths array (the standard 14) leave W and the X advance at zero.
func hasWidths(runs []rpdf.Text) bool {
	for _, t := range runs {
		if t.W == 0 && strings.TrimSpace(t.S) != "" {
			return false
		}
	}
	return true
}

// tjSpace is the TJ kerning offset, in thousandths of an em, read as a
// word gap.
const tjSpace = -200

// writeStream decodes the page's show-text operators in stream order,
// keeping literal spaces and breaking lines on text-positioning operators.
func writeStream(sb *strings.Builder, p rpdf.Page) {
	var enc rpdf.TextEncoding
	decode := func(v rpdf.Value) string {
		if enc == nil {
			return v.RawString()
		}
		return enc.Decode(v.RawString())
	}
	newline := func() {
		s := sb.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			sb.WriteString("\n")
		}
	}

	do := func(stk *rpdf.Stack, op string) {
		n := stk.Len()
		args := make([]rpdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		switch op {
		case "Tf":
			if n == 2 {
				enc = p.Font(args[0].Name()).Encoder()
			}
		case "T*", "Tm":
			newline()
		case "Td", "TD":
			if n == 2 && args[1].Float64() != 0 {
				newline()
			}
		case "Tj":
			if n == 1 {
				sb.WriteString(decode(args[0]))
			}
		case "'", "\"":
			newline()
			if n > 0 {
				sb.WriteString(decode(args[n-1]))
			}
		case "TJ":
			if n != 1 {
				return
			}
			arr := args[0]
			for i := 0; i < arr.Len(); i++ {
				x := arr.Index(i)
				if x.Kind() == rpdf.String {
					sb.WriteString(decode(x))
				} else if x.Float64() < tjSpace {
					sb.WriteString(" ")
				}
			}
		}
	}

	contents := p.V.Key("Contents")
	if contents.Kind() == rpdf.Array {
		for i := 0; i < contents.Len(); i++ {
			rpdf.Interpret(contents.Index(i), do)
		}
		return
	}
	rpdf.Interpret(contents, do)
}
