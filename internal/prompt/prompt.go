// Package prompt builds the grounded prompts sent to the language model.
package prompt

import (
	"strings"

	"github.com/thywilljoshua/docchat/internal/doc"
)

// Sentinel phrases the model is told to reply with when the answer is not
// in the supplied text. Replies are never checked against them.
const (
	NotFoundPDF   = "Not found in PDF"
	NotFoundImage = "Not found in image"
)

// Compose embeds contextText verbatim, without truncation. Modes that are
// not grounded return the question unchanged.
func Compose(mode doc.Mode, contextText, question string) string {
	var b strings.Builder
	switch mode {
	case doc.ModePDF:
		b.WriteString("\nUse the following extracted text from a PDF to answer the user's question. If not found, reply '" + NotFoundPDF + "'.\n")
		b.WriteString("---\n")
		b.WriteString(contextText)
		b.WriteString("\n---\n")
	case doc.ModeImage:
		b.WriteString("\nUse the extracted text from an image to answer the question. If answer not in text say \"" + NotFoundImage + "\".\n")
		b.WriteString("Text:\n")
		b.WriteString(contextText)
		b.WriteString("\n")
	default:
		return question
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}
