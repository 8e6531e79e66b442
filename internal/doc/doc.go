// Package doc holds the types shared by extraction, prompting and the
// session state machine.
package doc

import (
	"fmt"
	"strings"
)

// Mode tags which kind of document, if any, grounds the conversation.
type Mode int

const (
	ModeNone Mode = iota
	ModePDF
	ModeImage
)

func (m Mode) String() string {
	switch m {
	case ModePDF:
		return "pdf"
	case ModeImage:
		return "image"
	default:
		return "none"
	}
}

// Grounded reports whether questions in this mode are answered from document text.
func (m Mode) Grounded() bool { return m == ModePDF || m == ModeImage }

// ParseMode accepts the String forms, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "pdf":
		return ModePDF, nil
	case "image":
		return ModeImage, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// File is an uploaded document as handed over by a transport.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}
