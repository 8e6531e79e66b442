// Package session owns the single active document context and the state
// machine that decides how each question is answered against it.
package session

import (
	"sync"
	"time"

	"github.com/thywilljoshua/docchat/internal/doc"
)

// DocumentContext is the extracted text grounding the conversation.
// Text is non-empty only when Mode is grounded.
type DocumentContext struct {
	ID       string
	Mode     doc.Mode
	Text     string
	Source   string
	LoadedAt time.Time
}

// Store holds one DocumentContext. Every access goes through one lock so a
// reader never sees a half-replaced value.
type Store struct {
	mu  sync.RWMutex
	cur DocumentContext
}

func NewStore() *Store { return &Store{} }

// Set replaces the whole context. Nothing of the previous one survives.
func (s *Store) Set(c DocumentContext) {
	if c.Mode == doc.ModeNone {
		c = DocumentContext{}
	}
	s.mu.Lock()
	s.cur = c
	s.mu.Unlock()
}

// Get returns a snapshot.
func (s *Store) Get() DocumentContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.cur = DocumentContext{}
	s.mu.Unlock()
}
