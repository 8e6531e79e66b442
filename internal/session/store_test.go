package session

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thywilljoshua/docchat/internal/doc"
)

func TestStore_SetReplacesEverything(t *testing.T) {
	s := NewStore()
	s.Set(DocumentContext{ID: "a", Mode: doc.ModePDF, Text: "pdf text", Source: "a.pdf", LoadedAt: time.Unix(1, 0)})
	s.Set(DocumentContext{ID: "b", Mode: doc.ModeImage, Text: "image text"})

	got := s.Get()
	assert.Equal(t, DocumentContext{ID: "b", Mode: doc.ModeImage, Text: "image text"}, got)
}

func TestStore_SetNoneClearsText(t *testing.T) {
	s := NewStore()
	s.Set(DocumentContext{Mode: doc.ModeNone, Text: "stray"})
	assert.Equal(t, DocumentContext{}, s.Get())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := NewStore()
	s.Set(DocumentContext{Mode: doc.ModePDF, Text: "x"})

	s.Clear()
	once := s.Get()
	s.Clear()
	twice := s.Get()

	assert.Equal(t, once, twice)
	assert.Equal(t, doc.ModeNone, twice.Mode)
	assert.Empty(t, twice.Text)
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.Set(DocumentContext{Mode: doc.ModePDF, Text: "first"})
	snap := s.Get()
	s.Set(DocumentContext{Mode: doc.ModeImage, Text: "second"})

	assert.Equal(t, "first", snap.Text)
	assert.Equal(t, doc.ModePDF, snap.Mode)
}

func TestStore_ConcurrentAccessNeverTears(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if i%2 == 0 {
					s.Set(DocumentContext{ID: fmt.Sprint(w, i), Mode: doc.ModePDF, Text: "pdf-" + fmt.Sprint(i)})
				} else {
					s.Set(DocumentContext{ID: fmt.Sprint(w, i), Mode: doc.ModeImage, Text: "image-" + fmt.Sprint(i)})
				}
			}
		}(w)
	}

	torn := make(chan DocumentContext, 1)
	var rg sync.WaitGroup
	rg.Add(1)
	go func() {
		defer rg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			c := s.Get()
			if c.Mode == doc.ModeNone {
				continue
			}
			if !strings.HasPrefix(c.Text, c.Mode.String()+"-") {
				select {
				case torn <- c:
				default:
				}
				return
			}
		}
	}()

	wg.Wait()
	close(stop)
	rg.Wait()

	select {
	case c := <-torn:
		t.Fatalf("observed torn context: %+v", c)
	default:
	}
}
