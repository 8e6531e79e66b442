package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/ai"
	"github.com/thywilljoshua/docchat/internal/doc"
	"github.com/thywilljoshua/docchat/internal/extract"
	"github.com/thywilljoshua/docchat/internal/prompt"
)

const (
	NoPDFContent   = "No PDF content loaded. Please upload a PDF first."
	NoImageContent = "No image content loaded. Please upload an image first."

	PDFUploaded   = "PDF uploaded. You can now ask questions about it."
	ImageUploaded = "Image uploaded. You can now ask questions about the text in it."
)

var ErrEmptyQuestion = errors.New("question is empty")

// Strategy names how a question was answered.
type Strategy string

const (
	StrategyChat      Strategy = "chat"
	StrategyGrounded  Strategy = "grounded"
	StrategyNoContent Strategy = "no_content"
)

// Observer receives one event per operation outcome.
type Observer interface {
	Upload(mode doc.Mode, err error)
	Question(s Strategy)
	GenerationFailed()
}

type noopObserver struct{}

func (noopObserver) Upload(doc.Mode, error) {}
func (noopObserver) Question(Strategy)      {}
func (noopObserver) GenerationFailed()      {}

// Extractor is satisfied by *extract.Adapter.
type Extractor interface {
	Extract(ctx context.Context, f doc.File) (extract.Result, error)
}

type Ack struct {
	Mode    doc.Mode
	Message string
	ID      string
}

type Controller struct {
	store     *Store
	extractor Extractor
	gateway   ai.Gateway
	compose   func(mode doc.Mode, contextText, question string) string
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Controller)

func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithComposer swaps the prompt composer, mainly so tests can observe it.
func WithComposer(f func(mode doc.Mode, contextText, question string) string) Option {
	return func(c *Controller) {
		if f != nil {
			c.compose = f
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController wires the state machine. A nil store gets a fresh one.
func NewController(store *Store, ex Extractor, gw ai.Gateway, opts ...Option) *Controller {
	if store == nil {
		store = NewStore()
	}
	c := &Controller{
		store:     store,
		extractor: ex,
		gateway:   gw,
		compose:   prompt.Compose,
		observer:  noopObserver{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Current returns a snapshot of the active context.
func (c *Controller) Current() DocumentContext { return c.store.Get() }

// Upload extracts f and, on success only, replaces the active context.
func (c *Controller) Upload(ctx context.Context, f doc.File) (Ack, error) {
	res, err := c.extractor.Extract(ctx, f)
	if err != nil {
		c.observer.Upload(doc.ModeNone, err)
		c.logger.Warn("upload rejected, context kept",
			zap.String("name", f.Name),
			zap.String("mime", f.MIMEType),
			zap.Stringer("mode", c.store.Get().Mode),
			zap.Error(err),
		)
		return Ack{}, err
	}

	dc := DocumentContext{
		ID:       uuid.NewString(),
		Mode:     res.Mode,
		Text:     res.Text,
		Source:   f.Name,
		LoadedAt: c.now(),
	}
	c.store.Set(dc)
	c.observer.Upload(res.Mode, nil)
	c.logger.Info("document context replaced",
		zap.String("id", dc.ID),
		zap.Stringer("mode", dc.Mode),
		zap.String("method", res.Method),
		zap.Int("chars", len(dc.Text)),
	)

	msg := PDFUploaded
	if res.Mode == doc.ModeImage {
		msg = ImageUploaded
	}
	return Ack{Mode: res.Mode, Message: msg, ID: dc.ID}, nil
}

// Chat always answers from the model's general knowledge.
func (c *Controller) Chat(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	c.observer.Question(StrategyChat)
	return c.generate(ctx, question)
}

// Ask dispatches on the active mode: ungrounded chat with no document,
// otherwise a grounded question.
func (c *Controller) Ask(ctx context.Context, question string) (string, error) {
	snap := c.store.Get()
	if snap.Mode == doc.ModeNone {
		return c.Chat(ctx, question)
	}
	return c.grounded(ctx, snap, question)
}

// AskGrounded never falls back to ungrounded chat. With no document loaded
// it replies with the PDF no-content message.
func (c *Controller) AskGrounded(ctx context.Context, question string) (string, error) {
	mode := c.store.Get().Mode
	if mode == doc.ModeNone {
		mode = doc.ModePDF
	}
	return c.AskAs(ctx, mode, question)
}

// AskAs answers against the active context only if it has the given mode.
func (c *Controller) AskAs(ctx context.Context, mode doc.Mode, question string) (string, error) {
	if !mode.Grounded() {
		return c.Chat(ctx, question)
	}
	snap := c.store.Get()
	if snap.Mode != mode {
		snap = DocumentContext{Mode: mode}
	}
	return c.grounded(ctx, snap, question)
}

// NewConversation drops the active context.
func (c *Controller) NewConversation() {
	c.store.Clear()
	c.logger.Info("conversation reset")
}

// grounded answers the no-content message before looking at the question,
// so a blank question with nothing loaded still gets that reply.
func (c *Controller) grounded(ctx context.Context, snap DocumentContext, question string) (string, error) {
	if snap.Text == "" {
		c.observer.Question(StrategyNoContent)
		return noContent(snap.Mode), nil
	}
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	c.observer.Question(StrategyGrounded)
	c.logger.Debug("grounded question", zap.String("id", snap.ID), zap.Stringer("mode", snap.Mode))
	return c.generate(ctx, c.compose(snap.Mode, snap.Text, question))
}

func (c *Controller) generate(ctx context.Context, p string) (string, error) {
	reply, err := c.gateway.Generate(ctx, p)
	if err != nil {
		if !errors.Is(err, ai.ErrGenerationFailed) {
			err = &ai.GenerationError{Cause: err}
		}
		c.observer.GenerationFailed()
		c.logger.Error("generation failed", zap.Error(err))
		return "", err
	}
	return reply, nil
}

func noContent(m doc.Mode) string {
	if m == doc.ModeImage {
		return NoImageContent
	}
	return NoPDFContent
}
