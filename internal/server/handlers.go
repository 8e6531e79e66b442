package server

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/thywilljoshua/docchat/internal/ai"
	"github.com/thywilljoshua/docchat/internal/doc"
	"github.com/thywilljoshua/docchat/internal/extract"
	"github.com/thywilljoshua/docchat/internal/session"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type uploadResponse struct {
	Reply string   `json:"reply"`
	Mode  doc.Mode `json:"mode"`
	ID    string   `json:"id"`
}

type contextResponse struct {
	Mode     doc.Mode   `json:"mode"`
	ID       string     `json:"id,omitempty"`
	Source   string     `json:"source,omitempty"`
	Chars    int        `json:"chars"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	reply, err := s.ctrl.Chat(c.UserContext(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(replyResponse{Reply: reply})
}

func (s *Server) ask(c *fiber.Ctx) error {
	var req askRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	reply, err := s.ctrl.Ask(c.UserContext(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(replyResponse{Reply: reply})
}

func (s *Server) askPDF(c *fiber.Ctx) error   { return s.askAs(c, doc.ModePDF) }
func (s *Server) askImage(c *fiber.Ctx) error { return s.askAs(c, doc.ModeImage) }

func (s *Server) askAs(c *fiber.Ctx, mode doc.Mode) error {
	var req askRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	reply, err := s.ctrl.AskAs(c.UserContext(), mode, req.Question)
	if err != nil {
		return err
	}
	return c.JSON(replyResponse{Reply: reply})
}

// upload reads the multipart "file" field into memory. The multipart
// temp storage is released by fiber when the request ends, success or not.
func (s *Server) upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing multipart field \"file\"")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = extract.DetectType(fh.Filename, data)
	}

	ack, err := s.ctrl.Upload(c.UserContext(), doc.File{Name: fh.Filename, MIMEType: mimeType, Data: data})
	if err != nil {
		return err
	}
	return c.JSON(uploadResponse{Reply: ack.Message, Mode: ack.Mode, ID: ack.ID})
}

func (s *Server) reset(c *fiber.Ctx) error {
	s.ctrl.NewConversation()
	return c.JSON(contextResponse{Mode: doc.ModeNone})
}

func (s *Server) currentContext(c *fiber.Ctx) error {
	cur := s.ctrl.Current()
	res := contextResponse{Mode: cur.Mode, ID: cur.ID, Source: cur.Source, Chars: len(cur.Text)}
	if !cur.LoadedAt.IsZero() {
		res.LoadedAt = &cur.LoadedAt
	}
	return c.JSON(res)
}

func (s *Server) bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code, msg := fiber.StatusInternalServerError, err.Error()

	var fe *fiber.Error
	var ge *ai.GenerationError
	var ee *extract.ExtractionError
	switch {
	case errors.As(err, &fe):
		code, msg = fe.Code, fe.Message
	case errors.Is(err, session.ErrEmptyQuestion):
		code = fiber.StatusBadRequest
	case errors.Is(err, extract.ErrUnsupportedType):
		code = fiber.StatusUnsupportedMediaType
	case errors.As(err, &ee):
		code, msg = fiber.StatusUnprocessableEntity, causeMessage(ee.Cause, err)
	case errors.As(err, &ge):
		code, msg = fiber.StatusBadGateway, causeMessage(ge.Cause, err)
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(errorResponse{Error: msg})
}

func causeMessage(cause, err error) string {
	if cause == nil {
		return err.Error()
	}
	return cause.Error()
}
