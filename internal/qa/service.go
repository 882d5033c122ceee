package qa

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pdfchat-backend/internal/documents"
	"pdfchat-backend/internal/extract"
	"pdfchat-backend/internal/llm"
	"pdfchat-backend/internal/shared/metrics"
	"pdfchat-backend/internal/shared/telemetry"
)

// Answer is the result of one question against one document.
type Answer struct {
	Text          string `json:"text"`
	Page          int    `json:"page"`
	HighlightText string `json:"highlightText"`
}

// Service runs the extract-prompt-complete-locate pipeline.
type Service struct {
	docs         *documents.Service
	client       llm.Client
	extractPages func(ctx context.Context, r io.Reader) ([]string, error)
}

func NewService(docs *documents.Service, client llm.Client) *Service {
	return &Service{
		docs:         docs,
		client:       client,
		extractPages: extract.Pages,
	}
}

// Ask answers a question against the named document in the user's library.
func (s *Service) Ask(ctx context.Context, userID, fileName, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if strings.TrimSpace(fileName) == "" {
		return Answer{}, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if question == "" {
		return Answer{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	metrics.IncQuestionStarted()
	start := time.Now()

	doc, rc, err := s.docs.OpenByFileName(ctx, userID, fileName)
	if err != nil {
		metrics.IncQuestionFailed()
		return Answer{}, err
	}
	defer rc.Close()

	pages, err := s.extractPages(ctx, rc)
	if err != nil {
		metrics.IncQuestionFailed()
		return Answer{}, err
	}

	completion, err := s.client.Complete(ctx, ComposePrompt(pages, question))
	if err != nil {
		metrics.IncQuestionFailed()
		return Answer{}, fmt.Errorf("%w: %v", ErrModelCall, err)
	}

	loc := Locate(completion, pages, question)

	metrics.IncQuestionAnswered()
	metrics.IncExcerptStrategy(loc.Strategy)
	metrics.ObserveQuestionDurationMs(float64(time.Since(start).Milliseconds()))

	telemetry.Info("qa.answered", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"page":        loc.Page,
		"strategy":    loc.Strategy,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return Answer{
		Text:          completion,
		Page:          loc.Page,
		HighlightText: loc.Excerpt,
	}, nil
}
