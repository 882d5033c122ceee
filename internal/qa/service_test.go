package qa

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pdfchat-backend/internal/documents"
	"pdfchat-backend/internal/extract"
	"pdfchat-backend/internal/llm"
	"pdfchat-backend/internal/shared/storage/object/local"
)

type fakeLLM struct {
	completion string
	err        error
	gotInput   llm.CompleteInput
}

func (f *fakeLLM) Complete(ctx context.Context, input llm.CompleteInput) (string, error) {
	f.gotInput = input
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func newAskService(t *testing.T, client llm.Client, pages []string) *Service {
	t.Helper()
	docs := documents.NewService(documents.NewMemoryRepo(), local.New(t.TempDir()))

	if _, err := docs.Upload(context.Background(), "user-1", "report.pdf", strings.NewReader("%PDF- stub")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	svc := NewService(docs, client)
	svc.extractPages = func(ctx context.Context, r io.Reader) ([]string, error) {
		return pages, nil
	}
	return svc
}

func TestAskEndToEnd(t *testing.T) {
	client := &fakeLLM{
		completion: "The growth was driven by demand. [[HIGHLIGHT]]Revenue grew 12% year over year due to strong demand.[[/HIGHLIGHT]] See page 2.",
	}
	pages := []string{
		"First page filler.",
		"Revenue grew 12% year over year due to strong demand.",
	}
	svc := newAskService(t, client, pages)

	ans, err := svc.Ask(context.Background(), "user-1", "report.pdf", "Why did revenue grow?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if ans.Page != 2 {
		t.Fatalf("Page = %d", ans.Page)
	}
	if ans.HighlightText != "Revenue grew 12% year over year due to strong demand." {
		t.Fatalf("HighlightText = %q", ans.HighlightText)
	}
	if ans.Text != client.completion {
		t.Fatalf("Text = %q", ans.Text)
	}
	if !strings.Contains(client.gotInput.User, "Question: Why did revenue grow?") {
		t.Fatalf("prompt = %q", client.gotInput.User)
	}
}

func TestAskValidation(t *testing.T) {
	svc := newAskService(t, &fakeLLM{completion: "ok"}, []string{"text"})

	if _, err := svc.Ask(context.Background(), "user-1", "", "question?"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing filename: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "user-1", "report.pdf", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing question: %v", err)
	}
}

func TestAskUnknownFile(t *testing.T) {
	svc := newAskService(t, &fakeLLM{completion: "ok"}, []string{"text"})

	if _, err := svc.Ask(context.Background(), "user-1", "missing.pdf", "question?"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAskTraversalFilenameReducesToBase(t *testing.T) {
	svc := newAskService(t, &fakeLLM{completion: "No answer found in the PDF."}, []string{"text"})

	// The base name resolves to an uploaded file, so traversal segments
	// never reach storage.
	if _, err := svc.Ask(context.Background(), "user-1", "../../report.pdf", "question?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	// A traversal path whose base does not exist is a plain not-found.
	if _, err := svc.Ask(context.Background(), "user-1", "../../etc/passwd.pdf", "question?"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAskModelFailure(t *testing.T) {
	svc := newAskService(t, &fakeLLM{err: errors.New("boom")}, []string{"text"})

	if _, err := svc.Ask(context.Background(), "user-1", "report.pdf", "question?"); !errors.Is(err, ErrModelCall) {
		t.Fatalf("err = %v", err)
	}
}

func TestAskExtractionFailure(t *testing.T) {
	svc := newAskService(t, &fakeLLM{completion: "ok"}, nil)
	svc.extractPages = func(ctx context.Context, r io.Reader) ([]string, error) {
		return nil, &extract.ExtractionError{Reason: "invalid pdf"}
	}

	_, err := svc.Ask(context.Background(), "user-1", "report.pdf", "question?")
	var extErr *extract.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %v", err)
	}
}
