package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPagesFromBytesEmpty(t *testing.T) {
	_, err := PagesFromBytes(nil)
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestPagesFromBytesInvalid(t *testing.T) {
	_, err := PagesFromBytes([]byte("this is not a pdf"))
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestPagesReaderError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Pages(ctx, strings.NewReader("%PDF-")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
