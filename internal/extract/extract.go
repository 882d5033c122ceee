package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError marks a payload that could not be parsed as a PDF.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pdf extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Pages reads the object and returns one text string per page, in page
// order. Row breaks inside a page are preserved as newlines. A page with
// no extractable text (scanned images) yields an empty string rather
// than an error.
func Pages(ctx context.Context, r io.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return PagesFromBytes(data)
}

// PagesFromBytes extracts per-page text from an in-memory PDF.
func PagesFromBytes(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Reason: "empty payload"}
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Reason: "invalid pdf", Err: err}
	}

	total := pdfReader.NumPage()
	if total <= 0 {
		return nil, &ExtractionError{Reason: "no pages"}
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))
	}
	return pages, nil
}

func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		// A malformed content stream on one page should not sink the
		// whole document.
		return ""
	}

	var lines []string
	for _, row := range rows {
		var b strings.Builder
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
