package qa

import (
	"regexp"
	"strconv"
	"strings"
)

// Strategy names reported by Locate, in decreasing confidence order.
const (
	StrategyExact      = "exact"
	StrategyBridged    = "bridged"
	StrategyWindow     = "window"
	StrategyUngrounded = "ungrounded"
	StrategyQuestion   = "question"
)

// Location is the locator's verdict for one completion.
type Location struct {
	Page     int
	Excerpt  string
	Strategy string
}

var (
	pageCiteRe  = regexp.MustCompile(`(?i)see page\s*(\d+)`)
	highlightRe = regexp.MustCompile(`(?is)\[\[HIGHLIGHT\]\](.*?)\[\[/HIGHLIGHT\]\]`)
	citationRe  = regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Locate parses a model completion for a cited page and a highlighted
// excerpt, then grounds the excerpt against the cited page's real text.
// It never fails: each stage degrades to a lower-confidence fallback and
// the result always carries a concrete page and a non-empty excerpt.
func Locate(completion string, pages []string, question string) Location {
	page := 0
	if m := pageCiteRe.FindStringSubmatch(completion); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			page = n
		}
	}

	excerpt := ""
	if m := highlightRe.FindStringSubmatch(completion); m != nil {
		excerpt = normalizeSpace(m[1])
	}
	// A span that is only a citation is not answer content.
	if excerpt != "" && citationRe.MatchString(excerpt) {
		excerpt = ""
	}

	if excerpt != "" && page >= 1 && page <= len(pages) {
		located, strategy := ground(excerpt, pages[page-1])
		return Location{Page: page, Excerpt: located, Strategy: strategy}
	}

	// Last resort: a display placeholder from the question itself.
	if page < 1 {
		page = 1
	}
	return Location{
		Page:     page,
		Excerpt:  firstWords(question, 5),
		Strategy: StrategyQuestion,
	}
}

func ground(excerpt, pageText string) (string, string) {
	// Line breaks survive this normalization so an excerpt that crosses a
	// PDF line wrap is handed to the bridging strategy instead of matching
	// a text that never appears contiguously on the page.
	linePage := strings.ToLower(normalizeLines(pageText))
	lowerExcerpt := strings.ToLower(excerpt)

	// Exact containment is the common, successful case.
	if strings.Contains(linePage, lowerExcerpt) {
		return excerpt, StrategyExact
	}

	words := strings.Fields(excerpt)

	if joined, ok := bridgeLines(words, pageText); ok {
		return joined, StrategyBridged
	}

	if window, ok := matchWindow(words, strings.ToLower(normalizeSpace(pageText))); ok {
		return window, StrategyWindow
	}

	return firstWords(excerpt, 6), StrategyUngrounded
}

// bridgeLines recovers an excerpt that crosses a PDF line-wrap boundary:
// anchor the excerpt's leading words to the earliest matching raw line and
// its trailing words to the latest, then join the raw lines between them.
func bridgeLines(words []string, pageText string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}

	var lines []string
	for _, line := range strings.Split(pageText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) == 0 {
		return "", false
	}

	head := words[:min(3, len(words))]
	tail := words[max(0, len(words)-3):]

	start := anchorStart(lines, head)
	end := anchorEnd(lines, tail)
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return strings.Join(lines[start:end+1], " "), true
}

// anchorStart finds the earliest line containing all the leading words.
// When no single line holds them all (the wrap boundary falls inside the
// anchor itself), it retries with progressively shorter leading prefixes.
func anchorStart(lines, words []string) int {
	for k := len(words); k >= 1; k-- {
		sub := words[:k]
		for i, line := range lines {
			if lineHasAll(line, sub) {
				return i
			}
		}
	}
	return -1
}

// anchorEnd mirrors anchorStart from the back of the page, shortening the
// trailing suffix when needed.
func anchorEnd(lines, words []string) int {
	for k := len(words); k >= 1; k-- {
		sub := words[len(words)-k:]
		for i := len(lines) - 1; i >= 0; i-- {
			if lineHasAll(lines[i], sub) {
				return i
			}
		}
	}
	return -1
}

func lineHasAll(line string, words []string) bool {
	lower := strings.ToLower(normalizeSpace(line))
	for _, w := range words {
		if !strings.Contains(lower, strings.ToLower(w)) {
			return false
		}
	}
	return true
}

// matchWindow scans contiguous word windows of the excerpt, longest first,
// for one that appears in the page text.
func matchWindow(words []string, lowerPage string) (string, bool) {
	for size := 6; size >= 3; size-- {
		if size > len(words) {
			continue
		}
		for i := 0; i+size <= len(words); i++ {
			window := strings.Join(words[i:i+size], " ")
			if strings.Contains(lowerPage, strings.ToLower(window)) {
				return window, true
			}
		}
	}
	return "", false
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// normalizeLines collapses whitespace within each line but keeps the line
// structure of the page.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if trimmed := normalizeSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
