package strapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// APIError is returned when the CMS answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Status)
}

// TransportError wraps network failures and undecodable response bodies.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("strapi %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// statusText strips the numeric code from a status line, falling back to the
// canonical reason phrase.
func statusText(code int, line string) string {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return text
}

// responseSnippet trims body to at most maxLen bytes without splitting a rune.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
