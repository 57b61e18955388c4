package strapi

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// InvalidDate is what FormatDate renders for input it cannot parse.
const InvalidDate = "Invalid Date"

const longDateLayout = "January 2, 2006"

// ResolveImageURL returns "" for a missing image, prefixes origin-relative
// URLs with baseURL and leaves absolute URLs untouched.
func ResolveImageURL(baseURL string, img *Image) string {
	if img == nil || img.URL == "" {
		return ""
	}
	if strings.HasPrefix(img.URL, "/") {
		return strings.TrimRight(baseURL, "/") + img.URL
	}
	return img.URL
}

// FormatDate renders a date string as a long en-US date in UTC, e.g.
// "January 5, 2024".
func FormatDate(value string) string {
	return FormatDateIn(value, time.UTC)
}

// FormatDateIn is FormatDate rendered in loc. Inputs without a zone are
// read as UTC.
func FormatDateIn(value string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return InvalidDate
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil || t.IsZero() {
		return InvalidDate
	}
	return t.In(loc).Format(longDateLayout)
}

// MetaTitle prefers the SEO title override.
func MetaTitle(a Article) string {
	if a.SEOTitle != "" {
		return a.SEOTitle
	}
	return a.Title
}

// MetaDescription prefers the SEO description override.
func MetaDescription(a Article) string {
	if a.MetaDescription != "" {
		return a.MetaDescription
	}
	return a.Summary
}

// PublishedArticles keeps published articles in their original order.
func PublishedArticles(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			out = append(out, a)
		}
	}
	return out
}
