package strapi

import (
	"testing"
	"time"
)

func TestResolveImageURL(t *testing.T) {
	const base = "http://localhost:1337"
	cases := []struct {
		name string
		img  *Image
		want string
	}{
		{name: "relative", img: &Image{URL: "/img/x.png"}, want: "http://localhost:1337/img/x.png"},
		{name: "absolute", img: &Image{URL: "https://cdn.example.com/x.png"}, want: "https://cdn.example.com/x.png"},
		{name: "nil", img: nil, want: ""},
		{name: "empty url", img: &Image{}, want: ""},
	}
	for _, tc := range cases {
		if got := ResolveImageURL(base, tc.img); got != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestClientImageURLUsesConfiguredOrigin(t *testing.T) {
	c := New(Config{})
	if got := c.ImageURL(&Image{URL: "/img/x.png"}); got != "http://localhost:1337/img/x.png" {
		t.Fatalf("ImageURL = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-05T10:30:00.000Z": "January 5, 2024",
		"2024-01-05":               "January 5, 2024",
		"2023-12-31T23:59:59Z":     "December 31, 2023",
		"":                         InvalidDate,
		"garbage":                  InvalidDate,
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q want %q", in, got, want)
		}
	}
}

func TestFormatDateIn(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	if got := FormatDateIn("2023-12-31T20:00:00Z", loc); got != "January 1, 2024" {
		t.Fatalf("FormatDateIn = %q", got)
	}
}

func TestMetaFallbacks(t *testing.T) {
	a := Article{Title: "Title", Summary: "Summary"}
	if got := MetaTitle(a); got != "Title" {
		t.Errorf("MetaTitle fallback = %q", got)
	}
	if got := MetaDescription(a); got != "Summary" {
		t.Errorf("MetaDescription fallback = %q", got)
	}

	a.SEOTitle = "SEO"
	a.MetaDescription = "Meta"
	if got := MetaTitle(a); got != "SEO" {
		t.Errorf("MetaTitle override = %q", got)
	}
	if got := MetaDescription(a); got != "Meta" {
		t.Errorf("MetaDescription override = %q", got)
	}
}

func TestPublishedArticles(t *testing.T) {
	in := []Article{
		{ID: 1, Status: StatusDraft},
		{ID: 2, Status: StatusPublished},
		{ID: 3, Status: StatusPublished},
	}

	got := PublishedArticles(in)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("PublishedArticles = %#v", got)
	}

	if got := PublishedArticles(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
