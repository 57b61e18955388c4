package strapi

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Strapi v4 wraps every record as {id, attributes} and every relation as
// {data: record|null} or {data: [record...]}. The types below mirror that
// shape only as far as the flattening needs. Decoding is optimistic: a value
// of the wrong JSON type reads as its zero value instead of failing the
// whole response.

type listEnvelope[T any] struct {
	Data entryList[T]    `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

type entry[T any] struct {
	ID         int64
	Attributes T
}

func (e *entry[T]) UnmarshalJSON(raw []byte) error {
	var shape struct {
		ID         json.RawMessage `json:"id"`
		Attributes json.RawMessage `json:"attributes"`
	}
	if !isObject(raw) || json.Unmarshal(raw, &shape) != nil {
		return nil
	}

	var id int64
	if json.Unmarshal(shape.ID, &id) == nil {
		e.ID = id
	}
	if len(shape.Attributes) == 0 {
		return nil
	}
	return decodeLenient(shape.Attributes, &e.Attributes)
}

// entryList decodes an array of records, skipping elements that are not objects.
type entryList[T any] []entry[T]

func (l *entryList[T]) UnmarshalJSON(raw []byte) error {
	*l = nil
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}

	out := make(entryList[T], 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var e entry[T]
		if err := e.UnmarshalJSON(item); err != nil {
			return err
		}
		out = append(out, e)
	}
	*l = out
	return nil
}

type relation[T any] struct {
	Data *entry[T]
}

// UnmarshalJSON keeps data only when it is a single record.
func (r *relation[T]) UnmarshalJSON(raw []byte) error {
	r.Data = nil
	var shape struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &shape) != nil || !isObject(shape.Data) {
		return nil
	}

	var e entry[T]
	if err := e.UnmarshalJSON(shape.Data); err != nil {
		return err
	}
	r.Data = &e
	return nil
}

// value returns the related attributes, or nil when the relation is absent or null.
func (r *relation[T]) value() *T {
	if r == nil || r.Data == nil {
		return nil
	}
	v := r.Data.Attributes
	return &v
}

type relationList[T any] struct {
	Data entryList[T]
}

// UnmarshalJSON keeps data only when it is an array of records.
func (r *relationList[T]) UnmarshalJSON(raw []byte) error {
	r.Data = nil
	var shape struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &shape) != nil || len(shape.Data) == 0 {
		return nil
	}
	return r.Data.UnmarshalJSON(shape.Data)
}

// values returns the related attributes in order; never nil.
func (r *relationList[T]) values() []T {
	if r == nil {
		return []T{}
	}
	out := make([]T, 0, len(r.Data))
	for _, e := range r.Data {
		out = append(out, e.Attributes)
	}
	return out
}

// decodeLenient decodes raw into v, leaving fields whose JSON type does not
// match at their zero value.
func decodeLenient(raw []byte, v any) error {
	err := json.Unmarshal(raw, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

type authorAttributes struct {
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	ProfileImage *relation[Image] `json:"profile_image"`
}

type articleAttributes struct {
	Title           string                      `json:"title"`
	Slug            string                      `json:"slug"`
	Summary         string                      `json:"summary"`
	Body            string                      `json:"body"`
	SEOTitle        string                      `json:"seo_title"`
	MetaDescription string                      `json:"meta_description"`
	FeaturedImage   *relation[Image]            `json:"featured_image"`
	PublishedAt     string                      `json:"publishedAt"`
	Status          Status                      `json:"status"`
	Author          *relation[authorAttributes] `json:"author"`
	Category        *relation[Category]         `json:"category"`
	Tags            *relationList[Tag]          `json:"tags"`
	Blocks          []json.RawMessage           `json:"blocks"`
}

func transformAuthor(attrs authorAttributes) Author {
	return Author{
		Name:         attrs.Name,
		Slug:         attrs.Slug,
		ProfileImage: attrs.ProfileImage.value(),
	}
}

// transformArticle lifts id and attributes to a flat Article.
func transformArticle(e entry[articleAttributes]) Article {
	attrs := e.Attributes

	var author *Author
	if a := attrs.Author.value(); a != nil {
		flat := transformAuthor(*a)
		author = &flat
	}

	return Article{
		ID:              e.ID,
		Title:           attrs.Title,
		Slug:            attrs.Slug,
		Summary:         attrs.Summary,
		Body:            attrs.Body,
		SEOTitle:        attrs.SEOTitle,
		MetaDescription: attrs.MetaDescription,
		FeaturedImage:   attrs.FeaturedImage.value(),
		PublishedAt:     attrs.PublishedAt,
		Status:          attrs.Status,
		Author:          author,
		Category:        attrs.Category.value(),
		Tags:            attrs.Tags.values(),
		Blocks:          decodeBlocks(attrs.Blocks),
	}
}

func transformArticles(entries entryList[articleAttributes]) []Article {
	out := make([]Article, 0, len(entries))
	for _, e := range entries {
		out = append(out, transformArticle(e))
	}
	return out
}

// attributesOf drops the id of simple list records and keeps their attributes.
func attributesOf[T any](entries entryList[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Attributes)
	}
	return out
}

func transformAuthors(entries entryList[authorAttributes]) []Author {
	out := make([]Author, 0, len(entries))
	for _, e := range entries {
		out = append(out, transformAuthor(e.Attributes))
	}
	return out
}
