package publishers

import (
	"time"

	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Event represents the payload published downstream for one synced article.
type Event struct {
	Slug     string         `json:"slug"`
	Source   string         `json:"source"`
	Article  strapi.Article `json:"article"`
	SyncedAt time.Time      `json:"synced_at"`
}

// NewEvent constructs an Event for an article fetched from the CMS at source.
func NewEvent(source string, article strapi.Article) Event {
	return Event{
		Slug:     article.Slug,
		Source:   source,
		Article:  article,
		SyncedAt: time.Now().UTC(),
	}
}

// attributes are attached to queue messages so consumers can filter without decoding.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"slug":         e.Slug,
		"published_at": e.Article.PublishedAt,
	}
}
