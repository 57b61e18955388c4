package syncer

import (
	"context"

	"github.com/samvad-hq/samvad-content/pkg/publishers"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// ContentSource lists and loads articles from the CMS.
type ContentSource interface {
	Articles(ctx context.Context) ([]strapi.Article, error)
	Article(ctx context.Context, slug string) (strapi.Article, bool, error)
}

// EventPublisher fans an event out and reports how many sinks accepted it.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers the last delivered revision of each article.
type Deduper interface {
	Seen(slug, revision string) (bool, error)
	Mark(slug, revision string) error
}
