package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/samvad-content/internal/logger"
	"github.com/samvad-hq/samvad-content/pkg/publishers"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Service pushes newly published CMS articles to downstream publishers.
type Service struct {
	source    ContentSource
	origin    string
	publisher EventPublisher
	dedupe    Deduper
	log       logger.Logger
}

// Result summarizes one sync pass.
type Result struct {
	Listed    int `json:"listed"`
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
	Delivered int `json:"delivered"`
}

// NewService wires a syncer. origin is recorded on every event as its source.
func NewService(src ContentSource, origin string, pub EventPublisher, log logger.Logger, dedupe Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		source:    src,
		origin:    origin,
		publisher: pub,
		dedupe:    dedupe,
		log:       log,
	}
}

// Run executes one sync pass. Listing failures abort the pass; delivery
// failures are collected per article and joined.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var res Result
	if s == nil || s.source == nil || s.publisher == nil {
		return res, fmt.Errorf("sync service is not initialized")
	}

	all, err := s.source.Articles(ctx)
	if err != nil {
		return res, fmt.Errorf("list articles: %w", err)
	}
	res.Listed = len(all)

	published := strapi.PublishedArticles(all)
	res.Published = len(published)

	fresh := s.filterNew(published)
	res.Skipped = len(published) - len(fresh)

	var errs []error
	for _, summary := range fresh {
		if ctx.Err() != nil {
			break
		}

		article, found, err := s.source.Article(ctx, summary.Slug)
		if err != nil {
			errs = append(errs, fmt.Errorf("load article %s: %w", summary.Slug, err))
			return res, errors.Join(errs...)
		}
		if !found {
			s.log.WarnObj("article vanished before sync", "sync_skip", map[string]any{
				"slug": summary.Slug,
			})
			continue
		}

		delivered, err := s.deliver(ctx, article, summary.PublishedAt)
		if delivered {
			res.Delivered++
		}
		if err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("article sync failed", "sync_error", map[string]any{
				"slug":  summary.Slug,
				"error": err.Error(),
			})
		}
	}

	return res, errors.Join(errs...)
}

// filterNew drops revisions the deduper already knows. Articles whose lookup
// fails are kept.
func (s *Service) filterNew(articles []strapi.Article) []strapi.Article {
	if s.dedupe == nil {
		return articles
	}

	out := make([]strapi.Article, 0, len(articles))
	for _, a := range articles {
		seen, err := s.dedupe.Seen(a.Slug, a.PublishedAt)
		if err != nil {
			s.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"slug":  a.Slug,
				"error": err.Error(),
			})
			out = append(out, a)
			continue
		}
		if !seen {
			out = append(out, a)
		}
	}
	return out
}

// deliver publishes one article and marks its revision once any sink accepted it.
func (s *Service) deliver(ctx context.Context, article strapi.Article, revision string) (bool, error) {
	ok, pubErr := s.publisher.Publish(ctx, publishers.NewEvent(s.origin, article))
	if ok == 0 {
		if pubErr == nil {
			pubErr = errors.New("no publisher accepted the event")
		}
		return false, fmt.Errorf("publish article %s: %w", article.Slug, pubErr)
	}

	if s.dedupe != nil {
		if err := s.dedupe.Mark(article.Slug, revision); err != nil {
			pubErr = errors.Join(pubErr, fmt.Errorf("mark %s@%s: %w", article.Slug, revision, err))
		}
	}

	s.log.InfoObj("article synced", "sync_delivery", map[string]any{
		"slug":       article.Slug,
		"publishers": ok,
	})
	if pubErr != nil {
		return true, fmt.Errorf("article %s: %w", article.Slug, pubErr)
	}
	return true, nil
}
