package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-content/internal/config"
	"github.com/samvad-hq/samvad-content/internal/logger"
	"github.com/samvad-hq/samvad-content/internal/storage"
	"github.com/samvad-hq/samvad-content/internal/syncer"
	"github.com/samvad-hq/samvad-content/pkg/publishers"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// Syncer is the CMS sync runtime. It owns the publisher fan-out and the
// revision store and drives the sync service on an interval.
type Syncer struct {
	cfg          *config.Config
	fanout       *publishers.Fanout
	service      *syncer.Service
	syncInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewSyncer builds a sync runtime from config files.
func NewSyncer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Syncer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := strapi.New(cfg.Strapi(), strapi.WithLogger(log))

	return &Syncer{
		cfg:          cfg,
		fanout:       fanout,
		service:      syncer.NewService(client, client.BaseURL(), fanout, log, store),
		syncInterval: cfg.SyncInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the sync loop until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	if s == nil || s.service == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.close()

	s.log.InfoObj("sync loop starting", "syncer_state", map[string]any{
		"cms":              s.cfg.StrapiURL,
		"publishers_count": s.fanout.Size(),
		"sync_interval":    s.syncInterval.String(),
	})

	if err := s.runOnce(ctx); err != nil {
		s.log.ErrorObj("initial sync failed", "error", err.Error())
	}

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("sync loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.log.ErrorObj("scheduled sync failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single pass and releases resources afterwards.
func (s *Syncer) RunOnce(ctx context.Context) error {
	if s == nil || s.service == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.close()
	return s.runOnce(ctx)
}

func (s *Syncer) runOnce(ctx context.Context) error {
	start := time.Now()
	res, err := s.service.Run(ctx)
	s.log.InfoObj("sync completed", "sync_meta", map[string]any{
		"result":     res,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return err
}

// close releases publishers and the storage backend, logging any errors.
func (s *Syncer) close() {
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publisher close failed", "error", err.Error())
	}
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
