package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	revisionsBucket = []byte("article_revisions")

	errBucketMissing = errors.New("article revisions bucket missing")
)

// revisionRecord is the value stored per slug.
type revisionRecord struct {
	Revision  string `json:"revision"`
	SyncedAt  int64  `json:"synced_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func (r revisionRecord) expired(now time.Time) bool {
	return r.ExpiresAt <= now.Unix()
}

// boltStore keeps one revisionRecord per slug in a single bucket.
type boltStore struct {
	db  *bolt.DB
	ttl time.Duration

	mu          sync.Mutex
	sweepEvery  time.Duration
	nextSweepAt time.Time

	now func() time.Time
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(revisionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	s := &boltStore{
		db:         db,
		ttl:        opts.TTL,
		sweepEvery: opts.CleanupInterval,
		now:        time.Now,
	}
	s.nextSweepAt = s.now().Add(s.sweepEvery)
	return s, nil
}

func (s *boltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seen reports whether revision is the last one marked for slug and the
// record has not expired.
func (s *boltStore) Seen(slug, revision string) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}

	var rec revisionRecord
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(revisionsBucket)
		if b == nil {
			return errBucketMissing
		}
		rec, found = readRecord(b, slug)
		return nil
	})
	if err != nil {
		return false, err
	}
	return found && !rec.expired(s.now()) && rec.Revision == revision, nil
}

// Mark records revision as the last synced one for slug. Older revisions of
// the same slug are replaced.
func (s *boltStore) Mark(slug, revision string) error {
	if s == nil || s.db == nil {
		return nil
	}

	now := s.now()
	raw, err := json.Marshal(revisionRecord{
		Revision:  revision,
		SyncedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode revision: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(revisionsBucket)
		if b == nil {
			return errBucketMissing
		}
		return b.Put([]byte(slug), raw)
	})
	if err != nil {
		return err
	}
	return s.sweep(now)
}

// sweep drops expired and unreadable records at most once per interval.
func (s *boltStore) sweep(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.nextSweepAt) {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(revisionsBucket)
		if b == nil {
			return errBucketMissing
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rec revisionRecord
			if json.Unmarshal(v, &rec) == nil && !rec.expired(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sweep expired revisions: %w", err)
	}
	s.nextSweepAt = now.Add(s.sweepEvery)
	return nil
}

// readRecord loads the record for slug. Unreadable values count as absent.
func readRecord(b *bolt.Bucket, slug string) (revisionRecord, bool) {
	v := b.Get([]byte(slug))
	if v == nil {
		return revisionRecord{}, false
	}
	var rec revisionRecord
	if err := json.Unmarshal(v, &rec); err != nil {
		return revisionRecord{}, false
	}
	return rec, true
}
