// Package storage persists the capture journal, an audit trail of
// selections the daemon has captured. The journal is history only: the
// secondary clipboard itself is volatile and always starts empty on boot.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/types"
	"github.com/selclip/selclip-daemon/pkg/compression"
	"github.com/selclip/selclip-daemon/pkg/utils"
)

const (
	capturesBucket   = "captures"
	defaultKeepItems = 100
)

// JournalConfig holds configuration for Journal initialization.
type JournalConfig struct {
	DBPath    string
	KeepItems int
	Logger    *zap.Logger
}

// Journal is a bounded, append-only record of captured selections backed
// by BoltDB. Entries are keyed by an insertion sequence so iteration order
// is capture order; once KeepItems is exceeded the oldest entries are
// dropped.
type Journal struct {
	db        *bbolt.DB
	logger    *zap.Logger
	keepItems int
}

// NewJournal opens (or creates) the journal database.
func NewJournal(cfg JournalConfig) (*Journal, error) {
	keep := cfg.KeepItems
	if keep <= 0 {
		keep = defaultKeepItems
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := bbolt.Open(cfg.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(capturesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal bucket: %w", err)
	}

	logger.Debug("capture journal opened",
		zap.String("db_path", cfg.DBPath),
		zap.Int("keep_items", keep))

	return &Journal{
		db:        db,
		logger:    logger,
		keepItems: keep,
	}, nil
}

// SaveCapture appends a capture record, trimming the oldest entries beyond
// the retention limit. Missing ID, hash, or timestamp fields are filled in.
func (j *Journal) SaveCapture(rec *types.CaptureRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Hash == "" {
		rec.Hash = utils.HashContent([]byte(rec.Text))
	}
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = time.Now()
	}

	encoded, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(capturesBucket))

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate journal sequence: %w", err)
		}
		if err := b.Put(itob(seq), encoded); err != nil {
			return fmt.Errorf("failed to store capture record: %w", err)
		}

		j.logger.Debug("capture journaled",
			zap.String("id", rec.ID),
			zap.String("kind", string(rec.Kind)),
			zap.Uint64("seq", seq))

		return j.trim(b)
	})
}

// trim drops the oldest entries until at most keepItems remain.
func (j *Journal) trim(b *bbolt.Bucket) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, k)
	}

	excess := len(keys) - j.keepItems
	for i := 0; i < excess; i++ {
		if err := b.Delete(keys[i]); err != nil {
			return fmt.Errorf("failed to trim journal: %w", err)
		}
	}
	if excess > 0 {
		j.logger.Debug("journal trimmed", zap.Int("dropped", excess))
	}
	return nil
}

// Record implements the capture recorder contract.
func (j *Journal) Record(rec *types.CaptureRecord) error {
	return j.SaveCapture(rec)
}

// GetLatest returns the most recently journaled capture, or nil when the
// journal is empty.
func (j *Journal) GetLatest() (*types.CaptureRecord, error) {
	var latest *types.CaptureRecord

	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(capturesBucket)).Cursor()
		k, v := c.Last()
		if k == nil {
			return nil
		}
		rec, err := decodeRecord(v)
		if err != nil {
			return err
		}
		latest = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// ListRecent returns up to n captures, newest first.
func (j *Journal) ListRecent(n int) ([]*types.CaptureRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	records := make([]*types.CaptureRecord, 0, n)
	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(capturesBucket)).Cursor()
		for k, v := c.Last(); k != nil && len(records) < n; k, v = c.Prev() {
			rec, err := decodeRecord(v)
			if err != nil {
				j.logger.Warn("skipping unreadable journal entry", zap.Error(err))
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	return records, nil
}

// Count returns the number of journaled captures.
func (j *Journal) Count() (int, error) {
	var count int
	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(capturesBucket)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count journal: %w", err)
	}
	return count, nil
}

// Clear drops every journal entry.
func (j *Journal) Clear() error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(capturesBucket)); err != nil {
			return fmt.Errorf("failed to drop journal bucket: %w", err)
		}
		_, err := tx.CreateBucketIfNotExists([]byte(capturesBucket))
		return err
	})
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// encodeRecord marshals a record and compresses large values. Selections
// can run to megabytes; the journal should not.
func encodeRecord(rec *types.CaptureRecord) ([]byte, error) {
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capture record: %w", err)
	}
	packed, err := compression.Pack(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to pack capture record: %w", err)
	}
	return packed, nil
}

func decodeRecord(v []byte) (*types.CaptureRecord, error) {
	raw, err := compression.Unpack(v)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack capture record: %w", err)
	}
	var rec types.CaptureRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal capture record: %w", err)
	}
	return &rec, nil
}

// itob returns an 8-byte big-endian representation of v, giving keys that
// sort in insertion order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
