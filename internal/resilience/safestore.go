package resilience

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/store"
)

// ReportKeyPrefix is the store prefix for persisted error reports.
const ReportKeyPrefix = "songngu:report:"

// SafeStore defaults.
const (
	// QuotaKeepBackups is how many backups a quota cleanup preserves.
	QuotaKeepBackups = 2
	// ReportMaxAge is how long error reports are kept.
	ReportMaxAge = 7 * 24 * time.Hour
)

// SafeStore wraps a KV so storage failures surface a differentiated,
// actionable notification instead of crashing the caller.
//
// A quota-exceeded write triggers a cleanup pass (old backups and stale
// error reports) and one retry before giving up.
type SafeStore struct {
	kv       store.KV
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// NewSafeStore creates a failure-classifying KV wrapper. notifier may be
// nil.
func NewSafeStore(kv store.KV, notifier notify.Notifier, log logger.Logger) *SafeStore {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &SafeStore{kv: kv, notifier: notifier, log: log, now: time.Now}
}

// Get implements store.KV.
func (s *SafeStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.kv.Get(ctx, key)
	if err != nil && errors.Is(err, store.ErrUnavailable) {
		s.notifyUnavailable()
	}
	return data, err
}

// Set implements store.KV. On quota exhaustion it frees space and retries
// the write once.
func (s *SafeStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.kv.Set(ctx, key, value)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrQuotaExceeded):
		s.log.Warn("storage quota exceeded, cleaning up", logger.String("key", key))
		if cleanupErr := s.Cleanup(ctx); cleanupErr != nil {
			s.log.Error("quota cleanup failed", logger.Error(cleanupErr))
		}
		if retryErr := s.kv.Set(ctx, key, value); retryErr == nil {
			s.notifier.Notify(notify.Warning, "Storage was full",
				"Old backups were removed to make room.")
			return nil
		}
		s.notifier.Notify(notify.Error, "Storage full",
			"Could not save: storage is full even after cleanup.",
			notify.Action{Label: "Clear old data", Run: func() {
				_ = s.Cleanup(context.Background())
			}})
		s.report(ctx, key, err)
		return err

	case errors.Is(err, store.ErrUnavailable):
		s.notifyUnavailable()
		s.report(ctx, key, err)
		return err

	default:
		s.notifier.Notify(notify.Error, "Save failed", err.Error())
		s.report(ctx, key, err)
		return err
	}
}

// Delete implements store.KV.
func (s *SafeStore) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

// Keys implements store.KV.
func (s *SafeStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.kv.Keys(ctx, prefix)
}

func (s *SafeStore) notifyUnavailable() {
	s.notifier.Notify(notify.Error, "Storage unavailable",
		"The storage backend is not reachable. Recent changes may not persist.",
		notify.Action{Label: "View details"})
}

// Cleanup frees space: keeps only the newest backups and prunes error
// reports past their retention window.
func (s *SafeStore) Cleanup(ctx context.Context) error {
	if err := s.pruneBackups(ctx); err != nil {
		return err
	}
	return s.pruneReports(ctx)
}

func (s *SafeStore) pruneBackups(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx, backup.KeyPrefix)
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}

	// Backup keys end in a fixed-width millisecond timestamp, so lexical
	// order on the suffix is chronological.
	sort.Slice(keys, func(i, j int) bool {
		return keys[i][strings.LastIndex(keys[i], ":"):] > keys[j][strings.LastIndex(keys[j], ":"):]
	})

	for _, key := range keys[min(len(keys), QuotaKeepBackups):] {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("prune backup %q: %w", key, err)
		}
		s.log.Info("pruned backup for space", logger.String("key", key))
	}
	return nil
}

func (s *SafeStore) pruneReports(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx, ReportKeyPrefix)
	if err != nil {
		return fmt.Errorf("list error reports: %w", err)
	}

	cutoff := s.now().Add(-ReportMaxAge)
	for _, key := range keys {
		ms, err := strconv.ParseInt(strings.TrimPrefix(key, ReportKeyPrefix), 10, 64)
		if err != nil {
			continue
		}
		if time.UnixMilli(ms).Before(cutoff) {
			if err := s.kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("prune report %q: %w", key, err)
			}
		}
	}
	return nil
}

// errorReport is the persisted record of a storage failure.
type errorReport struct {
	Key     string    `json:"key"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// report persists a failure record for later inspection. Best effort: a
// report that cannot be stored is only logged.
func (s *SafeStore) report(ctx context.Context, key string, cause error) {
	rec := errorReport{Key: key, Message: cause.Error(), Time: s.now()}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	reportKey := fmt.Sprintf("%s%013d", ReportKeyPrefix, rec.Time.UnixMilli())
	if err := s.kv.Set(ctx, reportKey, data); err != nil {
		s.log.Debug("could not persist error report", logger.Error(err))
	}
}
