// Package backup implements the export/import/backup pipeline over the
// content store.
//
// Every operation is atomic end to end within a single call: there is no
// persistent in-progress state. The one ordering guarantee callers rely on
// is that a destructive write (import, restore) is always preceded by a
// safety backup unless the caller explicitly skips it.
package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anhdng/songngu/internal/content"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/store"
)

// Backup reason tags, encoded into the backup key.
const (
	ReasonAuto       = "auto"
	ReasonManual     = "manual"
	ReasonPreImport  = "pre_import"
	ReasonPreRestore = "pre_restore"
)

// KeyPrefix is the store prefix for backup entries.
const KeyPrefix = "songngu:backup:"

// DefaultMaxBackups is how many rotating backups are kept.
const DefaultMaxBackups = 10

// Manager runs the pipeline: export, import, rotation, restore.
type Manager struct {
	content    *content.Store
	kv         store.KV
	bus        *notify.Bus
	notifier   notify.Notifier
	log        logger.Logger
	hasher     Hasher
	maxBackups int
	now        func() time.Time
	newID      func() string
}

// Config tunes a Manager. Zero values select defaults.
type Config struct {
	Hasher     Hasher
	MaxBackups int
	Now        func() time.Time // for testing
	NewID      func() string    // for testing
}

// NewManager creates a pipeline manager. bus and notifier may be nil.
func NewManager(c *content.Store, kv store.KV, notifier notify.Notifier, bus *notify.Bus, log logger.Logger, cfg Config) *Manager {
	if cfg.Hasher == nil {
		cfg.Hasher = XXHash{}
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{
		content:    c,
		kv:         kv,
		bus:        bus,
		notifier:   notifier,
		log:        log,
		hasher:     cfg.Hasher,
		maxBackups: cfg.MaxBackups,
		now:        cfg.Now,
		newID:      cfg.NewID,
	}
}

// BackupInfo describes one stored backup.
type BackupInfo struct {
	Key       string    `json:"key"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int       `json:"size"`
}

// backupKey encodes reason and millisecond timestamp into the store key.
// The fixed-width timestamp keeps lexical and chronological order aligned.
func backupKey(reason string, ts time.Time) string {
	return fmt.Sprintf("%s%s:%013d", KeyPrefix, reason, ts.UnixMilli())
}

// parseBackupKey recovers reason and timestamp from a backup key.
func parseBackupKey(key string) (reason string, ts time.Time, ok bool) {
	rest, found := strings.CutPrefix(key, KeyPrefix)
	if !found {
		return "", time.Time{}, false
	}
	idx := strings.LastIndex(rest, ":")
	if idx < 0 {
		return "", time.Time{}, false
	}
	ms, err := strconv.ParseInt(rest[idx+1:], 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return rest[:idx], time.UnixMilli(ms), true
}
