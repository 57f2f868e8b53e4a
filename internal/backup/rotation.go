package backup

import (
	"context"
	"fmt"
	"sort"

	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
)

// CreateBackup exports the current content and stores it under a key
// encoding the reason and timestamp, then rotates old entries out.
func (m *Manager) CreateBackup(ctx context.Context, reason string) (BackupInfo, error) {
	data, err := m.Export(ctx)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("backup export: %w", err)
	}

	now := m.now()
	info := BackupInfo{
		Key:       backupKey(reason, now),
		Reason:    reason,
		CreatedAt: now,
		Size:      len(data),
	}
	if err := m.kv.Set(ctx, info.Key, data); err != nil {
		return BackupInfo{}, fmt.Errorf("store backup: %w", err)
	}

	m.log.Info("backup created",
		logger.String("key", info.Key),
		logger.String("reason", reason),
		logger.Int("size", info.Size))

	// Rotation is best effort: a failed cleanup never fails the backup
	// that just succeeded.
	if err := m.cleanup(ctx); err != nil {
		m.log.Warn("backup rotation failed", logger.Error(err))
	}
	return info, nil
}

// ListBackups returns all stored backups, newest first.
func (m *Manager) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	keys, err := m.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	infos := make([]BackupInfo, 0, len(keys))
	for _, key := range keys {
		reason, ts, ok := parseBackupKey(key)
		if !ok {
			continue // foreign key under our prefix, leave it alone
		}
		info := BackupInfo{Key: key, Reason: reason, CreatedAt: ts}
		if data, err := m.kv.Get(ctx, key); err == nil {
			info.Size = len(data)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// cleanup deletes everything beyond the maxBackups most recent entries.
func (m *Manager) cleanup(ctx context.Context) error {
	infos, err := m.ListBackups(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos[min(len(infos), m.maxBackups):] {
		if err := m.kv.Delete(ctx, info.Key); err != nil {
			return fmt.Errorf("rotate backup %q: %w", info.Key, err)
		}
		m.log.Debug("rotated out old backup", logger.String("key", info.Key))
	}
	return nil
}

// Restore replaces all content with the chosen backup. A fresh
// "pre_restore" safety backup is always taken first, so even a restore of
// the wrong backup is undoable.
func (m *Manager) Restore(ctx context.Context, key string) error {
	data, err := m.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read backup %q: %w", key, err)
	}

	res := m.ValidateImport(data)
	if !res.Valid() {
		m.notifier.Notify(notify.Error, "Restore failed",
			fmt.Sprintf("Backup %s is not restorable: %v", key, res.Errors))
		return fmt.Errorf("backup %q failed validation: %v", key, res.Errors)
	}
	for _, warning := range res.Warnings {
		m.notifier.Notify(notify.Warning, "Restore warning", warning)
	}

	if _, err := m.CreateBackup(ctx, ReasonPreRestore); err != nil {
		m.notifier.Notify(notify.Error, "Restore aborted",
			"Could not take a safety backup before restoring; nothing was changed.")
		return fmt.Errorf("pre-restore backup: %w", err)
	}

	if err := m.Import(ctx, res.Document, ImportOptions{Mode: ModeOverwrite, SkipPreBackup: true}); err != nil {
		return fmt.Errorf("restore %q: %w", key, err)
	}

	if m.bus != nil {
		m.bus.Publish(notify.Event{Type: "restore", Action: "overwrite", Data: key})
	}
	return nil
}
