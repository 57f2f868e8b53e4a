package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
)

// ImportMode selects how incoming data meets existing data.
type ImportMode string

const (
	// ModeOverwrite replaces each content section wholesale.
	ModeOverwrite ImportMode = "overwrite"
	// ModeMerge concatenates collections and shallow-merges singletons,
	// incoming winning on key conflicts.
	ModeMerge ImportMode = "merge"
)

// ImportResult is the outcome of validating an import artifact.
//
// Errors block the import. Warnings do not: checksum mismatches and
// unsupported-but-parseable versions are surfaced but the data is still
// offered, a deliberate best-effort policy for recovering what remains of
// a damaged export. Document is set only when Errors is empty.
type ImportResult struct {
	Errors   []string               `json:"errors"`
	Warnings []string               `json:"warnings"`
	Document *domain.ExportDocument `json:"-"`
	Metadata *domain.ExportMetadata `json:"metadata,omitempty"`
}

// Valid reports whether the artifact may be imported.
func (r ImportResult) Valid() bool { return len(r.Errors) == 0 }

// dataSections lists the required fields of the data block and whether each
// must be a JSON array.
var dataSections = []struct {
	name  string
	array bool
}{
	{"hero", false},
	{"about", false},
	{"services", true},
	{"projects", true},
	{"blogPosts", true},
	{"contact", false},
	{"settings", false},
}

// ValidateImport parses and checks an export artifact without writing
// anything. It never returns a Go error: all failures are collected into
// the result so the caller can show every problem at once.
func (m *Manager) ValidateImport(raw []byte) ImportResult {
	var res ImportResult

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid JSON: %v", err))
		return res
	}

	versionRaw, hasVersion := envelope["version"]
	var version string
	if !hasVersion || json.Unmarshal(versionRaw, &version) != nil || version == "" {
		res.Errors = append(res.Errors, "version field is missing")
	} else if !versionSupported(version) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("version %q is not a known export version; importing anyway", version))
	}

	dataRaw, hasData := envelope["data"]
	if !hasData || isNull(dataRaw) {
		res.Errors = append(res.Errors, "data block is missing")
		return res
	}

	var dataFields map[string]json.RawMessage
	if err := json.Unmarshal(dataRaw, &dataFields); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("data block is not an object: %v", err))
		return res
	}
	for _, sec := range dataSections {
		field, ok := dataFields[sec.name]
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("data.%s is missing", sec.name))
			continue
		}
		if sec.array && !isNull(field) && !isArray(field) {
			res.Errors = append(res.Errors, fmt.Sprintf("data.%s must be an array", sec.name))
		}
	}

	var doc domain.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("malformed export document: %v", err))
		return res
	}
	res.Metadata = &doc.Metadata

	// Integrity is advisory: recompute the checksum over the canonical
	// form of the decoded data block and compare.
	if hasher := hasherByName(doc.Metadata.Algorithm); hasher == nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unknown checksum algorithm %q; integrity not verified", doc.Metadata.Algorithm))
	} else if doc.Metadata.Checksum == "" {
		res.Warnings = append(res.Warnings, "export carries no checksum; integrity not verified")
	} else {
		canonical, err := json.Marshal(doc.Data)
		if err == nil && hasher.Sum(canonical) != doc.Metadata.Checksum {
			res.Warnings = append(res.Warnings, "checksum mismatch: the export may be corrupted")
		}
	}

	if res.Valid() {
		res.Document = &doc
	}
	return res
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ImportOptions tunes Import.
type ImportOptions struct {
	Mode ImportMode

	// SkipPreBackup skips the safety backup before the destructive
	// write. Only the restore path sets this, because it has already
	// taken its own.
	SkipPreBackup bool
}

// Import applies a previously validated document to the content store.
//
// The sequence is fixed: migrate, safety backup, write, broadcast. The
// safety backup must complete (or be explicitly skipped) before anything
// is written, so a bad import is always recoverable. There is no
// atomicity across sections; a crash mid-import can leave a partial
// write, which the safety backup exists to undo.
func (m *Manager) Import(ctx context.Context, doc *domain.ExportDocument, opts ImportOptions) error {
	if opts.Mode == "" {
		opts.Mode = ModeOverwrite
	}

	snap := doc.Data
	applied, err := Migrate(&snap, doc.Version)
	if err != nil {
		m.notifier.Notify(notify.Error, "Import failed",
			fmt.Sprintf("Cannot upgrade data from version %s: %v", doc.Version, err))
		return fmt.Errorf("migrate import: %w", err)
	}
	for _, rule := range applied {
		m.log.Info("applied schema migration",
			logger.String("from", rule.From),
			logger.String("to", rule.To),
			logger.String("description", rule.Description))
	}

	if !opts.SkipPreBackup {
		if _, err := m.CreateBackup(ctx, ReasonPreImport); err != nil {
			m.notifier.Notify(notify.Error, "Import aborted",
				"Could not take a safety backup before importing; nothing was changed.")
			return fmt.Errorf("pre-import backup: %w", err)
		}
	}

	if err := m.write(ctx, snap, opts.Mode); err != nil {
		m.notifier.Notify(notify.Error, "Import failed", err.Error())
		return err
	}

	if m.bus != nil {
		m.bus.Publish(notify.Event{Type: "import", Action: string(opts.Mode)})
	}
	m.notifier.Notify(notify.Success, "Import complete",
		fmt.Sprintf("Imported %d items in %s mode.", snap.TotalItems(), opts.Mode))
	return nil
}

func (m *Manager) write(ctx context.Context, snap domain.Snapshot, mode ImportMode) error {
	if mode == ModeOverwrite {
		// Wholesale replacement: collections become exactly the incoming
		// ones, including empty.
		if snap.Services == nil {
			snap.Services = []domain.Service{}
		}
		if snap.Projects == nil {
			snap.Projects = []domain.Project{}
		}
		if snap.BlogPosts == nil {
			snap.BlogPosts = []domain.BlogPost{}
		}
		return m.content.WriteSnapshot(ctx, snap)
	}

	existing, err := m.content.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read existing content: %w", err)
	}

	merged := domain.Snapshot{
		Services:  append(existing.Services, snap.Services...),
		Projects:  append(existing.Projects, snap.Projects...),
		BlogPosts: append(existing.BlogPosts, snap.BlogPosts...),
	}
	if merged.Hero, err = mergeSection(existing.Hero, snap.Hero); err != nil {
		return err
	}
	if merged.About, err = mergeSection(existing.About, snap.About); err != nil {
		return err
	}
	if merged.Contact, err = mergeSection(existing.Contact, snap.Contact); err != nil {
		return err
	}
	if merged.Settings, err = mergeSection(existing.Settings, snap.Settings); err != nil {
		return err
	}
	return m.content.WriteSnapshot(ctx, merged)
}

// mergeSection shallow-merges incoming over existing at the JSON key
// level: keys present in incoming win, everything else survives.
func mergeSection[T any](existing, incoming *T) (*T, error) {
	if incoming == nil {
		return existing, nil
	}
	if existing == nil {
		return incoming, nil
	}

	base, err := toMap(existing)
	if err != nil {
		return nil, err
	}
	overlay, err := toMap(incoming)
	if err != nil {
		return nil, err
	}
	for k, v := range overlay {
		base[k] = v
	}

	blob, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("merge section: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(blob, out); err != nil {
		return nil, fmt.Errorf("merge section: %w", err)
	}
	return out, nil
}

func toMap(v any) (map[string]json.RawMessage, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("merge section: %w", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("merge section: %w", err)
	}
	return m, nil
}
