package backup

import (
	"errors"
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
)

// SchemaVersion is the export format version this build writes.
const SchemaVersion = "2.0"

// ErrNoMigrationPath is returned when an import declares a version that no
// chain of migration rules connects to SchemaVersion. This is a hard error:
// silently importing such data would drop the fields the missing migrations
// exist to fill.
var ErrNoMigrationPath = errors.New("no migration path")

// Migration upgrades a snapshot from one schema version to the next.
type Migration struct {
	From        string
	To          string
	Description string
	Apply       func(*domain.Snapshot) error
}

// migrations is the linear upgrade chain, oldest first.
var migrations = []Migration{
	{
		From:        "1.0",
		To:          "1.1",
		Description: "introduce system settings with the default palette",
		Apply: func(snap *domain.Snapshot) error {
			if snap.Settings == nil {
				snap.Settings = &domain.SystemSettings{
					DefaultLanguage: domain.LanguageVi,
					DefaultTheme:    domain.ThemeLight,
					ColorPalette:    []string{"#1E293B", "#3B82F6", "#F59E0B", "#FFFFFF"},
				}
			}
			return nil
		},
	},
	{
		From:        "1.1",
		To:          "2.0",
		Description: "blog posts require at least one tag",
		Apply: func(snap *domain.Snapshot) error {
			for i := range snap.BlogPosts {
				if len(snap.BlogPosts[i].Tags) == 0 {
					snap.BlogPosts[i].Tags = []string{"general"}
				}
			}
			return nil
		},
	},
}

// SupportedVersions lists every version an import may declare: the current
// version plus everything reachable from the migration chain.
func SupportedVersions() []string {
	versions := make([]string, 0, len(migrations)+1)
	for _, m := range migrations {
		versions = append(versions, m.From)
	}
	return append(versions, SchemaVersion)
}

func versionSupported(v string) bool {
	for _, s := range SupportedVersions() {
		if s == v {
			return true
		}
	}
	return false
}

// Migrate upgrades snap in place from the declared version to
// SchemaVersion, applying every matching rule in chain order. Returns the
// rules applied. A declared version with no chain to the current one fails
// with ErrNoMigrationPath.
func Migrate(snap *domain.Snapshot, fromVersion string) ([]Migration, error) {
	var applied []Migration

	version := fromVersion
	// The chain is linear, so it can be walked at most once per rule.
	for steps := 0; version != SchemaVersion; steps++ {
		if steps > len(migrations) {
			return applied, fmt.Errorf("version %q: migration chain does not terminate: %w", fromVersion, ErrNoMigrationPath)
		}

		rule, ok := ruleFrom(version)
		if !ok {
			return applied, fmt.Errorf("version %q to %q: %w", fromVersion, SchemaVersion, ErrNoMigrationPath)
		}
		if err := rule.Apply(snap); err != nil {
			return applied, fmt.Errorf("migration %s -> %s (%s): %w", rule.From, rule.To, rule.Description, err)
		}
		applied = append(applied, rule)
		version = rule.To
	}

	return applied, nil
}

func ruleFrom(version string) (Migration, bool) {
	for _, m := range migrations {
		if m.From == version {
			return m, true
		}
	}
	return Migration{}, false
}
