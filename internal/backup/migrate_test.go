package backup

import (
	"errors"
	"testing"

	"github.com/anhdng/songngu/internal/domain"
)

func TestMigrateFromOldestVersion(t *testing.T) {
	snap := domain.Snapshot{
		BlogPosts: []domain.BlogPost{
			{ID: "a", Tags: nil},
			{ID: "b", Tags: []string{"go"}},
		},
	}

	applied, err := Migrate(&snap, "1.0")
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied %d rules, want the full chain", len(applied))
	}
	if applied[0].From != "1.0" || applied[1].To != SchemaVersion {
		t.Errorf("chain order wrong: %s->%s then %s->%s",
			applied[0].From, applied[0].To, applied[1].From, applied[1].To)
	}

	if snap.Settings == nil {
		t.Fatal("settings not defaulted by 1.0 -> 1.1")
	}
	if len(snap.Settings.ColorPalette) < domain.MinPaletteColors {
		t.Errorf("default palette has %d colors, want at least %d",
			len(snap.Settings.ColorPalette), domain.MinPaletteColors)
	}

	if got := snap.BlogPosts[0].Tags; len(got) != 1 || got[0] != "general" {
		t.Errorf("untagged post tags = %v, want [general]", got)
	}
	if got := snap.BlogPosts[1].Tags; len(got) != 1 || got[0] != "go" {
		t.Errorf("tagged post tags = %v, must not be touched", got)
	}
}

func TestMigratePreservesExistingSettings(t *testing.T) {
	custom := &domain.SystemSettings{
		DefaultLanguage: domain.LanguageEn,
		DefaultTheme:    domain.ThemeDark,
		ColorPalette:    []string{"#000000", "#111111", "#222222", "#333333"},
	}
	snap := domain.Snapshot{Settings: custom}

	if _, err := Migrate(&snap, "1.0"); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if snap.Settings != custom {
		t.Error("existing settings replaced by migration default")
	}
}

func TestMigrateCurrentVersionIsNoop(t *testing.T) {
	snap := testSnapshot()
	before := snap

	applied, err := Migrate(&snap, SchemaVersion)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("applied %d rules on current version, want 0", len(applied))
	}
	if snap.Settings != before.Settings || len(snap.BlogPosts) != len(before.BlogPosts) {
		t.Error("current-version migration mutated the snapshot")
	}
}

func TestMigrateUnknownVersionFails(t *testing.T) {
	snap := domain.Snapshot{}

	_, err := Migrate(&snap, "0.5")
	if !errors.Is(err, ErrNoMigrationPath) {
		t.Fatalf("err = %v, want ErrNoMigrationPath", err)
	}
}

func TestSupportedVersions(t *testing.T) {
	versions := SupportedVersions()
	want := map[string]bool{"1.0": false, "1.1": false, SchemaVersion: false}
	for _, v := range versions {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("SupportedVersions() missing %q", v)
		}
	}
}
