// Package content is the typed content layer over the key/value port.
//
// Every write publishes a data-changed event on the bus after the store
// write succeeds, so subscribers re-reading the store always observe the
// state the event describes.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/store"
)

// Store reads and writes content sections.
type Store struct {
	kv  store.KV
	bus *notify.Bus
}

// New creates a content store. bus may be nil to disable broadcasts.
func New(kv store.KV, bus *notify.Bus) *Store {
	return &Store{kv: kv, bus: bus}
}

func (s *Store) publish(eventType, action string, data any) {
	if s.bus != nil {
		s.bus.Publish(notify.Event{Type: eventType, Action: action, Data: data})
	}
}

// get decodes the value at key into out. Returns store.ErrNotFound when the
// section has never been written.
func (s *Store) get(ctx context.Context, key string, out any) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("corrupt content at %q: %w", key, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key, eventType string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return err
	}
	s.publish(eventType, "update", value)
	return nil
}

// Hero returns the hero section, or nil if never written.
func (s *Store) Hero(ctx context.Context) (*domain.HeroContent, error) {
	var h domain.HeroContent
	if err := s.get(ctx, KeyHero, &h); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// SaveHero writes the hero section.
func (s *Store) SaveHero(ctx context.Context, h domain.HeroContent) error {
	return s.set(ctx, KeyHero, "hero", h)
}

// About returns the about section, or nil if never written.
func (s *Store) About(ctx context.Context) (*domain.AboutContent, error) {
	var a domain.AboutContent
	if err := s.get(ctx, KeyAbout, &a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// SaveAbout writes the about section.
func (s *Store) SaveAbout(ctx context.Context, a domain.AboutContent) error {
	return s.set(ctx, KeyAbout, "about", a)
}

// Services returns the service collection. Missing section reads as empty.
func (s *Store) Services(ctx context.Context) ([]domain.Service, error) {
	var list []domain.Service
	if err := s.get(ctx, KeyServices, &list); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return list, nil
}

// SaveServices replaces the service collection.
func (s *Store) SaveServices(ctx context.Context, list []domain.Service) error {
	return s.set(ctx, KeyServices, "services", list)
}

// Projects returns the project collection. Missing section reads as empty.
func (s *Store) Projects(ctx context.Context) ([]domain.Project, error) {
	var list []domain.Project
	if err := s.get(ctx, KeyProjects, &list); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return list, nil
}

// SaveProjects replaces the project collection.
func (s *Store) SaveProjects(ctx context.Context, list []domain.Project) error {
	return s.set(ctx, KeyProjects, "projects", list)
}

// BlogPosts returns the blog collection. Missing section reads as empty.
func (s *Store) BlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var list []domain.BlogPost
	if err := s.get(ctx, KeyBlogPosts, &list); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return list, nil
}

// SaveBlogPosts replaces the blog collection.
func (s *Store) SaveBlogPosts(ctx context.Context, list []domain.BlogPost) error {
	return s.set(ctx, KeyBlogPosts, "blogPosts", list)
}

// Contact returns the contact section, or nil if never written.
func (s *Store) Contact(ctx context.Context) (*domain.ContactInfo, error) {
	var c domain.ContactInfo
	if err := s.get(ctx, KeyContact, &c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// SaveContact writes the contact section.
func (s *Store) SaveContact(ctx context.Context, c domain.ContactInfo) error {
	return s.set(ctx, KeyContact, "contact", c)
}

// Settings returns the system settings, or nil if never written.
func (s *Store) Settings(ctx context.Context) (*domain.SystemSettings, error) {
	var st domain.SystemSettings
	if err := s.get(ctx, KeySettings, &st); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// SaveSettings writes the system settings.
func (s *Store) SaveSettings(ctx context.Context, st domain.SystemSettings) error {
	return s.set(ctx, KeySettings, "settings", st)
}

// Snapshot reads every content section in one pass.
func (s *Store) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	var err error

	if snap.Hero, err = s.Hero(ctx); err != nil {
		return snap, err
	}
	if snap.About, err = s.About(ctx); err != nil {
		return snap, err
	}
	if snap.Services, err = s.Services(ctx); err != nil {
		return snap, err
	}
	if snap.Projects, err = s.Projects(ctx); err != nil {
		return snap, err
	}
	if snap.BlogPosts, err = s.BlogPosts(ctx); err != nil {
		return snap, err
	}
	if snap.Contact, err = s.Contact(ctx); err != nil {
		return snap, err
	}
	if snap.Settings, err = s.Settings(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

// WriteSnapshot replaces the whole store with the snapshot: non-nil
// sections are written, nil sections are deleted. After the call the store
// holds exactly what the snapshot holds, which is what restore and
// overwrite import rely on. There is no atomicity across sections: a crash
// mid-write can leave some sections updated and others not. The
// backup-before-destructive-write convention in the backup pipeline is what
// makes that recoverable.
//
// Section writes do not publish individual events; the caller publishes one
// aggregate event once the whole snapshot is in place.
func (s *Store) WriteSnapshot(ctx context.Context, snap domain.Snapshot) error {
	type section struct {
		key    string
		value  any
		absent bool
	}
	sections := []section{
		{KeyHero, snap.Hero, snap.Hero == nil},
		{KeyAbout, snap.About, snap.About == nil},
		{KeyServices, snap.Services, snap.Services == nil},
		{KeyProjects, snap.Projects, snap.Projects == nil},
		{KeyBlogPosts, snap.BlogPosts, snap.BlogPosts == nil},
		{KeyContact, snap.Contact, snap.Contact == nil},
		{KeySettings, snap.Settings, snap.Settings == nil},
	}

	for _, sec := range sections {
		if sec.absent {
			if err := s.kv.Delete(ctx, sec.key); err != nil {
				return fmt.Errorf("clear %q: %w", sec.key, err)
			}
			continue
		}
		data, err := json.Marshal(sec.value)
		if err != nil {
			return fmt.Errorf("encode %q: %w", sec.key, err)
		}
		if err := s.kv.Set(ctx, sec.key, data); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether no content section has ever been written.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return false, err
	}
	return len(keys) == 0, nil
}
