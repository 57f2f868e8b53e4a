// Package images keeps uploaded images in the key/value store under an
// aggregate byte budget.
//
// When an upload would push the store past the budget, the oldest images
// are evicted first until the new one fits. The incoming image is never a
// candidate for eviction; an image that cannot fit even in an empty store
// is rejected outright.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/store"
)

// KeyPrefix is the store prefix for image entries.
const KeyPrefix = "songngu:images:"

// ErrTooLarge is returned when a single image exceeds the whole budget.
var ErrTooLarge = errors.New("image exceeds storage budget")

// ErrNotFound is returned when no image carries the requested id.
var ErrNotFound = errors.New("image not found")

// Store is the image store over the key/value port.
type Store struct {
	kv       store.KV
	bus      *notify.Bus
	notifier notify.Notifier
	log      logger.Logger
	budget   int
	now      func() time.Time
	newID    func() string
}

// Config tunes a Store. Zero values select defaults.
type Config struct {
	Budget int              // bytes, default domain.ImageBudget
	Now    func() time.Time // for testing
	NewID  func() string    // for testing
}

// New creates an image store. bus and notifier may be nil.
func New(kv store.KV, notifier notify.Notifier, bus *notify.Bus, log logger.Logger, cfg Config) *Store {
	if cfg.Budget <= 0 {
		cfg.Budget = domain.ImageBudget
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
	return &Store{
		kv:       kv,
		bus:      bus,
		notifier: notifier,
		log:      log,
		budget:   cfg.Budget,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}
}

func key(id string) string { return KeyPrefix + id }

// Upload stores an image, assigning it an id and upload timestamp. Returns
// the stored image and the ids evicted to make room.
func (s *Store) Upload(ctx context.Context, img domain.StoredImage) (domain.StoredImage, []string, error) {
	img.ID = s.newID()
	img.UploadDate = s.now()

	data, err := json.Marshal(img)
	if err != nil {
		return domain.StoredImage{}, nil, fmt.Errorf("encode image: %w", err)
	}
	if len(data) > s.budget {
		return domain.StoredImage{}, nil, fmt.Errorf("%s (%d of %d bytes): %w", img.Filename, len(data), s.budget, ErrTooLarge)
	}

	evicted, err := s.makeRoom(ctx, len(data))
	if err != nil {
		return domain.StoredImage{}, nil, err
	}
	if err := s.kv.Set(ctx, key(img.ID), data); err != nil {
		return domain.StoredImage{}, evicted, fmt.Errorf("store image: %w", err)
	}

	if len(evicted) > 0 {
		s.notifier.Notify(notify.Warning, "Storage full",
			fmt.Sprintf("Removed %d older image(s) to make room for %s.", len(evicted), img.Filename))
	}
	s.log.Info("image uploaded",
		logger.String("id", img.ID),
		logger.String("category", img.Category),
		logger.Int("size", len(data)),
		logger.Int("evicted", len(evicted)))
	s.publish("upload", img.ID)
	return img, evicted, nil
}

// makeRoom evicts oldest images until incoming bytes fit under the budget.
func (s *Store) makeRoom(ctx context.Context, incoming int) ([]string, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	used := 0
	for _, e := range entries {
		used += e.size
	}

	var evicted []string
	for i := 0; used+incoming > s.budget && i < len(entries); i++ {
		oldest := entries[i]
		if err := s.kv.Delete(ctx, key(oldest.img.ID)); err != nil {
			return evicted, fmt.Errorf("evict image %q: %w", oldest.img.ID, err)
		}
		used -= oldest.size
		evicted = append(evicted, oldest.img.ID)
		s.log.Debug("evicted image", logger.String("id", oldest.img.ID))
	}
	if used+incoming > s.budget {
		return evicted, fmt.Errorf("%d of %d bytes after eviction: %w", used+incoming, s.budget, ErrTooLarge)
	}
	return evicted, nil
}

type entry struct {
	img  domain.StoredImage
	size int
}

// entries reads all stored images, oldest first.
func (s *Store) entries(ctx context.Context) ([]entry, error) {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		data, err := s.kv.Get(ctx, k)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("read image %q: %w", k, err)
		}
		var img domain.StoredImage
		if err := json.Unmarshal(data, &img); err != nil {
			s.log.Warn("skipping corrupt image entry", logger.String("key", k), logger.Error(err))
			continue
		}
		out = append(out, entry{img: img, size: len(data)})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].img.UploadDate.Before(out[j].img.UploadDate)
	})
	return out, nil
}

// List returns all stored images, newest first.
func (s *Store) List(ctx context.Context) ([]domain.StoredImage, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredImage, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i].img)
	}
	return out, nil
}

// ByCategory returns the stored images in one category, newest first.
func (s *Store) ByCategory(ctx context.Context, category string) ([]domain.StoredImage, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredImage, 0, len(all))
	for _, img := range all {
		if img.Category == category {
			out = append(out, img)
		}
	}
	return out, nil
}

// Get returns one image by id.
func (s *Store) Get(ctx context.Context, id string) (domain.StoredImage, error) {
	data, err := s.kv.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.StoredImage{}, fmt.Errorf("%q: %w", id, ErrNotFound)
		}
		return domain.StoredImage{}, fmt.Errorf("read image %q: %w", id, err)
	}
	var img domain.StoredImage
	if err := json.Unmarshal(data, &img); err != nil {
		return domain.StoredImage{}, fmt.Errorf("corrupt image %q: %w", id, err)
	}
	return img, nil
}

// Delete removes one image by id. Deleting an unknown id fails with
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("delete image %q: %w", id, err)
	}
	s.publish("delete", id)
	return nil
}

// DeleteCategory removes every image in a category and returns how many
// were deleted.
func (s *Store) DeleteCategory(ctx context.Context, category string) (int, error) {
	imgs, err := s.ByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	for _, img := range imgs {
		if err := s.kv.Delete(ctx, key(img.ID)); err != nil {
			return 0, fmt.Errorf("delete image %q: %w", img.ID, err)
		}
	}
	if len(imgs) > 0 {
		s.publish("delete", category)
	}
	return len(imgs), nil
}

// Used returns the aggregate size of all stored images in bytes.
func (s *Store) Used(ctx context.Context) (int, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return 0, err
	}
	used := 0
	for _, e := range entries {
		used += e.size
	}
	return used, nil
}

// Budget returns the aggregate byte budget for the image library.
func (s *Store) Budget() int { return s.budget }

// Export returns all stored images as a JSON array, oldest first.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	imgs := make([]domain.StoredImage, len(entries))
	for i, e := range entries {
		imgs[i] = e.img
	}
	out, err := json.MarshalIndent(imgs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode image export: %w", err)
	}
	return out, nil
}

// Import stores every image from a JSON array export, keeping existing ids
// and upload dates. Images are applied oldest first so eviction under
// pressure keeps the newest of the imported set.
func (s *Store) Import(ctx context.Context, raw []byte) (int, error) {
	var imgs []domain.StoredImage
	if err := json.Unmarshal(raw, &imgs); err != nil {
		return 0, fmt.Errorf("decode image import: %w", err)
	}

	sort.Slice(imgs, func(i, j int) bool {
		return imgs[i].UploadDate.Before(imgs[j].UploadDate)
	})

	stored := 0
	for _, img := range imgs {
		if img.ID == "" {
			img.ID = s.newID()
		}
		if img.UploadDate.IsZero() {
			img.UploadDate = s.now()
		}
		data, err := json.Marshal(img)
		if err != nil {
			return stored, fmt.Errorf("encode image %q: %w", img.ID, err)
		}
		if len(data) > s.budget {
			s.log.Warn("skipping oversized imported image",
				logger.String("id", img.ID), logger.Int("size", len(data)))
			continue
		}
		if _, err := s.makeRoom(ctx, len(data)); err != nil {
			return stored, err
		}
		if err := s.kv.Set(ctx, key(img.ID), data); err != nil {
			return stored, fmt.Errorf("store image %q: %w", img.ID, err)
		}
		stored++
	}

	if stored > 0 {
		s.publish("import", stored)
	}
	return stored, nil
}

func (s *Store) publish(action string, data any) {
	if s.bus != nil {
		s.bus.Publish(notify.Event{Type: "images", Action: action, Data: data})
	}
}
