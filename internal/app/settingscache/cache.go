// Package settingscache keeps an in-memory copy of the site settings
// singleton, merged field-by-field over built-in defaults.
//
// The stored document may be partially populated (it is written with
// merge-patches and may predate newer fields). For each field the stored
// value wins when present and the default fills the gap, so readers always
// observe a fully-populated settings value.
package settingscache

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// ErrClosed is returned by Update after Close.
var ErrClosed = errors.New("settingscache: cache closed")

// Store is the persistence surface the cache needs. *sitesettings.Store
// satisfies it.
type Store interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, patch sitesettings.Partial) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Cache is a read-through cache of the settings singleton. Until the stored
// document is first observed, readers see the defaults.
type Cache struct {
	store    Store
	defaults models.SiteSettings
	logger   *zap.Logger

	mu      sync.RWMutex
	current models.SiteSettings
	subs    map[int]chan models.SiteSettings
	nextSub int
	closed  bool
}

// New creates a cache seeded with defaults. Call Refresh or Run to load the
// stored document.
func New(store Store, defaults models.SiteSettings, logger *zap.Logger) *Cache {
	return &Cache{
		store:    store,
		defaults: defaults,
		logger:   logger,
		current:  defaults,
		subs:     make(map[int]chan models.SiteSettings),
	}
}

// merge overlays stored onto defaults field by field. A stored field wins
// when non-empty; empty fields fall back to the default.
func merge(defaults models.SiteSettings, stored models.SiteSettings) models.SiteSettings {
	out := defaults
	out.ID = stored.ID
	out.UpdatedAt = stored.UpdatedAt
	if stored.SchoolName != "" {
		out.SchoolName = stored.SchoolName
	}
	if stored.ShortName != "" {
		out.ShortName = stored.ShortName
	}
	if stored.Logo != "" {
		out.Logo = stored.Logo
	}
	if stored.Email != "" {
		out.Email = stored.Email
	}
	if stored.Phone != "" {
		out.Phone = stored.Phone
	}
	if stored.Address != "" {
		out.Address = stored.Address
	}
	if stored.Socials.Facebook != "" {
		out.Socials.Facebook = stored.Socials.Facebook
	}
	if stored.Socials.Instagram != "" {
		out.Socials.Instagram = stored.Socials.Instagram
	}
	if stored.Socials.YouTube != "" {
		out.Socials.YouTube = stored.Socials.YouTube
	}
	return out
}

// Refresh re-reads the stored document and replaces the cached value. A
// missing document is not an error; readers keep seeing the defaults.
func (c *Cache) Refresh(ctx context.Context) error {
	stored, err := c.store.Get(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.set(c.defaults)
			return nil
		}
		return err
	}
	c.set(merge(c.defaults, *stored))
	return nil
}

// Run loads the settings and then re-reads them on every change notification
// until ctx is cancelled. Returns nil on cancellation or when the change
// stream ends.
func (c *Cache) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	changes, err := c.store.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if c.logger != nil {
					c.logger.Info("settings change stream ended")
				}
				return nil
			}
			if err := c.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if c.logger != nil {
					c.logger.Warn("settings refresh failed", zap.Error(err))
				}
			}
		}
	}
}

// Current returns the cached settings. Always fully populated.
func (c *Cache) Current() models.SiteSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Update merge-patches the stored document and refreshes the cache, so
// callers observe their own write without waiting for the change stream.
func (c *Cache) Update(ctx context.Context, patch sitesettings.Partial) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if patch.IsEmpty() {
		return nil
	}
	if err := c.store.Update(ctx, patch); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Subscribe returns a channel that receives the merged settings after each
// change, and a cancel function. Slow subscribers only ever see the latest
// value.
func (c *Cache) Subscribe() (<-chan models.SiteSettings, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan models.SiteSettings, 1)
	id := c.nextSub
	c.nextSub++
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close drops all subscribers. Update returns ErrClosed afterwards.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Cache) set(next models.SiteSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = next
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
