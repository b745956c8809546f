package store

import (
	"github.com/PolarWolf314/lockbox/internal/cache"
	"github.com/PolarWolf314/lockbox/internal/history"
)

const namesKey = "names"

// Cached wraps a Store with a read cache for names and records.
//
// Every mutation invalidates the names list and the records it touched
// before returning, whether or not it succeeded.
type Cached struct {
	store   *Store
	names   *cache.Cache[[]string]
	records *cache.Cache[*Record]
}

// NewCached returns a caching view of s.
func NewCached(s *Store) *Cached {
	return &Cached{
		store:   s,
		names:   cache.New[[]string](),
		records: cache.New[*Record](),
	}
}

func (c *Cached) Root() string      { return c.store.Root() }
func (c *Cached) Recipient() string { return c.store.Recipient() }

func (c *Cached) ListNames() ([]string, error) {
	names, err := c.names.Get(namesKey, c.store.ListNames)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), names...), nil
}

func (c *Cached) Load(name string) (*Record, error) {
	record, err := c.records.Get(name, func() (*Record, error) {
		return c.store.Load(name)
	})
	if err != nil {
		return nil, err
	}
	return &Record{Name: record.Name, Fields: copyFields(record.Fields)}, nil
}

func (c *Cached) Update(previous *string, name string, fields map[string]string) (*history.Commit, error) {
	defer c.invalidate(previous, name)
	return c.store.Update(previous, name, fields)
}

func (c *Cached) Delete(name string) (*history.Commit, error) {
	defer c.invalidate(nil, name)
	return c.store.Delete(name)
}

func (c *Cached) History(limit int) ([]history.Commit, error) {
	return c.store.History(limit)
}

func (c *Cached) invalidate(previous *string, name string) {
	c.names.Invalidate(namesKey)
	c.records.Invalidate(name)
	if previous != nil {
		c.records.Invalidate(*previous)
	}
}

var (
	_ Secrets = (*Store)(nil)
	_ Secrets = (*Cached)(nil)
)
