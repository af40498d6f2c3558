// Package catalog adapts the item API for the line-item picker. The
// list is fetched once per editor session and treated as a read-mostly
// cache; items created from the picker are merged in immediately so the
// picker shows them without another round trip.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/draft"
)

var ErrItemNotFound = errors.New("catalog item not found")

// ItemService is the slice of the backend the cache needs. *api.Client
// satisfies it.
type ItemService interface {
	ListItems(ctx context.Context) ([]api.Item, error)
	CreateItem(ctx context.Context, in api.ItemInput, picture api.ImageChange) (*api.Item, error)
}

type Cache struct {
	svc   ItemService
	items map[string]api.Item
}

func NewCache(svc ItemService) *Cache {
	return &Cache{svc: svc, items: map[string]api.Item{}}
}

// Refresh replaces the cache with the server's list.
func (c *Cache) Refresh(ctx context.Context) error {
	items, err := c.svc.ListItems(ctx)
	if err != nil {
		return err
	}
	c.items = make(map[string]api.Item, len(items))
	for _, it := range items {
		c.items[it.ID] = it
	}
	return nil
}

// Create makes a new catalog item server-side and merges it into the
// local list without waiting for a full re-fetch.
func (c *Cache) Create(ctx context.Context, in api.ItemInput, picture api.ImageChange) (*api.Item, error) {
	it, err := c.svc.CreateItem(ctx, in, picture)
	if err != nil {
		return nil, err
	}
	c.MergeCreated(*it)
	return it, nil
}

// MergeCreated inserts or overwrites one item in the local list.
func (c *Cache) MergeCreated(it api.Item) {
	c.items[it.ID] = it
}

// Get returns one cached item by id.
func (c *Cache) Get(id string) (api.Item, error) {
	it, ok := c.items[id]
	if !ok {
		return api.Item{}, ErrItemNotFound
	}
	return it, nil
}

// Items returns the cached list sorted by name for the picker.
func (c *Cache) Items() []api.Item {
	out := make([]api.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Pick resolves a cached item into the shape the line-item store
// applies onto a row.
func (c *Cache) Pick(id string) (draft.CatalogItem, error) {
	it, err := c.Get(id)
	if err != nil {
		return draft.CatalogItem{}, err
	}
	return draft.CatalogItem{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Rate:        it.Rate,
		DiscountPct: it.DiscountPct,
	}, nil
}
