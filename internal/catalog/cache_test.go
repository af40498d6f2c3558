package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

type fakeItemService struct {
	items []api.Item
	seq   int
}

func (f *fakeItemService) ListItems(ctx context.Context) ([]api.Item, error) {
	out := make([]api.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeItemService) CreateItem(ctx context.Context, in api.ItemInput, _ api.ImageChange) (*api.Item, error) {
	f.seq++
	it := api.Item{
		ID:          fmt.Sprintf("itm-%d", f.seq),
		Name:        in.Name,
		Description: in.Description,
		Rate:        in.Rate,
		DiscountPct: in.DiscountPct,
	}
	f.items = append(f.items, it)
	return &it, nil
}

func TestCache_CreateMergesWithoutRefetch(t *testing.T) {
	svc := &fakeItemService{items: []api.Item{
		{ID: "itm-a", Name: "Widget", Rate: decimal.NewFromInt(10)},
	}}
	c := NewCache(svc)
	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.Items(), 1)

	created, err := c.Create(context.Background(), api.ItemInput{Name: "Gadget", Rate: decimal.NewFromInt(25)}, api.KeepImage())
	require.NoError(t, err)

	// visible immediately, no Refresh in between
	got, err := c.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Gadget", got.Name)
	require.Len(t, c.Items(), 2)

	// a later full refresh does not duplicate it
	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.Items(), 2)
}

func TestCache_ItemsSortedByName(t *testing.T) {
	svc := &fakeItemService{items: []api.Item{
		{ID: "1", Name: "zebra print"},
		{ID: "2", Name: "Anvil"},
		{ID: "3", Name: "mallet"},
	}}
	c := NewCache(svc)
	require.NoError(t, c.Refresh(context.Background()))

	items := c.Items()
	require.Equal(t, []string{"Anvil", "mallet", "zebra print"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestCache_PickResolvesDefaults(t *testing.T) {
	svc := &fakeItemService{items: []api.Item{
		{ID: "itm-a", Name: "Widget", Description: "A widget", Rate: decimal.NewFromInt(10), DiscountPct: decimal.NewFromInt(5)},
	}}
	c := NewCache(svc)
	require.NoError(t, c.Refresh(context.Background()))

	pick, err := c.Pick("itm-a")
	require.NoError(t, err)
	require.Equal(t, "Widget", pick.Name)
	require.True(t, pick.Rate.Equal(decimal.NewFromInt(10)))

	_, err = c.Pick("missing")
	require.ErrorIs(t, err, ErrItemNotFound)
}
