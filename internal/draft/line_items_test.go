package draft

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLines_NewStartsWithOneBlankRow(t *testing.T) {
	l := NewLines()

	require.Equal(t, 1, l.Len())
	row := l.Rows()[0]
	require.True(t, row.Quantity.Equal(dec("1")))
	require.True(t, row.Rate.IsZero())
	require.True(t, row.DiscountPct.IsZero())
	require.True(t, row.Amount.IsZero())
	require.Equal(t, row.ID, l.SelectedID)
}

func TestLines_AmountInvariant(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		rate     string
		discount string
		want     string
	}{
		{"no discount", "2", "50", "0", "100"},
		{"ten percent off", "1", "30", "10", "27"},
		{"zero quantity", "0", "99.99", "5", "0"},
		{"rounds half up on the cent", "3", "33.335", "0", "100.01"},
		{"fractional quantity", "1.5", "10", "0", "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLines()
			id := l.Rows()[0].ID
			require.NoError(t, l.SetQuantity(id, dec(tt.qty)))
			require.NoError(t, l.SetRate(id, dec(tt.rate)))
			require.NoError(t, l.SetDiscountPct(id, dec(tt.discount)))

			row, err := l.Get(id)
			require.NoError(t, err)
			require.True(t, row.Amount.Equal(dec(tt.want)), "amount = %s, want %s", row.Amount, tt.want)
		})
	}
}

func TestLines_DiscountClamped(t *testing.T) {
	l := NewLines()
	id := l.Rows()[0].ID
	require.NoError(t, l.SetQuantity(id, dec("1")))
	require.NoError(t, l.SetRate(id, dec("100")))

	require.NoError(t, l.SetDiscountPct(id, dec("250")))
	row, _ := l.Get(id)
	require.True(t, row.DiscountPct.Equal(dec("100")))
	require.True(t, row.Amount.IsZero())

	require.NoError(t, l.SetDiscountPct(id, dec("-3")))
	row, _ = l.Get(id)
	require.True(t, row.DiscountPct.IsZero())
	require.True(t, row.Amount.Equal(dec("100")))
}

func TestLines_CopyRowInsertsAfterSource(t *testing.T) {
	l := NewLines()
	first := l.Rows()[0].ID
	require.NoError(t, l.SetQuantity(first, dec("2")))
	require.NoError(t, l.SetRate(first, dec("50")))
	second := l.AddRow()

	dup, err := l.CopyRow(first)
	require.NoError(t, err)

	rows := l.Rows()
	require.Len(t, rows, 3)
	require.Equal(t, first, rows[0].ID)
	require.Equal(t, dup.ID, rows[1].ID, "copy sits immediately after its source")
	require.Equal(t, second.ID, rows[2].ID)

	require.NotEqual(t, first, dup.ID)
	require.True(t, rows[1].Quantity.Equal(rows[0].Quantity))
	require.True(t, rows[1].Rate.Equal(rows[0].Rate))
	require.True(t, rows[1].Amount.Equal(rows[0].Amount))
}

func TestLines_CopyRowUnknownID(t *testing.T) {
	l := NewLines()
	_, err := l.CopyRow(999)
	require.ErrorIs(t, err, ErrRowNotFound)
	require.Equal(t, 1, l.Len())
}

func TestLines_DeleteLastRowRefused(t *testing.T) {
	l := NewLines()
	id := l.Rows()[0].ID

	err := l.DeleteRow(id)
	require.ErrorIs(t, err, ErrLastRow)
	require.Equal(t, 1, l.Len())
}

func TestLines_DeleteRow(t *testing.T) {
	l := NewLines()
	first := l.Rows()[0].ID
	second := l.AddRow()

	require.NoError(t, l.DeleteRow(second.ID))
	require.Equal(t, 1, l.Len())
	require.Equal(t, first, l.Rows()[0].ID)
	require.Equal(t, first, l.SelectedID)
}

func TestLines_ApplyCatalogItemKeepsQuantity(t *testing.T) {
	l := NewLines()
	id := l.Rows()[0].ID
	require.NoError(t, l.SetQuantity(id, dec("4")))

	require.NoError(t, l.ApplyCatalogItem(id, CatalogItem{
		ID:          "itm-1",
		Name:        "Consulting",
		Description: "Hourly consulting",
		Rate:        dec("120"),
		DiscountPct: dec("25"),
	}))

	row, _ := l.Get(id)
	require.Equal(t, "itm-1", row.ItemID)
	require.Equal(t, "Consulting", row.ItemName)
	require.True(t, row.Quantity.Equal(dec("4")), "picker must not clobber quantity")
	require.True(t, row.Amount.Equal(dec("360")), "4 * 120 * 0.75")
}

func TestLines_HasValidLine(t *testing.T) {
	l := NewLines()
	id := l.Rows()[0].ID
	require.False(t, l.HasValidLine(), "blank row has no item reference")

	require.NoError(t, l.ApplyCatalogItem(id, CatalogItem{ID: "itm-1", Name: "Widget", Rate: dec("10")}))
	require.True(t, l.HasValidLine())

	require.NoError(t, l.SetQuantity(id, dec("0")))
	require.False(t, l.HasValidLine(), "quantity must be positive")

	require.NoError(t, l.SetQuantity(id, dec("1")))
	l.AddRow() // a second, incomplete row does not spoil the gate
	require.True(t, l.HasValidLine())
}

func TestLines_SubTotalTracksEveryEdit(t *testing.T) {
	l := NewLines()
	a := l.Rows()[0].ID
	require.NoError(t, l.SetQuantity(a, dec("2")))
	require.NoError(t, l.SetRate(a, dec("50")))

	b := l.AddRow()
	require.NoError(t, l.SetRate(b.ID, dec("30")))
	require.NoError(t, l.SetDiscountPct(b.ID, dec("10")))

	require.True(t, l.SubTotal().Equal(dec("127")), "subTotal = %s", l.SubTotal())

	require.NoError(t, l.SetQuantity(a, dec("3")))
	require.True(t, l.SubTotal().Equal(dec("177")))
}
