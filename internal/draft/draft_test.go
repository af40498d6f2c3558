package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDraft_EndToEndTotals(t *testing.T) {
	d := New("INV-0001")

	a := d.Lines.Rows()[0].ID
	require.NoError(t, d.ApplyCatalogItem(a, CatalogItem{ID: "itm-a", Name: "Line A", Rate: dec("50")}))
	require.NoError(t, d.SetQuantity(a, dec("2")))

	b := d.AddRow()
	require.NoError(t, d.ApplyCatalogItem(b.ID, CatalogItem{ID: "itm-b", Name: "Line B", Rate: dec("30"), DiscountPct: dec("10")}))

	require.True(t, d.Totals.SubTotal.Equal(dec("127")), "subTotal = %s", d.Totals.SubTotal)

	d.SetTaxPercent(dec("5"))
	require.True(t, d.Totals.TaxAmount.Equal(dec("6.35")))
	require.True(t, d.Totals.InvoiceAmount.Equal(dec("133.35")))
}

func TestDraft_ValidateGate(t *testing.T) {
	d := New("INV-0001")
	d.SetInvoiceDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	p := d.Validate()
	require.Contains(t, p, "customerName")
	require.Contains(t, p, "lineItems")
	require.NotContains(t, p, "invoiceNo")

	d.SetCustomerName("Acme Traders")
	id := d.Lines.Rows()[0].ID
	require.NoError(t, d.ApplyCatalogItem(id, CatalogItem{ID: "itm-1", Name: "Widget", Rate: dec("10")}))

	require.Empty(t, d.Validate())

	d.SetInvoiceNo("  ")
	require.Contains(t, d.Validate(), "invoiceNo")
}

func TestDraft_EditModeRequiresAChange(t *testing.T) {
	tok := "2026-02-01T10:00:00Z"
	d := Loaded("inv-9", "INV-0009", time.Now(), "Acme Traders", "", &tok, []LineItem{
		{ItemID: "itm-1", ItemName: "Widget", Quantity: dec("1"), Rate: dec("10")},
	}, dec("5"))

	require.Contains(t, d.Validate(), "form", "unchanged edit draft must not submit")

	require.NoError(t, d.SetQuantity(d.Lines.Rows()[0].ID, dec("2")))
	require.Empty(t, d.Validate())

	d.MarkClean()
	require.Contains(t, d.Validate(), "form")
}

func TestDraft_LoadedRecomputesDerivedState(t *testing.T) {
	tok := "tok-1"
	d := Loaded("inv-3", "INV-0003", time.Now(), "Acme", "", &tok, []LineItem{
		{ItemID: "itm-1", ItemName: "A", Quantity: dec("2"), Rate: dec("50")},
		{ItemID: "itm-2", ItemName: "B", Quantity: dec("1"), Rate: dec("30"), DiscountPct: dec("10")},
	}, dec("5"))

	require.Equal(t, ModeEdit, d.Mode)
	require.False(t, d.Dirty())
	require.True(t, d.Totals.SubTotal.Equal(dec("127")))
	require.True(t, d.Totals.TaxAmount.Equal(dec("6.35")))
	require.Equal(t, 2, d.Lines.Len())
	require.NotNil(t, d.UpdatedOn)
}

func TestDraft_LoadedWithNoLinesGetsABlankRow(t *testing.T) {
	tok := "tok-1"
	d := Loaded("inv-4", "INV-0004", time.Now(), "Acme", "", &tok, nil, dec("0"))
	require.Equal(t, 1, d.Lines.Len())
}

func TestDraft_DeleteLastRowSurfacesWarning(t *testing.T) {
	d := New("INV-0001")
	err := d.DeleteRow(d.Lines.Rows()[0].ID)
	require.ErrorIs(t, err, ErrLastRow)
	require.Equal(t, 1, d.Lines.Len())
}
