package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSummaries() []api.InvoiceSummary {
	return []api.InvoiceSummary{
		{
			InvoiceID:     "inv-1",
			InvoiceNo:     "INV-0001",
			InvoiceDate:   "2026-03-01",
			CustomerName:  "Acme Traders",
			SubTotal:      dec("127"),
			TaxAmount:     dec("6.35"),
			InvoiceAmount: dec("133.35"),
		},
		{
			InvoiceID:     "inv-2",
			InvoiceNo:     "INV-0002",
			InvoiceDate:   "2026-03-05",
			CustomerName:  "Globex",
			SubTotal:      dec("1000"),
			TaxAmount:     dec("100"),
			InvoiceAmount: dec("1100"),
		},
	}
}

func TestExcelInvoiceList_RoundTrips(t *testing.T) {
	data, err := ExcelInvoiceList(sampleSummaries())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return v
	}

	require.Equal(t, "Invoice No", get("A1"))
	require.Equal(t, "INV-0001", get("A2"))
	require.Equal(t, "Acme Traders", get("C2"))
	require.Equal(t, "133.35", get("F2"))
	require.Equal(t, "INV-0002", get("A3"))
	require.Equal(t, "1100.00", get("F3"))
}

func TestExcelInvoiceList_EmptyList(t *testing.T) {
	data, err := ExcelInvoiceList(nil)
	require.NoError(t, err)
	require.NotEmpty(t, data, "header-only workbook still renders")
}

func TestInvoicePDF(t *testing.T) {
	company := api.Company{
		Name:    "Acme Supplies Pvt Ltd",
		Address: "12 Industrial Estate, Pune",
		Email:   "billing@acme.example",
	}
	inv := api.Invoice{
		InvoiceNo:     "INV-0001",
		InvoiceDate:   "2026-03-01",
		CustomerName:  "Globex",
		Notes:         "Payment due within 15 days.",
		SubTotal:      dec("127"),
		TaxPercent:    dec("5"),
		TaxAmount:     dec("6.35"),
		InvoiceAmount: dec("133.35"),
		LineItems: []api.InvoiceLine{
			{ItemName: "Line A", Quantity: dec("2"), Rate: dec("50"), Amount: dec("100")},
			{ItemName: "Line B", Quantity: dec("1"), Rate: dec("30"), DiscountPct: dec("10"), Amount: dec("27")},
		},
	}

	data, err := InvoicePDF(company, inv)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is a PDF document")
	require.Greater(t, len(data), 1000)
}
