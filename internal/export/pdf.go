package export

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

// InvoicePDF renders one invoice as a printable A4 document: company
// header, bill-to block, line-item table, totals block.
func InvoicePDF(company api.Company, inv api.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// company header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 8, company.Name)
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 8, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{company.Address, company.Phone, company.Email, company.TaxID} {
		if line != "" {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}
	pdf.Ln(4)

	// invoice meta + bill-to
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(25, 6, "Bill To:")
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(85, 6, inv.CustomerName)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(30, 6, "Invoice No:")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, inv.InvoiceNo, "", 1, "R", false, 0, "")

	pdf.Cell(110, 6, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(30, 6, "Date:")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, inv.InvoiceDate, "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// line-item table
	type col struct {
		title string
		width float64
		align string
	}
	cols := []col{
		{"#", 10, "C"},
		{"Item", 55, "L"},
		{"Qty", 20, "R"},
		{"Rate", 30, "R"},
		{"Disc %", 25, "R"},
		{"Amount", 45, "R"},
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, c := range cols {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, ln := range inv.LineItems {
		name := ln.ItemName
		if name == "" {
			name = ln.Description
		}
		cells := []string{
			strconv.Itoa(i + 1),
			name,
			ln.Quantity.String(),
			ln.Rate.StringFixed(2),
			ln.DiscountPct.StringFixed(2),
			ln.Amount.StringFixed(2),
		}
		for j, c := range cols {
			pdf.CellFormat(c.width, 7, cells[j], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// totals block, right aligned
	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.Cell(110, 7, "")
		pdf.Cell(40, 7, label)
		pdf.CellFormat(0, 7, value, "", 1, "R", false, 0, "")
	}
	total("Sub Total", inv.SubTotal.StringFixed(2), false)
	total("Tax ("+inv.TaxPercent.StringFixed(2)+"%)", inv.TaxAmount.StringFixed(2), false)
	total("Total", inv.InvoiceAmount.StringFixed(2), true)

	if inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Notes")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
