// Package export renders invoices for the outside world: an xlsx
// workbook of the invoice list and a printable PDF of one invoice.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

const sheetName = "Invoices"

var excelHeader = []string{"Invoice No", "Date", "Customer", "Sub Total", "Tax", "Total"}

// ExcelInvoiceList builds an xlsx workbook with one row per invoice.
func ExcelInvoiceList(invoices []api.InvoiceSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, h := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, inv := range invoices {
		row := i + 2
		values := []any{
			inv.InvoiceNo,
			inv.InvoiceDate,
			inv.CustomerName,
			inv.SubTotal.StringFixed(2),
			inv.TaxAmount.StringFixed(2),
			inv.InvoiceAmount.StringFixed(2),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "F", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
