// Package draft holds the in-memory state of one invoice being edited:
// the ordered line items, the derived totals, and the header fields.
// Nothing here talks to the network; persistence happens only when the
// editor controller submits the draft.
package draft

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ModeNew  = "new"  // no server record yet
	ModeEdit = "edit" // loaded from the server, carries UpdatedOn
)

// Problems maps a field name to a user-facing validation message.
type Problems map[string]string

// Invoice is the draft aggregate. InvoiceID and UpdatedOn exist only
// once the server has the record; UpdatedOn is the opaque concurrency
// token and is forwarded verbatim on update, never parsed.
type Invoice struct {
	Mode         string
	InvoiceID    string
	InvoiceNo    string
	InvoiceDate  time.Time
	CustomerName string
	Notes        string
	UpdatedOn    *string

	Lines  *Lines
	Totals Totals

	dirty bool
}

// New returns a fresh draft with one blank line and the suggested next
// invoice number.
func New(suggestedNo string) *Invoice {
	return &Invoice{
		Mode:        ModeNew,
		InvoiceNo:   suggestedNo,
		InvoiceDate: time.Now(),
		Lines:       NewLines(),
		Totals:      NewTotals(),
	}
}

// Loaded builds an edit-mode draft from a record fetched off the
// server. Line amounts and totals are recomputed locally; the stored tax
// percent is taken as the authoritative tax input.
func Loaded(invoiceID, invoiceNo string, date time.Time, customerName, notes string, updatedOn *string, rows []LineItem, taxPercent decimal.Decimal) *Invoice {
	d := &Invoice{
		Mode:         ModeEdit,
		InvoiceID:    invoiceID,
		InvoiceNo:    invoiceNo,
		InvoiceDate:  date,
		CustomerName: customerName,
		Notes:        notes,
		UpdatedOn:    updatedOn,
		Lines:        LinesFrom(rows),
		Totals:       NewTotals(),
	}
	d.Totals.SubTotal = d.Lines.SubTotal()
	d.Totals.SetTaxPercent(taxPercent)
	return d
}

// Dirty reports whether the user changed anything since load. Edit-mode
// submits are gated on this.
func (d *Invoice) Dirty() bool { return d.dirty }

// MarkClean resets the change flag, done after a successful save.
func (d *Invoice) MarkClean() { d.dirty = false }

func (d *Invoice) touch() {
	d.dirty = true
	d.Totals.Recalc(d.Lines.SubTotal())
}

// Header edits.

func (d *Invoice) SetInvoiceNo(no string)      { d.InvoiceNo = strings.TrimSpace(no); d.dirty = true }
func (d *Invoice) SetInvoiceDate(t time.Time)  { d.InvoiceDate = t; d.dirty = true }
func (d *Invoice) SetCustomerName(name string) { d.CustomerName = name; d.dirty = true }
func (d *Invoice) SetNotes(notes string)       { d.Notes = notes; d.dirty = true }

// Tax edits route through the reconciler so the counterpart field stays
// consistent.

func (d *Invoice) SetTaxPercent(pct decimal.Decimal) {
	d.Totals.SubTotal = d.Lines.SubTotal()
	d.Totals.SetTaxPercent(pct)
	d.dirty = true
}

func (d *Invoice) SetTaxAmount(amt decimal.Decimal) {
	d.Totals.SubTotal = d.Lines.SubTotal()
	d.Totals.SetTaxAmount(amt)
	d.dirty = true
}

// Line edits. Each one recomputes the totals synchronously; there is no
// gap between an edit and its derived values.

func (d *Invoice) AddRow() LineItem {
	row := d.Lines.AddRow()
	d.touch()
	return row
}

func (d *Invoice) CopyRow(id int) (LineItem, error) {
	row, err := d.Lines.CopyRow(id)
	if err != nil {
		return LineItem{}, err
	}
	d.touch()
	return row, nil
}

func (d *Invoice) DeleteRow(id int) error {
	if err := d.Lines.DeleteRow(id); err != nil {
		return err
	}
	d.touch()
	return nil
}

func (d *Invoice) SetQuantity(id int, qty decimal.Decimal) error {
	return d.lineEdit(d.Lines.SetQuantity(id, qty))
}

func (d *Invoice) SetRate(id int, rate decimal.Decimal) error {
	return d.lineEdit(d.Lines.SetRate(id, rate))
}

func (d *Invoice) SetDiscountPct(id int, pct decimal.Decimal) error {
	return d.lineEdit(d.Lines.SetDiscountPct(id, pct))
}

func (d *Invoice) SetDescription(id int, desc string) error {
	return d.lineEdit(d.Lines.SetDescription(id, desc))
}

func (d *Invoice) ApplyCatalogItem(id int, it CatalogItem) error {
	return d.lineEdit(d.Lines.ApplyCatalogItem(id, it))
}

func (d *Invoice) lineEdit(err error) error {
	if err != nil {
		return err
	}
	d.touch()
	return nil
}

// Validate runs the local submit gate: required header fields and at
// least one billable line. Edit mode additionally requires an observed
// change since load. An empty result means the draft may be submitted.
func (d *Invoice) Validate() Problems {
	p := Problems{}
	if strings.TrimSpace(d.InvoiceNo) == "" {
		p["invoiceNo"] = "invoice number is required"
	}
	if d.InvoiceDate.IsZero() {
		p["invoiceDate"] = "invoice date is required"
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		p["customerName"] = "customer name is required"
	}
	if !d.Lines.HasValidLine() {
		p["lineItems"] = "at least one complete line item is required"
	}
	if d.Mode == ModeEdit && !d.dirty {
		p["form"] = "nothing changed"
	}
	return p
}
