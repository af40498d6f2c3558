package draft

import (
	"github.com/shopspring/decimal"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/money"
)

// TaxMode says which tax field the user edited last. The other field is
// always derived from it, so there is never a call-order ambiguity.
type TaxMode int

const (
	TaxByPercent TaxMode = iota // taxAmount derived from percent
	TaxByAmount                 // taxPercent derived from amount
)

// Totals keeps subTotal, taxPercent, taxAmount and invoiceAmount
// mutually consistent. Mode tracks the authoritative tax input.
type Totals struct {
	Mode          TaxMode
	SubTotal      decimal.Decimal
	TaxPercent    decimal.Decimal
	TaxAmount     decimal.Decimal
	InvoiceAmount decimal.Decimal
}

// NewTotals returns zeroed totals in percent mode, the state of a fresh
// draft.
func NewTotals() Totals {
	return Totals{Mode: TaxByPercent}
}

// SetTaxPercent records a percent edit. The percent is clamped into
// [0,100] and the tax amount re-derived; a zero subtotal always yields a
// zero tax amount.
func (t *Totals) SetTaxPercent(pct decimal.Decimal) {
	t.Mode = TaxByPercent
	t.TaxPercent = money.ClampPct(pct)
	if t.SubTotal.IsPositive() {
		t.TaxAmount = money.Round2(t.SubTotal.Mul(t.TaxPercent).Div(money.Hundred))
	} else {
		t.TaxAmount = decimal.Zero
	}
	t.InvoiceAmount = t.SubTotal.Add(t.TaxAmount)
}

// SetTaxAmount records an amount edit. The amount is clamped >= 0 and
// the percent re-derived; a zero subtotal yields percent 0 rather than a
// division artifact.
func (t *Totals) SetTaxAmount(amt decimal.Decimal) {
	t.Mode = TaxByAmount
	t.TaxAmount = money.Round2(money.ClampNonNeg(amt))
	if t.SubTotal.IsPositive() {
		t.TaxPercent = money.Round2(t.TaxAmount.Mul(money.Hundred).Div(t.SubTotal))
	} else {
		t.TaxPercent = decimal.Zero
	}
	t.InvoiceAmount = t.SubTotal.Add(t.TaxAmount)
}

// Recalc absorbs a subtotal change (any line edit). Whichever tax field
// was edited last stays authoritative: percent mode re-derives the
// amount, amount mode keeps the amount and re-derives the percent. When
// the subtotal drops to zero the tax amount is forced to zero.
func (t *Totals) Recalc(subTotal decimal.Decimal) {
	t.SubTotal = subTotal
	if !t.SubTotal.IsPositive() {
		t.TaxAmount = decimal.Zero
		if t.Mode == TaxByAmount {
			t.TaxPercent = decimal.Zero
		}
		t.InvoiceAmount = t.SubTotal
		return
	}
	switch t.Mode {
	case TaxByAmount:
		t.TaxPercent = money.Round2(t.TaxAmount.Mul(money.Hundred).Div(t.SubTotal))
	default:
		t.TaxAmount = money.Round2(t.SubTotal.Mul(t.TaxPercent).Div(money.Hundred))
	}
	t.InvoiceAmount = t.SubTotal.Add(t.TaxAmount)
}
