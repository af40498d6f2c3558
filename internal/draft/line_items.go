package draft

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/money"
)

var (
	ErrRowNotFound = errors.New("line item not found")
	ErrLastRow     = errors.New("an invoice needs at least one line item")
)

// LineItem is one editable row of an invoice draft. ID is local to the
// draft (a counter, not a server key) and only has to be unique within
// one open editor session. Amount is derived; callers never set it.
type LineItem struct {
	ID          int             `json:"id"`
	ItemID      string          `json:"itemId"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Amount      decimal.Decimal `json:"amount"`
}

// CatalogItem is the slice of a catalog entry the picker applies onto a
// row. Rate and discount are the catalog defaults.
type CatalogItem struct {
	ID          string
	Name        string
	Description string
	Rate        decimal.Decimal
	DiscountPct decimal.Decimal
}

// lineAmount computes the derived amount for one row:
// round2(quantity * rate * (1 - discountPct/100)).
func lineAmount(qty, rate, discountPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPct.Div(money.Hundred))
	return money.Round2(qty.Mul(rate).Mul(factor))
}

// Lines is the ordered line-item store of one draft. Order is display
// order; SelectedID tracks the row the editor currently focuses.
type Lines struct {
	rows       []LineItem
	nextID     int
	SelectedID int
}

// NewLines returns a store seeded with one blank row, the way a fresh
// editor opens.
func NewLines() *Lines {
	l := &Lines{nextID: 1}
	l.AddRow()
	return l
}

// LinesFrom builds a store from rows loaded off the wire (edit mode).
// Local ids are reassigned; server row identity is not reused.
func LinesFrom(rows []LineItem) *Lines {
	l := &Lines{nextID: 1}
	if len(rows) == 0 {
		l.AddRow()
		return l
	}
	for _, r := range rows {
		r.ID = l.nextID
		l.nextID++
		r.DiscountPct = money.ClampPct(r.DiscountPct)
		r.Amount = lineAmount(r.Quantity, r.Rate, r.DiscountPct)
		l.rows = append(l.rows, r)
	}
	l.SelectedID = l.rows[0].ID
	return l
}

// Rows returns a copy of the current rows in display order.
func (l *Lines) Rows() []LineItem {
	out := make([]LineItem, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *Lines) Len() int { return len(l.rows) }

// Get returns the row with the given id.
func (l *Lines) Get(id int) (LineItem, error) {
	i := l.index(id)
	if i < 0 {
		return LineItem{}, ErrRowNotFound
	}
	return l.rows[i], nil
}

// AddRow appends a blank row (quantity 1, rate 0, discount 0) and makes
// it the selected row.
func (l *Lines) AddRow() LineItem {
	row := LineItem{
		ID:          l.nextID,
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.Zero,
		DiscountPct: decimal.Zero,
		Amount:      decimal.Zero,
	}
	l.nextID++
	l.rows = append(l.rows, row)
	l.SelectedID = row.ID
	return row
}

// CopyRow duplicates the row at id and inserts the copy immediately
// after it. The copy gets a fresh id; every other field is carried over.
func (l *Lines) CopyRow(id int) (LineItem, error) {
	i := l.index(id)
	if i < 0 {
		return LineItem{}, ErrRowNotFound
	}
	dup := l.rows[i]
	dup.ID = l.nextID
	l.nextID++

	l.rows = append(l.rows, LineItem{})
	copy(l.rows[i+2:], l.rows[i+1:])
	l.rows[i+1] = dup
	l.SelectedID = dup.ID
	return dup, nil
}

// DeleteRow removes the row at id. Removing the last remaining row is
// refused: the editor always shows at least one line, valid or not.
func (l *Lines) DeleteRow(id int) error {
	i := l.index(id)
	if i < 0 {
		return ErrRowNotFound
	}
	if len(l.rows) == 1 {
		return ErrLastRow
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	if l.SelectedID == id {
		j := i
		if j >= len(l.rows) {
			j = len(l.rows) - 1
		}
		l.SelectedID = l.rows[j].ID
	}
	return nil
}

// SetQuantity updates a row's quantity and recomputes its amount.
func (l *Lines) SetQuantity(id int, qty decimal.Decimal) error {
	return l.mutate(id, func(r *LineItem) {
		r.Quantity = qty
		r.Amount = lineAmount(r.Quantity, r.Rate, r.DiscountPct)
	})
}

// SetRate updates a row's unit rate (clamped >= 0) and recomputes its amount.
func (l *Lines) SetRate(id int, rate decimal.Decimal) error {
	return l.mutate(id, func(r *LineItem) {
		r.Rate = money.ClampNonNeg(rate)
		r.Amount = lineAmount(r.Quantity, r.Rate, r.DiscountPct)
	})
}

// SetDiscountPct updates a row's discount, clamped into [0,100], and
// recomputes its amount.
func (l *Lines) SetDiscountPct(id int, pct decimal.Decimal) error {
	return l.mutate(id, func(r *LineItem) {
		r.DiscountPct = money.ClampPct(pct)
		r.Amount = lineAmount(r.Quantity, r.Rate, r.DiscountPct)
	})
}

// SetDescription updates a row's free-text description. No amount change.
func (l *Lines) SetDescription(id int, desc string) error {
	return l.mutate(id, func(r *LineItem) { r.Description = desc })
}

// ApplyCatalogItem overwrites the row's item fields from a picker
// selection. Quantity the user already typed is preserved; the amount is
// recomputed from the catalog rate and discount.
func (l *Lines) ApplyCatalogItem(id int, it CatalogItem) error {
	return l.mutate(id, func(r *LineItem) {
		r.ItemID = it.ID
		r.ItemName = it.Name
		r.Description = it.Description
		r.Rate = money.ClampNonNeg(it.Rate)
		r.DiscountPct = money.ClampPct(it.DiscountPct)
		r.Amount = lineAmount(r.Quantity, r.Rate, r.DiscountPct)
	})
}

// SubTotal is the exact sum of row amounts. Each row is already rounded
// to 2 decimals; the sum is not re-rounded.
func (l *Lines) SubTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range l.rows {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// HasValidLine reports whether at least one row is complete enough to
// bill: an item picked, a name, positive quantity, non-negative rate.
// Incomplete rows don't block submission; they ride along as-is.
func (l *Lines) HasValidLine() bool {
	for _, r := range l.rows {
		if r.ItemID != "" && r.ItemName != "" && r.Quantity.IsPositive() && !r.Rate.IsNegative() {
			return true
		}
	}
	return false
}

func (l *Lines) index(id int) int {
	for i := range l.rows {
		if l.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Lines) mutate(id int, fn func(*LineItem)) error {
	i := l.index(id)
	if i < 0 {
		return ErrRowNotFound
	}
	fn(&l.rows[i])
	return nil
}
