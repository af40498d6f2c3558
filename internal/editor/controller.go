// Package editor orchestrates one open invoice editor: load, validate,
// submit, and conflict recovery. All transitions happen on the caller's
// goroutine; network calls are the only suspension points.
package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/draft"
)

const (
	StateIdle       = "idle"
	StateLoading    = "loading"
	StateEditing    = "editing"
	StateSubmitting = "submitting"
	StateConflict   = "conflict"
	StateClosed     = "closed"
)

var (
	// ErrValidation: the local submit gate failed; Problems() has the
	// field-level detail. No network call was made.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate: the server rejected an identifier collision. The
	// user corrects the value and resubmits; no reload needed.
	ErrDuplicate = errors.New("duplicate identifier")
	// ErrConflict: someone else saved this invoice since it was loaded.
	// The draft has been re-fetched; unsaved edits are gone.
	ErrConflict = errors.New("invoice was modified by someone else")
	// ErrTransient: network or server trouble; the user may simply retry.
	ErrTransient = errors.New("request failed")
	// ErrBusy: a submit is already in flight or no editor is open.
	ErrBusy = errors.New("editor busy")
)

const dateLayout = "2006-01-02"

// InvoiceService is the slice of the backend the editor needs.
// *api.Client satisfies it.
type InvoiceService interface {
	NextInvoiceNo(ctx context.Context) (string, error)
	GetInvoice(ctx context.Context, id string) (*api.Invoice, error)
	CreateInvoice(ctx context.Context, in api.Invoice) (*api.Invoice, error)
	UpdateInvoice(ctx context.Context, in api.Invoice) (*api.Invoice, error)
}

// Controller drives one editor instance. It owns the draft exclusively;
// a new Open discards whatever came before.
type Controller struct {
	svc InvoiceService

	state    string
	draft    *draft.Invoice
	problems draft.Problems

	// epoch guards against stale responses: bumped on every open and
	// close, and any network result observed under an older epoch is
	// dropped without touching state.
	epoch int

	conflictNotice bool
}

func NewController(svc InvoiceService) *Controller {
	return &Controller{svc: svc, state: StateIdle}
}

func (c *Controller) State() string            { return c.state }
func (c *Controller) Draft() *draft.Invoice    { return c.draft }
func (c *Controller) Problems() draft.Problems { return c.problems }

// ConflictNotice reports whether the current draft was force-reloaded
// after a concurrency conflict. Cleared on the next successful save.
func (c *Controller) ConflictNotice() bool { return c.conflictNotice }

// OpenNew starts a fresh draft seeded with the server's suggested
// invoice number. The suggestion is best effort: if it cannot be
// fetched the editor still opens with the number left blank.
func (c *Controller) OpenNew(ctx context.Context) error {
	c.reset()
	no, err := c.svc.NextInvoiceNo(ctx)
	if err != nil {
		no = ""
	}
	c.draft = draft.New(no)
	c.state = StateEditing
	return nil
}

// OpenEdit loads an existing invoice into the editor.
func (c *Controller) OpenEdit(ctx context.Context, invoiceID string) error {
	c.reset()
	c.state = StateLoading
	epoch := c.epoch

	inv, err := c.svc.GetInvoice(ctx, invoiceID)
	if epoch != c.epoch {
		return nil // editor moved on while the fetch was out
	}
	if err != nil {
		c.state = StateIdle
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	c.adopt(inv)
	c.state = StateEditing
	return nil
}

// Close discards the draft without persisting anything. Responses of
// requests still in flight are dropped by the epoch guard.
func (c *Controller) Close() {
	c.epoch++
	c.state = StateClosed
	c.draft = nil
	c.problems = nil
	c.conflictNotice = false
}

// Submit runs the validity gate and sends the draft. On success a new
// draft closes the editor and an edited draft adopts the fresh
// concurrency token. Errors are always one of the exported categories.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state != StateEditing || c.draft == nil {
		return ErrBusy
	}

	c.problems = c.draft.Validate()
	if len(c.problems) > 0 {
		return ErrValidation
	}

	c.state = StateSubmitting
	epoch := c.epoch
	mode := c.draft.Mode
	payload := c.toWire()

	var (
		saved *api.Invoice
		err   error
	)
	if mode == draft.ModeNew {
		saved, err = c.svc.CreateInvoice(ctx, payload)
	} else {
		saved, err = c.svc.UpdateInvoice(ctx, payload)
	}

	if epoch != c.epoch {
		return nil // editor was closed or reopened; drop the result
	}

	switch {
	case err == nil:
		if mode == draft.ModeNew {
			c.Close()
			return nil
		}
		c.draft.InvoiceID = saved.InvoiceID
		c.draft.UpdatedOn = saved.UpdatedOn
		c.draft.MarkClean()
		c.conflictNotice = false
		c.state = StateEditing
		return nil

	case api.IsConflict(err):
		return c.recoverConflict(ctx, epoch)

	case api.IsDuplicate(err):
		c.state = StateEditing
		return fmt.Errorf("%w: %v", ErrDuplicate, err)

	default:
		c.state = StateEditing
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
}

// recoverConflict force-reloads the record, discarding local edits, and
// leaves the editor editing the server's current version with the
// conflict banner up.
func (c *Controller) recoverConflict(ctx context.Context, epoch int) error {
	c.state = StateConflict
	invoiceID := c.draft.InvoiceID

	inv, err := c.svc.GetInvoice(ctx, invoiceID)
	if epoch != c.epoch {
		return nil
	}
	if err != nil {
		// stay in conflict; the caller can retry the reload via OpenEdit
		return fmt.Errorf("%w: reload failed: %v", ErrConflict, err)
	}
	c.adopt(inv)
	c.conflictNotice = true
	c.state = StateEditing
	return ErrConflict
}

func (c *Controller) reset() {
	c.epoch++
	c.draft = nil
	c.problems = nil
	c.conflictNotice = false
	c.state = StateIdle
}

func (c *Controller) adopt(inv *api.Invoice) {
	date, err := time.Parse(dateLayout, inv.InvoiceDate)
	if err != nil {
		date = time.Now()
	}
	rows := make([]draft.LineItem, 0, len(inv.LineItems))
	for _, ln := range inv.LineItems {
		rows = append(rows, draft.LineItem{
			ItemID:      ln.ItemID,
			ItemName:    ln.ItemName,
			Description: ln.Description,
			Quantity:    ln.Quantity,
			Rate:        ln.Rate,
			DiscountPct: ln.DiscountPct,
		})
	}
	c.draft = draft.Loaded(inv.InvoiceID, inv.InvoiceNo, date, inv.CustomerName, inv.Notes, inv.UpdatedOn, rows, inv.TaxPercent)
}

// toWire serializes the whole draft, incomplete rows included; the
// server stores what the user sees.
func (c *Controller) toWire() api.Invoice {
	d := c.draft
	lines := make([]api.InvoiceLine, 0, d.Lines.Len())
	for _, r := range d.Lines.Rows() {
		lines = append(lines, api.InvoiceLine{
			ItemID:      r.ItemID,
			ItemName:    r.ItemName,
			Description: r.Description,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			DiscountPct: r.DiscountPct,
			Amount:      r.Amount,
		})
	}
	return api.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNo:     d.InvoiceNo,
		InvoiceDate:   d.InvoiceDate.Format(dateLayout),
		CustomerName:  d.CustomerName,
		Notes:         d.Notes,
		SubTotal:      d.Totals.SubTotal,
		TaxPercent:    d.Totals.TaxPercent,
		TaxAmount:     d.Totals.TaxAmount,
		InvoiceAmount: d.Totals.InvoiceAmount,
		UpdatedOn:     d.UpdatedOn,
		LineItems:     lines,
	}
}
