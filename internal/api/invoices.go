package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListInvoices(ctx context.Context) ([]InvoiceSummary, error) {
	var out struct {
		Invoices []InvoiceSummary `json:"invoices"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out.Invoices, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextInvoiceNo asks the server for the suggested next sequential number.
func (c *Client) NextInvoiceNo(ctx context.Context) (string, error) {
	var out struct {
		InvoiceNo string `json:"invoiceNo"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/invoices/next-number", nil, &out); err != nil {
		return "", err
	}
	return out.InvoiceNo, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in Invoice) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodPost, "/api/invoices", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice sends the full record including the UpdatedOn token the
// client last read. The server rejects it with a version mismatch when
// someone else saved in between.
func (c *Client) UpdateInvoice(ctx context.Context, in Invoice) (*Invoice, error) {
	var out Invoice
	path := "/api/invoices/" + url.PathEscape(in.InvoiceID)
	if err := c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/invoices/"+url.PathEscape(id), nil, nil)
}
