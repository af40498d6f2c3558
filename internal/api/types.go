package api

import (
	"github.com/shopspring/decimal"
)

// Wire DTOs for the invoicing backend. Field names follow the JSON the
// server speaks; money travels as decimal strings.

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	UserName    string `json:"userName"`
	Email       string `json:"email"`
}

type Company struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	TaxID    string  `json:"taxId"`
	LogoURL  *string `json:"logoUrl,omitempty"`
	Currency string  `json:"currency"`
}

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	PictureURL  *string         `json:"pictureUrl,omitempty"`
}

type ItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	DiscountPct decimal.Decimal `json:"discountPct"`
}

type InvoiceLine struct {
	ItemID      string          `json:"itemId"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the full record. UpdatedOn is the opaque concurrency token:
// absent until the server owns the record, forwarded verbatim on update,
// never interpreted client-side.
type Invoice struct {
	InvoiceID     string          `json:"invoiceId,omitempty"`
	InvoiceNo     string          `json:"invoiceNo"`
	InvoiceDate   string          `json:"invoiceDate"` // yyyy-mm-dd
	CustomerName  string          `json:"customerName"`
	Notes         string          `json:"notes,omitempty"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	InvoiceAmount decimal.Decimal `json:"invoiceAmount"`
	UpdatedOn     *string         `json:"updatedOn,omitempty"`
	LineItems     []InvoiceLine   `json:"lineItems"`
}

type InvoiceSummary struct {
	InvoiceID     string          `json:"invoiceId"`
	InvoiceNo     string          `json:"invoiceNo"`
	InvoiceDate   string          `json:"invoiceDate"`
	CustomerName  string          `json:"customerName"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	InvoiceAmount decimal.Decimal `json:"invoiceAmount"`
}

type Metrics struct {
	InvoiceCount int             `json:"invoiceCount"`
	ItemCount    int             `json:"itemCount"`
	TotalBilled  decimal.Decimal `json:"totalBilled"`
	AverageBill  decimal.Decimal `json:"averageBill"`
}

type TrendPoint struct {
	Month string          `json:"month"` // yyyy-mm
	Total decimal.Decimal `json:"total"`
}

type TopItem struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Billed   decimal.Decimal `json:"billed"`
}
