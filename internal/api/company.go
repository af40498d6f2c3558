package api

import (
	"context"
	"net/http"
)

func (c *Client) GetCompany(ctx context.Context) (*Company, error) {
	var out Company
	if err := c.do(ctx, http.MethodGet, "/api/company", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompany saves the profile. The logo rides the same three-way
// image disposition as item pictures.
func (c *Client) UpdateCompany(ctx context.Context, in Company, logo ImageChange) (*Company, error) {
	var out Company
	if err := c.doMultipart(ctx, http.MethodPut, "/api/company", in, logo, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
