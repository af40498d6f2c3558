package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// CreateItem creates a catalog item, optionally with a picture.
func (c *Client) CreateItem(ctx context.Context, in ItemInput, picture ImageChange) (*Item, error) {
	var out Item
	if err := c.doMultipart(ctx, http.MethodPost, "/api/items", in, picture, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, in ItemInput, picture ImageChange) (*Item, error) {
	var out Item
	path := "/api/items/" + url.PathEscape(id)
	if err := c.doMultipart(ctx, http.MethodPut, path, in, picture, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
}

// ItemThumbnail fetches an item's picture. Best effort: any failure
// yields nil bytes and no error, the caller shows a placeholder.
func (c *Client) ItemThumbnail(ctx context.Context, id string) []byte {
	path := fmt.Sprintf("%s/api/items/%s/picture", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil
	}
	return data
}
