package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
)

// Image dispositions for the multipart forms that carry a picture or
// logo. "remove" is an explicit sentinel, distinct from both "no
// change" and "a new file was chosen".
const (
	imageKeep    = "keep"
	imageRemove  = "remove"
	imageReplace = "replace"
)

// ImageChange describes what should happen to a record's image.
// The zero value means keep whatever the server has.
type ImageChange struct {
	action   string
	filename string
	data     []byte
}

func KeepImage() ImageChange   { return ImageChange{action: imageKeep} }
func RemoveImage() ImageChange { return ImageChange{action: imageRemove} }

func ReplaceImage(filename string, data []byte) ImageChange {
	return ImageChange{action: imageReplace, filename: filename, data: data}
}

// multipartPayload encodes a JSON document plus the image disposition
// into one multipart body: a "payload" part, an "imageAction" part, and
// an "image" file part only when replacing.
func multipartPayload(doc any, img ImageChange) (body *bytes.Buffer, contentType string, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("payload", string(raw)); err != nil {
		return nil, "", err
	}

	action := img.action
	if action == "" {
		action = imageKeep
	}
	if err := w.WriteField("imageAction", action); err != nil {
		return nil, "", err
	}
	if action == imageReplace {
		part, err := w.CreateFormFile("image", img.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// doMultipart sends a multipart request and decodes the JSON response.
func (c *Client) doMultipart(ctx context.Context, method, path string, doc any, img ImageChange, out any) error {
	body, contentType, err := multipartPayload(doc, img)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
