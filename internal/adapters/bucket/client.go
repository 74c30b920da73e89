// Package bucket uploads operator assets (logos, project photos) to an
// object-storage HTTP API and hands back public URLs.
package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/mvalencia464/onboard/internal/adapters/observability"
)

type Client struct {
	base   string
	bucket string
	token  string
	hc     *http.Client
}

func New(base, bucketName, token string) (*Client, error) {
	if base == "" || bucketName == "" {
		return nil, fmt.Errorf("storage base URL and bucket are required")
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		bucket: bucketName,
		token:  token,
		hc:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Upload stores one object and returns its public URL. Existing objects with
// the same name are replaced.
func (c *Client) Upload(ctx context.Context, name string, content []byte) (string, error) {
	object := url.PathEscape(name)
	u := fmt.Sprintf("%s/object/%s/%s", c.base, c.bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", contentType(name))
	req.Header.Set("x-upsert", "true")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("bucket", "upload", 0, time.Since(start))
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("bucket", "upload", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("bucket: upload %s: status %d: %s", name, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return fmt.Sprintf("%s/object/public/%s/%s", c.base, c.bucket, object), nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
