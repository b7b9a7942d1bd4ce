// Package netx holds plain HTTP helpers that do not go through the cocreate
// API, such as fetching presigned object storage links.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchPresignedURL downloads the object behind a presigned GET link.
func FetchPresignedURL(ctx context.Context, c *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return io.ReadAll(resp.Body)
}
