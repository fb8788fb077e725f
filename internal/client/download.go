package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"reelvault/internal/media"
	"reelvault/internal/pkg/utils"
)

// DownloadVideo saves the card's full-resolution rendition into dir and returns
// the written path. The content is not verified.
func (c *Client) DownloadVideo(ctx context.Context, card Card, dir string) (string, error) {
	if card.FullURL == "" {
		return "", ErrNoDelivery
	}
	filename := card.Filename
	if filename == "" {
		filename = utils.DownloadFilename(card.Title, "mp4")
	}
	return c.save(ctx, card.FullURL, filepath.Join(dir, filename))
}

// DownloadImage fetches the image rendered at preset and saves it as
// "<preset name>.png" in dir.
func (c *Client) DownloadImage(ctx context.Context, publicID string, preset media.SocialFormat, dir string) (string, error) {
	if c.delivery == nil {
		return "", ErrNoDelivery
	}
	src, err := c.delivery.ImageURL(publicID, preset)
	if err != nil {
		return "", err
	}
	return c.save(ctx, src, filepath.Join(dir, utils.DownloadFilename(preset.Name, "png")))
}

// LocalPreviewURL points at a file picked for upload, for previewing it
// without the network.
func LocalPreviewURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func (c *Client) save(ctx context.Context, src, dst string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return dst, out.Close()
}
