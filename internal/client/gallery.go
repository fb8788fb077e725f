package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Video is a gallery record after normalization. Every field has a usable
// value regardless of what the server omitted.
type Video struct {
	ID             string
	Title          string
	Description    string
	PublicID       string
	OriginalSize   string
	CompressedSize string
	Duration       *float64
	UserID         string
	// Utility is reserved and always empty.
	Utility   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListVideos fetches the gallery once. Any failure, including a payload that is
// not an array, means the page shows "Failed to fetch videos".
func (c *Client) ListVideos(ctx context.Context) ([]Video, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/videos"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.doAPI(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if signInRequired(resp.StatusCode) {
		return nil, fmt.Errorf("server returned status %d: %w: %w", resp.StatusCode, ErrSignInRequired, ErrNotSequence)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %w", resp.StatusCode, ErrNotSequence)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, ErrNotSequence
	}

	now := c.now()
	videos := make([]Video, 0, len(items))
	for _, item := range items {
		raw, _ := item.(map[string]any)
		videos = append(videos, Normalize(raw, now))
	}
	return videos, nil
}

// Normalize fills defaults: empty strings for description and sizes, nil
// duration, now for missing timestamps. Sizes are read from either casing.
func Normalize(raw map[string]any, now time.Time) Video {
	return Video{
		ID:             stringField(raw, "id"),
		Title:          stringField(raw, "title"),
		Description:    stringField(raw, "description"),
		PublicID:       stringField(raw, "publicId"),
		OriginalSize:   stringField(raw, "originalSize", "originalsize"),
		CompressedSize: stringField(raw, "compressedSize", "compressedsize"),
		Duration:       floatField(raw, "duration"),
		UserID:         stringField(raw, "userId"),
		Utility:        stringField(raw, "utility"),
		CreatedAt:      timeField(raw, "createdAt", now),
		UpdatedAt:      timeField(raw, "updatedAt", now),
	}
}

func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func floatField(raw map[string]any, key string) *float64 {
	switch v := raw[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func timeField(raw map[string]any, key string, fallback time.Time) time.Time {
	s, ok := raw[key].(string)
	if !ok || s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
