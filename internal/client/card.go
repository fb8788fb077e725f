package client

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"reelvault/internal/media"
	"reelvault/internal/pkg/utils"
)

const untitled = "Untitled Video"

// Card is everything one gallery card renders.
type Card struct {
	Video        Video
	Title        string
	ThumbnailURL string
	PreviewURL   string
	FullURL      string
	Size         string
	Duration     string
	Compression  int
	Uploaded     string
	Filename     string
}

// NewCard derives display values. URLs are left empty when d is nil.
func NewCard(v Video, d *media.Delivery, now time.Time) (Card, error) {
	title := v.Title
	if title == "" {
		title = untitled
	}
	card := Card{
		Video:       v,
		Title:       title,
		Size:        FormatSize(v.CompressedSize),
		Duration:    FormatDuration(v.Duration),
		Compression: CompressionPercent(v.OriginalSize, v.CompressedSize),
		Uploaded:    "Uploaded " + humanize.RelTime(v.CreatedAt, now, "ago", "from now"),
		Filename:    utils.DownloadFilename(title, "mp4"),
	}
	if d == nil {
		return card, nil
	}

	var err error
	if card.ThumbnailURL, err = d.ThumbnailURL(v.PublicID); err != nil {
		return card, err
	}
	if card.PreviewURL, err = d.PreviewURL(v.PublicID); err != nil {
		return card, err
	}
	if card.FullURL, err = d.FullURL(v.PublicID); err != nil {
		return card, err
	}
	return card, nil
}

// Cards builds a card per video using the client's delivery and clock.
func (c *Client) Cards(videos []Video) ([]Card, error) {
	now := c.now()
	cards := make([]Card, 0, len(videos))
	for _, v := range videos {
		card, err := NewCard(v, c.delivery, now)
		if err != nil {
			return nil, fmt.Errorf("card for %q: %w", v.PublicID, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// FormatSize renders a decimal byte count; zero or unparsable is "0 B".
func FormatSize(raw string) string {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// FormatDuration renders m:ss; absent or zero is "00:00".
func FormatDuration(seconds *float64) string {
	if seconds == nil || *seconds <= 0 || math.IsNaN(*seconds) {
		return "00:00"
	}
	total := int(math.Round(*seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// CompressionPercent is round((1 - compressed/original) * 100), or 0 when the
// original size is unknown.
func CompressionPercent(original, compressed string) int {
	o, err := strconv.ParseFloat(original, 64)
	if err != nil || o <= 0 {
		return 0
	}
	c, err := strconv.ParseFloat(compressed, 64)
	if err != nil {
		c = 0
	}
	return int(math.Round((1 - c/o) * 100))
}
