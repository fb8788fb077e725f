package client

// PreviewState tracks hover playback for one card.
type PreviewState struct {
	hovered bool
	failed  bool
}

// Enter starts a hover session with a clean error flag.
func (p *PreviewState) Enter() {
	p.hovered = true
	p.failed = false
}

func (p *PreviewState) Leave() {
	p.hovered = false
	p.failed = false
}

// MediaError records a failed preview load for the rest of this hover session.
func (p *PreviewState) MediaError() {
	p.failed = true
}

// ShowPreview reports whether the animated preview replaces the thumbnail.
func (p *PreviewState) ShowPreview() bool {
	return p.hovered && !p.failed
}

// Source picks the URL to render for card.
func (p *PreviewState) Source(card Card) string {
	if p.ShowPreview() {
		return card.PreviewURL
	}
	return card.ThumbnailURL
}
