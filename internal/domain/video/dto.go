package video

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
)

// Record is the wire form of a Video. Byte counts travel as decimal strings.
type Record struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PublicID       string    `json:"publicId"`
	OriginalSize   string    `json:"originalSize"`
	CompressedSize string    `json:"compressedSize"`
	Duration       *float64  `json:"duration"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToRecord(v *Video) Record {
	duration := v.Duration
	return Record{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		PublicID:       v.PublicID,
		OriginalSize:   strconv.FormatInt(v.OriginalSize, 10),
		CompressedSize: strconv.FormatInt(v.CompressedSize, 10),
		Duration:       &duration,
		UserID:         v.UserID,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func ToRecords(videos []*Video) []Record {
	out := make([]Record, 0, len(videos))
	for _, v := range videos {
		out = append(out, ToRecord(v))
	}
	return out
}

// ToVideo maps a Record back to the model. Empty size strings read as zero.
func (r Record) ToVideo() (*Video, error) {
	if r.PublicID == "" {
		return nil, ErrMissingPublicID
	}
	original, err := parseSize(r.OriginalSize)
	if err != nil {
		return nil, fmt.Errorf("%w: originalSize: %v", ErrInvalidRecord, err)
	}
	compressed, err := parseSize(r.CompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: compressedSize: %v", ErrInvalidRecord, err)
	}

	v := &Video{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		PublicID:       r.PublicID,
		OriginalSize:   original,
		CompressedSize: compressed,
		UserID:         r.UserID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.Duration != nil {
		v.Duration = *r.Duration
	}
	return v, nil
}

// UploadForm is the multipart submission after trimming.
type UploadForm struct {
	File         *multipart.FileHeader `validate:"required"`
	Title        string                `validate:"required"`
	Description  string                `validate:"required"`
	OriginalSize string                `validate:"required"`
}

// formFieldNames maps struct fields to multipart field names for error details.
var formFieldNames = map[string]string{
	"File":         "file",
	"Title":        "title",
	"Description":  "description",
	"OriginalSize": "originalsize",
}

// ParseOriginalSize accepts non-negative base-10 integers only.
func ParseOriginalSize(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0, ErrInvalidOriginalSize
	}
	return n, nil
}

func parseSize(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %d", n)
	}
	return n, nil
}
