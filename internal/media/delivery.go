package media

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Fixed presentation parameters for gallery cards.
const (
	thumbnailTransformation = "c_fill,g_auto,h_225,w_400/f_jpg/q_auto"
	previewTransformation   = "c_limit,h_225,w_400/e_preview:duration_15:max_seg_9:min_seg_dur_1/f_mp4"
	fullTransformation      = "c_limit,h_1080,w_1920/f_mp4"
)

var ErrEmptyPublicID = errors.New("public id is empty")

// Delivery derives display and download URLs. Every method is a pure function of
// the public id and the fixed parameters above; nothing is fetched.
type Delivery struct {
	cld *cloudinary.Cloudinary
}

// NewDelivery needs only the cloud name; URLs are unsigned.
func NewDelivery(cloudName string) (*Delivery, error) {
	if strings.TrimSpace(cloudName) == "" {
		return nil, errors.New("cloud name is required for delivery urls")
	}
	cld, err := cloudinary.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("init cloudinary delivery: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Delivery{cld: cld}, nil
}

// ThumbnailURL is a 400x225 jpg frame of the video.
func (d *Delivery) ThumbnailURL(publicID string) (string, error) {
	return d.videoURL(publicID, thumbnailTransformation)
}

// PreviewURL is a short silent 400x225 highlight reel for hover playback.
func (d *Delivery) PreviewURL(publicID string) (string, error) {
	return d.videoURL(publicID, previewTransformation)
}

// FullURL is the full-resolution mp4 used for downloads.
func (d *Delivery) FullURL(publicID string) (string, error) {
	return d.videoURL(publicID, fullTransformation)
}

// ImageURL renders an uploaded image at a social preset size.
func (d *Delivery) ImageURL(publicID string, format SocialFormat) (string, error) {
	if publicID == "" {
		return "", ErrEmptyPublicID
	}
	img, err := d.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Transformation = fmt.Sprintf("c_fill,g_auto,h_%d,w_%d/f_auto/q_auto", format.Height, format.Width)
	return img.String()
}

func (d *Delivery) videoURL(publicID, transformation string) (string, error) {
	if publicID == "" {
		return "", ErrEmptyPublicID
	}
	video, err := d.cld.Video(publicID)
	if err != nil {
		return "", err
	}
	video.Transformation = transformation
	return video.String()
}
