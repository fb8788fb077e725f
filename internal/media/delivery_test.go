package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDelivery(t *testing.T) *Delivery {
	t.Helper()
	d, err := NewDelivery("demo")
	require.NoError(t, err)
	return d
}

func TestDelivery_Deterministic(t *testing.T) {
	d := newDelivery(t)
	const id = "video-uploader/abc123"

	for name, fn := range map[string]func(string) (string, error){
		"thumbnail": d.ThumbnailURL,
		"preview":   d.PreviewURL,
		"full":      d.FullURL,
	} {
		first, err := fn(id)
		require.NoError(t, err, name)
		second, err := fn(id)
		require.NoError(t, err, name)

		assert.Equal(t, first, second, name)
		assert.Contains(t, first, "res.cloudinary.com/demo/video/upload", name)
		assert.Contains(t, first, "abc123", name)
	}
}

func TestDelivery_PresentationParameters(t *testing.T) {
	d := newDelivery(t)

	thumb, err := d.ThumbnailURL("clip")
	require.NoError(t, err)
	assert.Contains(t, thumb, "w_400")
	assert.Contains(t, thumb, "h_225")
	assert.Contains(t, thumb, "f_jpg")

	preview, err := d.PreviewURL("clip")
	require.NoError(t, err)
	assert.Contains(t, preview, "e_preview:duration_15:max_seg_9:min_seg_dur_1")

	full, err := d.FullURL("clip")
	require.NoError(t, err)
	assert.Contains(t, full, "w_1920")
	assert.Contains(t, full, "h_1080")
	assert.Contains(t, full, "f_mp4")

	assert.NotEqual(t, thumb, preview)
	assert.NotEqual(t, preview, full)
}

func TestDelivery_DifferentIDsDiffer(t *testing.T) {
	d := newDelivery(t)

	a, err := d.FullURL("a-clip")
	require.NoError(t, err)
	b, err := d.FullURL("b-clip")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDelivery_ImageURL(t *testing.T) {
	d := newDelivery(t)
	format, ok := LookupSocialFormat("Twitter Post (16:9)")
	require.True(t, ok)

	u, err := d.ImageURL("next-cloudinary-uploads/pic", format)
	require.NoError(t, err)
	assert.Contains(t, u, "res.cloudinary.com/demo/image/upload")
	assert.Contains(t, u, "w_1200")
	assert.Contains(t, u, "h_675")
	assert.Contains(t, u, "c_fill")
}

func TestDelivery_EmptyPublicID(t *testing.T) {
	d := newDelivery(t)

	_, err := d.FullURL("")
	assert.ErrorIs(t, err, ErrEmptyPublicID)
	_, err = d.ImageURL("", SocialFormats[0])
	assert.ErrorIs(t, err, ErrEmptyPublicID)
}

func TestNewDelivery_RequiresCloudName(t *testing.T) {
	_, err := NewDelivery(" ")
	assert.Error(t, err)
}

func TestLookupSocialFormat(t *testing.T) {
	f, ok := LookupSocialFormat(DefaultSocialFormat)
	require.True(t, ok)
	assert.Equal(t, 1080, f.Width)

	_, ok = LookupSocialFormat("Myspace Banner")
	assert.False(t, ok)
	assert.Len(t, SocialFormats, 5)
}
