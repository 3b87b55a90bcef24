package compress

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/soulfile-vault/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyImage(w, h int) *image.RGBA {
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(x * 4),
				B: uint8(y * 4),
				A: 255,
			})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, quality int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noisyImage(64, 64), &jpeg.Options{Quality: quality}))
	return buf.Bytes()
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, noisyImage(32, 32)))
	return buf.Bytes()
}

func newTestCompressor(t *testing.T) (*Compressor, *storage.LocalStore) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return New(store, Options{Quality: DefaultQuality, Optimize: DefaultOptimize}), store
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "compressed_photo.jpg", OutputName("photo.jpg"))
	assert.Equal(t, "compressed_photo.jpg", OutputName("some/dir/photo.jpg"))
	assert.Equal(t, "compressed_photo.jpg", OutputName(`C:\Users\me\photo.jpg`))
}

func TestCompressor_JPEG(t *testing.T) {
	c, store := newTestCompressor(t)
	original := encodeJPEG(t, 100)

	path, sizeKB, err := c.Compress("photo.jpg", original)
	require.NoError(t, err)

	assert.Equal(t, store.Path("compressed_photo.jpg"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, float64(info.Size())/1024, sizeKB)

	// Quality 85 output of a quality 100 noisy source is smaller
	assert.Less(t, info.Size(), int64(len(original)))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(written))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestCompressor_PNG(t *testing.T) {
	c, _ := newTestCompressor(t)

	path, sizeKB, err := c.Compress("diagram.png", encodePNG(t))
	require.NoError(t, err)
	assert.Equal(t, "compressed_diagram.png", filepath.Base(path))
	assert.Greater(t, sizeKB, 0.0)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(written))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 32, cfg.Width)
}

func TestCompressor_UnknownExtensionUsesDecodedFormat(t *testing.T) {
	c, _ := newTestCompressor(t)

	path, _, err := c.Compress("upload.img", encodePNG(t))
	require.NoError(t, err)
	assert.Equal(t, "compressed_upload.img", filepath.Base(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(written))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestCompressor_CorruptImage(t *testing.T) {
	c, store := newTestCompressor(t)

	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), []byte("definitely not the rest of a png")...)
	path, sizeKB, err := c.Compress("broken.png", corrupt)

	assert.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, path)
	assert.Zero(t, sizeKB)

	_, statErr := os.Stat(store.Path("compressed_broken.png"))
	assert.True(t, os.IsNotExist(statErr), "no artifact should be written for a corrupt image")
}

func TestCompressor_DoesNotModifyInput(t *testing.T) {
	c, _ := newTestCompressor(t)
	original := encodeJPEG(t, 95)
	snapshot := append([]byte(nil), original...)

	_, _, err := c.Compress("photo.jpg", original)
	require.NoError(t, err)
	assert.Equal(t, snapshot, original)
}

func TestNew_QualityFallback(t *testing.T) {
	c := New(nil, Options{})
	assert.Equal(t, DefaultQuality, c.quality)

	c = New(nil, Options{Quality: 60})
	assert.Equal(t, 60, c.quality)
}
