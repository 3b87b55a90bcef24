// Package compress re-encodes uploaded images at a fixed quality and stores the result.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/soulfile-vault/backend/internal/storage"
)

// OutputPrefix is prepended to the original filename to name the compressed artifact.
const OutputPrefix = "compressed_"

const (
	DefaultQuality  = 85
	DefaultOptimize = true
)

var (
	ErrDecode            = errors.New("decoding image")
	ErrEncode            = errors.New("encoding image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Options controls re-encoding.
type Options struct {
	Quality  int  // JPEG quality, 1-100
	Optimize bool // smallest output the encoder supports
}

// Compressor decodes images and writes a re-encoded copy to the artifact store.
type Compressor struct {
	store    storage.Store
	quality  int
	optimize bool
}

// New creates a Compressor. A zero quality falls back to DefaultQuality.
func New(store storage.Store, opts Options) *Compressor {
	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compressor{
		store:    store,
		quality:  quality,
		optimize: opts.Optimize,
	}
}

// OutputName returns the artifact name for an uploaded file name.
// Any client-side directory components are dropped.
func OutputName(name string) string {
	return OutputPrefix + path.Base(strings.ReplaceAll(name, `\`, "/"))
}

// Compress decodes data, re-encodes it and writes it as OutputName(name).
// It returns the artifact path and its size in kilobytes. The original data is untouched.
func (c *Compressor) Compress(name string, data []byte) (string, float64, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}

	format, err := c.outputFormat(name, data)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, c.encodeOptions()...); err != nil {
		return "", 0, fmt.Errorf("%w %s: %v", ErrEncode, name, err)
	}

	artifact, err := c.store.Save(OutputName(name), &buf)
	if err != nil {
		return "", 0, fmt.Errorf("saving compressed %s: %w", name, err)
	}

	return artifact.Path, float64(artifact.Size) / 1024, nil
}

// outputFormat follows the file extension, falling back to the decoded format.
func (c *Compressor) outputFormat(name string, data []byte) (imaging.Format, error) {
	if format, err := imaging.FormatFromFilename(name); err == nil {
		return format, nil
	}

	_, decoded, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}
	format, err := imaging.FormatFromExtension(decoded)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, decoded)
	}
	return format, nil
}

func (c *Compressor) encodeOptions() []imaging.EncodeOption {
	opts := []imaging.EncodeOption{imaging.JPEGQuality(c.quality)}
	if c.optimize {
		opts = append(opts, imaging.PNGCompressionLevel(png.BestCompression))
	}
	return opts
}
