// Package ingest runs uploads through classification, optional compression and
// metadata persistence.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulfile-vault/backend/internal/classify"
	"github.com/soulfile-vault/backend/internal/models"
)

var ErrMissingName = errors.New("upload has no file name")

// MetadataStore is the part of the metadata store the pipeline writes to.
type MetadataStore interface {
	Insert(ctx context.Context, rec models.FileRecord) error
}

// ImageCompressor re-encodes an image and reports where it went and its size in KB.
type ImageCompressor interface {
	Compress(name string, data []byte) (string, float64, error)
}

// Result is what the caller shows for one processed upload.
type Result struct {
	Path   string        `json:"path"`
	SizeKB float64       `json:"sizeKb"`
	Domain models.Domain `json:"domain"`
}

// Options tunes the pipeline.
type Options struct {
	// SniffContent detects the media type from the data when none was declared.
	SniffContent bool
}

// Pipeline processes one upload at a time.
type Pipeline struct {
	compressor ImageCompressor
	store      MetadataStore
	sniff      bool
}

// NewPipeline creates a pipeline writing records to store.
func NewPipeline(compressor ImageCompressor, store MetadataStore, opts Options) *Pipeline {
	return &Pipeline{
		compressor: compressor,
		store:      store,
		sniff:      opts.SniffContent,
	}
}

// Process classifies u, compresses it if it is an image and appends its record.
// Documents are recorded under their original name and byte size with nothing written
// to the artifact directory. If compression fails nothing is recorded.
func (p *Pipeline) Process(ctx context.Context, u models.Upload) (Result, error) {
	if u.Name == "" {
		return Result{}, ErrMissingName
	}

	mediaType := u.MediaType
	if p.sniff {
		mediaType = classify.ResolveMediaType(mediaType, u.Data)
	}

	var res Result
	res.Domain = classify.Classify(mediaType)

	switch res.Domain {
	case models.DomainImage:
		path, size, err := p.compressor.Compress(u.Name, u.Data)
		if err != nil {
			return Result{}, err
		}
		res.Path, res.SizeKB = path, size
	default:
		res.Path = u.Name
		res.SizeKB = float64(len(u.Data)) / 1024
	}

	rec := models.FileRecord{
		Name:           u.Name,
		Path:           res.Path,
		CompressedSize: res.SizeKB,
		Domain:         res.Domain,
	}
	if err := p.store.Insert(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("recording %s: %w", u.Name, err)
	}

	return res, nil
}

// ProcessBatch processes uploads strictly in order. A failing item is reported in its
// result and does not stop the remaining items.
func (p *Pipeline) ProcessBatch(ctx context.Context, uploads []models.Upload) []models.ItemResult {
	results := make([]models.ItemResult, 0, len(uploads))
	for _, u := range uploads {
		results = append(results, p.ProcessItem(ctx, u))
	}
	return results
}

// ProcessItem is Process with the outcome folded into an ItemResult.
func (p *Pipeline) ProcessItem(ctx context.Context, u models.Upload) models.ItemResult {
	res, err := p.Process(ctx, u)
	if err != nil {
		return models.ItemResult{
			Name:   u.Name,
			Status: models.ItemStatusError,
			Error:  err.Error(),
		}
	}
	return models.ItemResult{
		Name:   u.Name,
		Status: models.ItemStatusComplete,
		Path:   res.Path,
		SizeKB: res.SizeKB,
		Domain: res.Domain,
	}
}
