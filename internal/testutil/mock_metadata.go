// mock_metadata.go - Mock metadata and artifact stores for testing
package testutil

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"sync"

	"github.com/soulfile-vault/backend/internal/metadata"
	"github.com/soulfile-vault/backend/internal/models"
	"github.com/soulfile-vault/backend/internal/storage"
)

// ErrMockFailure is returned by mocks configured to fail.
var ErrMockFailure = errors.New("mock failure")

// MockMetadataStore implements metadata.Store in memory
type MockMetadataStore struct {
	records     []models.FileRecord
	initialized int
	mu          sync.RWMutex

	// InsertErr, when set, is returned by Insert instead of storing the record
	InsertErr error
	// ListErr, when set, is returned by ListAll
	ListErr error
}

// NewMockMetadataStore creates an empty mock store
func NewMockMetadataStore() *MockMetadataStore {
	return &MockMetadataStore{
		records: make([]models.FileRecord, 0),
	}
}

func (m *MockMetadataStore) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized++
	return nil
}

func (m *MockMetadataStore) Insert(ctx context.Context, rec models.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MockMetadataStore) ListAll(ctx context.Context) ([]models.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.FileRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockMetadataStore) Close() error {
	return nil
}

// Ensure MockMetadataStore implements metadata.Store
var _ metadata.Store = (*MockMetadataStore)(nil)

// Test Helper Methods

// Records returns a copy of everything inserted so far
func (m *MockMetadataStore) Records() []models.FileRecord {
	records, _ := m.ListAll(context.Background())
	return records
}

// AddRecord seeds a record directly
func (m *MockMetadataStore) AddRecord(rec models.FileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

// MockArtifactStore implements storage.Store in memory
type MockArtifactStore struct {
	files map[string][]byte
	mu    sync.RWMutex
}

// NewMockArtifactStore creates an empty artifact store
func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{files: make(map[string][]byte)}
}

func (m *MockArtifactStore) Save(name string, r io.Reader) (*storage.Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return &storage.Artifact{Name: name, Path: m.Path(name), Size: int64(len(data))}, nil
}

func (m *MockArtifactStore) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *MockArtifactStore) Path(name string) string {
	return name
}

// Data returns an artifact's content
func (m *MockArtifactStore) Data(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	return data, ok
}

// Ensure MockArtifactStore implements storage.Store
var _ storage.Store = (*MockArtifactStore)(nil)

// SampleJPEG returns a small valid JPEG encoded at the given quality
func SampleJPEG(width, height, quality int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8((x + y) * 3), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// CorruptPNG returns bytes with a PNG signature that cannot be decoded
func CorruptPNG() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), []byte("truncated garbage")...)
}
