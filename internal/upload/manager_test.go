package upload

import (
	"context"
	"testing"

	"github.com/soulfile-vault/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	seen []string
}

func (f *fakeProcessor) ProcessItem(ctx context.Context, u models.Upload) models.ItemResult {
	f.seen = append(f.seen, u.Name)
	if u.MediaType == "image/broken" {
		return models.ItemResult{Name: u.Name, Status: models.ItemStatusError, Error: "decoding image"}
	}
	return models.ItemResult{Name: u.Name, Status: models.ItemStatusComplete, Path: u.Name, Domain: models.DomainDocument}
}

func TestManager_RunBatch(t *testing.T) {
	proc := &fakeProcessor{}
	m := NewManager(proc)

	batch := m.RunBatch(context.Background(), []models.Upload{
		{Name: "one.txt"},
		{Name: "two.png", MediaType: "image/broken"},
		{Name: "three.txt"},
	})

	assert.Equal(t, []string{"one.txt", "two.png", "three.txt"}, proc.seen, "items run in order")
	assert.Len(t, batch.ID, 36)
	assert.Equal(t, 2, batch.Complete)
	assert.Equal(t, 1, batch.Failed)
	require.Len(t, batch.Items, 3)
	assert.Equal(t, models.ItemStatusError, batch.Items[1].Status)
	assert.False(t, batch.CompletedAt.Before(batch.CreatedAt))

	got, ok := m.GetBatch(batch.ID)
	require.True(t, ok)
	assert.Same(t, batch, got)
}

func TestManager_EmptyBatch(t *testing.T) {
	m := NewManager(&fakeProcessor{})

	batch := m.RunBatch(context.Background(), nil)
	assert.NotNil(t, batch.Items)
	assert.Empty(t, batch.Items)
	assert.Zero(t, batch.Complete)
	assert.Zero(t, batch.Failed)
}

func TestManager_EvictsOldBatches(t *testing.T) {
	m := NewManager(&fakeProcessor{})

	first := m.RunBatch(context.Background(), nil)
	for i := 0; i < MaxRetainedBatches; i++ {
		m.RunBatch(context.Background(), nil)
	}

	_, ok := m.GetBatch(first.ID)
	assert.False(t, ok)
	assert.Len(t, m.batches, MaxRetainedBatches)
}

func TestManager_UnknownBatch(t *testing.T) {
	m := NewManager(&fakeProcessor{})
	_, ok := m.GetBatch("missing")
	assert.False(t, ok)
}
