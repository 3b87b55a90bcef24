package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soulfile-vault/backend/internal/models"
)

// MaxRetainedBatches bounds how many finished batches GetBatch can return.
const MaxRetainedBatches = 50

// Processor handles a single upload.
type Processor interface {
	ProcessItem(ctx context.Context, u models.Upload) models.ItemResult
}

// Batch is a finished upload batch.
type Batch struct {
	models.BatchResult
	CreatedAt   time.Time `json:"createdAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// Manager runs upload batches one at a time.
type Manager struct {
	run       sync.Mutex // serialises batches
	mu        sync.RWMutex
	processor Processor
	batches   map[string]*Batch
	order     []string
}

// NewManager creates a new upload manager.
func NewManager(processor Processor) *Manager {
	return &Manager{
		processor: processor,
		batches:   make(map[string]*Batch),
	}
}

// RunBatch processes uploads sequentially, never aborting on a failed item,
// and returns the per-item outcome.
func (m *Manager) RunBatch(ctx context.Context, uploads []models.Upload) *Batch {
	m.run.Lock()
	defer m.run.Unlock()

	batch := &Batch{
		BatchResult: models.BatchResult{
			ID:    uuid.New().String(),
			Items: make([]models.ItemResult, 0, len(uploads)),
		},
		CreatedAt: time.Now(),
	}
	short := batch.ID[:8]
	fmt.Printf("[Upload %s] Processing %d file(s)\n", short, len(uploads))

	for i, u := range uploads {
		res := m.processor.ProcessItem(ctx, u)
		batch.Items = append(batch.Items, res)

		switch res.Status {
		case models.ItemStatusComplete:
			batch.Complete++
			fmt.Printf("[Upload %s] (%d/%d) %s -> %s (%.1fKB, %s)\n",
				short, i+1, len(uploads), u.Name, res.Path, res.SizeKB, res.Domain)
		default:
			batch.Failed++
			fmt.Printf("[Upload %s] (%d/%d) %s failed: %s\n", short, i+1, len(uploads), u.Name, res.Error)
		}
	}

	batch.CompletedAt = time.Now()
	fmt.Printf("[Upload %s] Done: %d complete, %d failed\n", short, batch.Complete, batch.Failed)

	m.remember(batch)
	return batch
}

// GetBatch retrieves a recent batch by ID.
func (m *Manager) GetBatch(id string) (*Batch, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	batch, ok := m.batches[id]
	return batch, ok
}

// remember stores batch, evicting the oldest beyond MaxRetainedBatches.
func (m *Manager) remember(batch *Batch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.batches[batch.ID] = batch
	m.order = append(m.order, batch.ID)
	for len(m.order) > MaxRetainedBatches {
		delete(m.batches, m.order[0])
		m.order = m.order[1:]
	}
}
