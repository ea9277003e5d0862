package errorrepo

import (
	"context"
	"sync"

	"github.com/yanqian/agemaster/internal/domain/clienterror"
)

const defaultMemoryCapacity = 1000

// MemoryRepository keeps the most recent reports in a bounded ring.
type MemoryRepository struct {
	mu       sync.Mutex
	capacity int
	reports  []clienterror.Report
}

// NewMemoryRepository constructs a repository holding at most capacity reports.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// Save implements clienterror.Repository. The oldest report is dropped once
// the repository is full.
func (r *MemoryRepository) Save(_ context.Context, report clienterror.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reports) >= r.capacity {
		r.reports = append(r.reports[:0], r.reports[1:]...)
	}
	r.reports = append(r.reports, report)
	return nil
}

// Len reports how many reports are held.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

var _ clienterror.Repository = (*MemoryRepository)(nil)
