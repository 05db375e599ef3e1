package storage

import (
	"context"
	"sync"

	"github.com/chronoworld/showtimes/pkg/types"
)

// MemoryTable implements Table in process memory.
// Records are returned in insertion order.
type MemoryTable struct {
	mu      sync.RWMutex
	records []types.Record
	scanErr error
	scans   int
}

// NewMemoryTable creates an in-memory table seeded with records.
func NewMemoryTable(records ...types.Record) *MemoryTable {
	m := &MemoryTable{}
	for _, r := range records {
		m.records = append(m.records, r.Clone())
	}
	return m
}

// Put appends a record.
func (m *MemoryTable) Put(record types.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record.Clone())
}

// SetScanError makes subsequent scans fail with err. nil clears it.
func (m *MemoryTable) SetScanError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanErr = err
}

// ScanCount returns how many scans have been issued.
func (m *MemoryTable) ScanCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scans
}

// Scan returns copies of all records.
func (m *MemoryTable) Scan(ctx context.Context) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.scans++
	if m.scanErr != nil {
		return nil, m.scanErr
	}

	out := make([]types.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Clone())
	}
	return out, nil
}
