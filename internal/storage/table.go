// Package storage provides read access to the showtimes table.
package storage

import (
	"context"

	"github.com/chronoworld/showtimes/pkg/types"
)

// Table abstracts the key-value table holding event records.
// Implementations include DynamoDB and an in-memory table for tests and local runs.
type Table interface {
	// Scan returns the table contents in scan order.
	// Order is unspecified and not stable across calls.
	Scan(ctx context.Context) ([]types.Record, error)
}
