// Package visitlog provides bounded stores for the visitor log.
package visitlog

import (
	"context"

	"github.com/shopfront/backend/internal/domain/shop"
)

// Store keeps the most recent visit entries, newest first. Once the
// bound is reached the oldest entries fall off.
type Store interface {
	// Append records a visit.
	Append(ctx context.Context, entry shop.VisitEntry) error

	// Recent returns up to n entries, newest first. n <= 0 returns all
	// retained entries.
	Recent(ctx context.Context, n int) ([]shop.VisitEntry, error)

	// Len returns the number of retained entries.
	Len(ctx context.Context) (int, error)
}
