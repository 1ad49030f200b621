package visitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/shop"
)

// Store keeps recent visit entries, newest first.
type Store interface {
	Append(ctx context.Context, entry shop.VisitEntry) error
	Recent(ctx context.Context, n int) ([]shop.VisitEntry, error)
	Len(ctx context.Context) (int, error)
}

// Locator resolves an IP address to an approximate location.
type Locator interface {
	Lookup(ctx context.Context, ip string) (shop.GeoLocation, error)
}

// Recorder records storefront visits with a best-effort location. A
// failed lookup never fails the visit; the entry is stored without a
// location.
type Recorder struct {
	store   Store
	locator Locator
	logger  *zap.Logger
}

// NewRecorder creates a visit recorder. locator may be nil to disable
// location lookups.
func NewRecorder(store Store, locator Locator, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:   store,
		locator: locator,
		logger:  logger,
	}
}

// Record stores a visit for the given client IP and path.
func (r *Recorder) Record(ctx context.Context, ip, path string) {
	entry := shop.VisitEntry{
		IP:        ip,
		Timestamp: time.Now().UTC(),
		Path:      path,
	}

	if r.locator != nil {
		location, err := r.locator.Lookup(ctx, ip)
		if err != nil {
			r.logger.Debug("Visitor location lookup failed",
				zap.String("ip", ip),
				zap.Error(err))
		} else {
			entry.Location = location
		}
	}

	if err := r.store.Append(ctx, entry); err != nil {
		r.logger.Warn("Failed to record visit",
			zap.String("ip", ip),
			zap.Error(err))
	}
}

// Recent returns up to n recorded visits, newest first.
func (r *Recorder) Recent(ctx context.Context, n int) ([]shop.VisitEntry, error) {
	return r.store.Recent(ctx, n)
}

// Count returns the number of retained visits.
func (r *Recorder) Count(ctx context.Context) (int, error) {
	return r.store.Len(ctx)
}
