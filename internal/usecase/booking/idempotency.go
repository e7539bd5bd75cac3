package booking

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// RequestLock marks a request id as in flight. acquired is false while
// another holder owns the marker.
type RequestLock interface {
	Acquire(ctx context.Context, requestID string) (release func(), acquired bool, err error)
}

type NopLock struct{}

func (NopLock) Acquire(context.Context, string) (func(), bool, error) {
	return func() {}, true, nil
}

// IdempotencyGuard answers whether a create request was already served.
// The unique index on request_id backs it up when two submissions slip
// past the marker.
type IdempotencyGuard struct {
	repo   domain.Repository
	lock   RequestLock
	logger *slog.Logger
}

func NewIdempotencyGuard(repo domain.Repository, lock RequestLock, logger *slog.Logger) *IdempotencyGuard {
	if lock == nil {
		lock = NopLock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IdempotencyGuard{repo: repo, lock: lock, logger: logger}
}

// Check returns the stored booking for a replayed request id, or nil for a
// fresh one. release must be called once the create path is finished.
// A request id already used by another user is FORBIDDEN.
func (g *IdempotencyGuard) Check(
	ctx context.Context,
	userID uint,
	requestID string,
) (*models.Booking, func(), error) {

	noop := func() {}
	if requestID == "" {
		return nil, noop, nil
	}

	existing, err := g.lookup(ctx, userID, requestID)
	if err != nil || existing != nil {
		return existing, noop, err
	}

	release, acquired, err := g.lock.Acquire(ctx, requestID)
	if err != nil {
		g.logger.WarnContext(ctx, "request marker unavailable, relying on unique index",
			"request_id", requestID,
			"error", err,
		)
		return nil, noop, nil
	}
	if !acquired {
		return nil, noop, domain.ConcurrentModification()
	}

	// the previous holder may have committed between lookup and acquire
	existing, err = g.lookup(ctx, userID, requestID)
	if err != nil || existing != nil {
		release()
		return existing, noop, err
	}

	return nil, release, nil
}

func (g *IdempotencyGuard) lookup(ctx context.Context, userID uint, requestID string) (*models.Booking, error) {
	b, err := g.repo.FindBookingByRequestID(ctx, requestID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Internal("lookup request id", err)
	}
	return ownReplay(b, userID)
}

// ownReplay hands back a replayed booking only to the user who created it.
func ownReplay(b *models.Booking, userID uint) (*models.Booking, error) {
	if b.UserID != userID {
		return nil, httperr.New(httperr.CodeForbidden, "requestId was already used by another user.").
			WithDetails(map[string]any{"field": "requestId"})
	}
	return b, nil
}
