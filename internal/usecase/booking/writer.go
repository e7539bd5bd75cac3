package booking

import (
	"context"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

// OptimisticWriter applies a status change only if nobody moved the
// booking since it was read. It never retries.
type OptimisticWriter struct{}

func NewOptimisticWriter() OptimisticWriter {
	return OptimisticWriter{}
}

func (OptimisticWriter) Apply(ctx context.Context, tx domain.Repository, w domain.StatusWrite) error {
	ok, err := tx.UpdateBookingStatus(ctx, w)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConcurrentModification
	}
	return nil
}
