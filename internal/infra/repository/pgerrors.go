package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/golf-reservation/internal/db"
	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// translate maps driver errors onto the domain sentinels. Anything it does
// not recognise is returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgExclusionViolation:
		return domain.ErrSlotTaken
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case db.ConstraintRequestID:
			return domain.ErrDuplicateRequest
		case db.ConstraintActiveSchedule:
			return domain.ErrSlotTaken
		}
	}
	return err
}
