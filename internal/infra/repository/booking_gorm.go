package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Venue / Coach / Schedule
// --------------------------------------------------

func (r *BookingGormRepository) GetVenue(
	ctx context.Context,
	id uint,
) (*models.Venue, error) {

	var v models.Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *BookingGormRepository) GetCoach(
	ctx context.Context,
	id uint,
) (*models.Coach, error) {

	var c models.Coach
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *BookingGormRepository) GetSchedule(
	ctx context.Context,
	id uint,
) (*models.CoachSchedule, error) {

	var s models.CoachSchedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *BookingGormRepository) ListCoachSchedules(
	ctx context.Context,
	coachID uint,
	date string,
) ([]models.CoachSchedule, error) {

	var out []models.CoachSchedule
	if err := r.db.WithContext(ctx).
		Where("coach_id = ? AND date = ?", coachID, date).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimSchedule flips is_booked only if it is still false, so exactly one
// of any number of concurrent claims affects a row.
func (r *BookingGormRepository) ClaimSchedule(
	ctx context.Context,
	scheduleID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.CoachSchedule{}).
		Where("id = ? AND is_booked = ?", scheduleID, false).
		Update("is_booked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingGormRepository) ReleaseSchedule(
	ctx context.Context,
	scheduleID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.CoachSchedule{}).
		Where("id = ?", scheduleID).
		Update("is_booked", false).Error
}

func (r *BookingGormRepository) IncrementCoachLessons(
	ctx context.Context,
	coachID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Coach{}).
		Where("id = ?", coachID).
		UpdateColumn("lesson_count", gorm.Expr("lesson_count + ?", 1)).Error
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) FindBookingByRequestID(
	ctx context.Context,
	requestID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	kind domain.ResourceKind,
	resourceID uint,
	date string,
) ([]models.Booking, error) {

	column := "venue_id"
	if kind == domain.ResourceCoach {
		column = "coach_id"
	}

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "start_minute", "end_minute", "status").
		Where(column+" = ? AND booking_date = ? AND status IN ?",
			resourceID, date, domain.ActiveStatusStrings()).
		Order("start_minute ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListUserBookings(
	ctx context.Context,
	userID uint,
	limit int,
	offset int,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Booking
	if err := q.
		Order("booking_date DESC, start_minute DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// --------------------------------------------------
// Booking (write)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	w domain.StatusWrite,
) (bool, error) {

	updates := map[string]any{
		"status":  string(w.NewStatus),
		"version": gorm.Expr("version + 1"),
	}
	for k, v := range w.Changes {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND version = ? AND status = ?",
			w.BookingID, w.ExpectedVersion, string(w.ExpectedStatus)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Points
// --------------------------------------------------

func (r *BookingGormRepository) AddUserPoints(
	ctx context.Context,
	userID uint,
	delta int,
) (int, error) {

	var u models.User
	res := r.db.WithContext(ctx).
		Model(&u).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "points"}}}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrNotFound
	}
	return u.Points, nil
}

func (r *BookingGormRepository) AppendPointLog(
	ctx context.Context,
	entry *models.PointLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
