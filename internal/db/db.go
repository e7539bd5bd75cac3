package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/golf-reservation/internal/config"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// Constraint names the repository maps back to domain errors.
const (
	ConstraintVenueOverlap   = "ex_bookings_venue_overlap"
	ConstraintActiveSchedule = "ux_bookings_active_schedule"
	ConstraintRequestID      = "ux_bookings_request_id"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database ready")
	return db, nil
}

// Migrate creates the tables and the constraints that keep bookings
// consistent under concurrent writers. Safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Coach{},
		&models.CoachSchedule{},
		&models.Booking{},
		&models.PointLog{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range constraintDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}

	return nil
}

var constraintDDL = []string{
	// one active booking per coach schedule
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + ConstraintActiveSchedule + `
		ON bookings (schedule_id)
		WHERE schedule_id IS NOT NULL AND status IN ('pending','confirmed','completed')`,

	// no two active bookings of a venue overlap on the same day
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + ConstraintVenueOverlap + `') THEN
			ALTER TABLE bookings ADD CONSTRAINT ` + ConstraintVenueOverlap + `
				EXCLUDE USING gist (
					venue_id WITH =,
					booking_date WITH =,
					int4range(start_minute, end_minute) WITH &&
				)
				WHERE (venue_id IS NOT NULL AND status IN ('pending','confirmed','completed'));
		END IF;
	END $$`,

	`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS chk_bookings_window`,
	`ALTER TABLE bookings ADD CONSTRAINT chk_bookings_window
		CHECK (start_minute >= 0 AND end_minute <= 1440 AND start_minute < end_minute)`,
}
