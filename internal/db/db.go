package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
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

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.BarberSchedule{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ensureOverlapConstraint(db)
	return nil
}

// ensureOverlapConstraint é a última barreira contra sobreposição: mesmo fora da
// trava por barbeiro o banco recusa dois ativos colidindo (SQLSTATE 23P01).
// Exige btree_gist; sem permissão para a extensão seguimos só com a trava.
func ensureOverlapConstraint(db *gorm.DB) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		slog.Warn("btree_gist unavailable, overlap constraint skipped", "err", err)
		return
	}

	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
			) THEN
				ALTER TABLE appointments
				ADD CONSTRAINT appointments_no_overlap
				EXCLUDE USING gist (
					barber_id WITH =,
					tsrange(start_time, end_time, '[)') WITH &&
				)
				WHERE (status IN ('pending', 'confirmed'));
			END IF;
		END
		$$;
	`).Error
	if err != nil {
		slog.Warn("overlap constraint not created", "err", err)
	}
}
