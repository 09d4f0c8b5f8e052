package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewAppointmentGormRepository(db *gorm.DB, lockTimeout time.Duration) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// User / Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetBarberByUser(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) ListBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	barberID uint,
	day string,
) (*models.BarberSchedule, error) {
	return getSchedule(r.db.WithContext(ctx), barberID, day)
}

func getSchedule(db *gorm.DB, barberID uint, day string) (*models.BarberSchedule, error) {
	var s models.BarberSchedule
	err := db.
		Where("barber_id = ? AND day_of_week = ?", barberID, day).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AppointmentGormRepository) ListSchedules(
	ctx context.Context,
	barberID uint,
) ([]models.BarberSchedule, error) {

	var rows []models.BarberSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentGormRepository) ReplaceSchedules(
	ctx context.Context,
	barberID uint,
	rows []models.BarberSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, barberID); err != nil {
			return err
		}

		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.BarberSchedule{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		toCreate := make([]models.BarberSchedule, len(rows))
		for i, row := range rows {
			row.ID = 0
			row.BarberID = barberID
			toCreate[i] = row
		}
		return tx.Create(&toCreate).Error
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListOccupied(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := overlapping(r.db.WithContext(ctx), barberID, start, end, domain.ActiveStatuses).
		Select("id", "barber_id", "start_time", "end_time", "status").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber.User").
		Preload("Service")

	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.ClientID != 0 {
		q = q.Where("user_id = ?", f.ClientID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", domain.StatusStrings(f.Statuses))
	}
	if !f.From.IsZero() {
		q = q.Where("start_time >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_time < ?", f.To)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Barber transaction
// --------------------------------------------------

// InBarberTx: SERIALIZABLE + pg_advisory_xact_lock por barbeiro. A trava
// consultiva cobre também as linhas que ainda não existem (phantom insert),
// coisa que o FOR UPDATE sozinho não cobre.
func (r *AppointmentGormRepository) InBarberTx(
	ctx context.Context,
	barberID uint,
	fn func(ctx context.Context, tx domain.BookingTx) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 {
			// SET não aceita parâmetro; o valor vem da config como inteiro
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		if err := lockBarber(tx, barberID); err != nil {
			return err
		}

		return fn(ctx, gormBookingTx{tx: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}
	return classifyTxError(err)
}

func lockBarber(tx *gorm.DB, barberID uint) error {
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		fmt.Sprintf("barber:%d", barberID),
	).Error
}

type gormBookingTx struct {
	tx *gorm.DB
}

func (t gormBookingTx) GetSchedule(
	ctx context.Context,
	barberID uint,
	day string,
) (*models.BarberSchedule, error) {
	return getSchedule(t.tx.WithContext(ctx), barberID, day)
}

func (t gormBookingTx) FindOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
	lock bool,
) ([]models.Appointment, error) {

	q := overlapping(t.tx.WithContext(ctx), barberID, start, end, statuses)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (t gormBookingTx) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return t.tx.WithContext(ctx).Create(ap).Error
}

func (t gormBookingTx) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (t gormBookingTx) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return t.tx.WithContext(ctx).
		Model(ap).
		Select("status", "payment_status", "canceled_at", "completed_at", "updated_at").
		Updates(ap).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func overlapping(
	db *gorm.DB,
	barberID uint,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
) *gorm.DB {

	return db.
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			domain.StatusStrings(statuses),
			end,
			start,
		).
		Order("start_time ASC")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
