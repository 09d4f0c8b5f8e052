package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Roda só com um Postgres de verdade (DATABASE_URL).
func postgresSeeded(t *testing.T) (*AppointmentGormRepository, *gorm.DB, models.Barber, models.User, models.Service) {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := dbpkg.NewDB(&config.Config{DBUrl: url})
	require.NoError(t, err)

	suffix := uuid.NewString()
	barberUsr := models.User{Name: "Barbero Pg", Email: "barber-" + suffix + "@example.com", Role: models.RoleBarber}
	client := models.User{Name: "Cliente Pg", Email: "client-" + suffix + "@example.com", Role: models.RoleClient}
	require.NoError(t, db.Create(&barberUsr).Error)
	require.NoError(t, db.Create(&client).Error)

	barber := models.Barber{UserID: barberUsr.ID}
	require.NoError(t, db.Create(&barber).Error)

	service := models.Service{Name: "Corte Pg", DurationMinutes: 30}
	require.NoError(t, db.Create(&service).Error)

	t.Cleanup(func() {
		db.Where("barber_id = ?", barber.ID).Delete(&models.Appointment{})
		db.Delete(&barber)
		db.Delete(&service)
		db.Delete(&client)
		db.Delete(&barberUsr)
	})

	return NewAppointmentGormRepository(db, 2*time.Second), db, barber, client, service
}

func TestPostgresConcurrentOverlapCommitsOnce(t *testing.T) {
	repo, db, b, client, service := postgresSeeded(t)

	const workers = 8
	var (
		wg     sync.WaitGroup
		booked atomic.Int32
		start  = make(chan struct{})
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			<-start

			s := clock(10, offset)
			err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
				found, err := tx.FindOverlapping(ctx, b.ID, s, s.Add(30*time.Minute), domain.ActiveStatuses, true)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					return errTaken
				}
				return tx.InsertAppointment(ctx, &models.Appointment{
					ClientID: client.ID, BarberID: b.ID, ServiceID: service.ID,
					StartTime: s, EndTime: s.Add(30 * time.Minute),
					Status: "pending", PaymentStatus: "pending",
				})
			})
			if err == nil {
				booked.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), booked.Load())

	var n int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("barber_id = ?", b.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestPostgresOverlapConstraintBacksUpTheLock(t *testing.T) {
	repo, db, b, client, service := postgresSeeded(t)

	var constraints int64
	require.NoError(t, db.Raw(
		"SELECT count(*) FROM pg_constraint WHERE conname = 'appointments_no_overlap'",
	).Scan(&constraints).Error)
	if constraints == 0 {
		t.Skip("overlap constraint not installed")
	}

	s := clock(11, 0)
	err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
		for _, start := range []time.Time{s, s.Add(15 * time.Minute)} {
			if err := tx.InsertAppointment(ctx, &models.Appointment{
				ClientID: client.ID, BarberID: b.ID, ServiceID: service.ID,
				StartTime: start, EndTime: start.Add(30 * time.Minute),
				Status: "pending", PaymentStatus: "pending",
			}); err != nil {
				return err
			}
		}
		return nil
	})

	assert.True(t, errors.Is(err, domain.ErrOverlapConstraint), "got %v", err)
}
