package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var wed = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return wed.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func seeded(t *testing.T) (*AppointmentMemoryRepository, models.Barber) {
	t.Helper()

	repo := NewAppointmentMemoryRepository(time.Second)
	u := repo.AddUser(models.User{Name: "Barbero David", Email: "d@example.com", Role: models.RoleBarber})
	b := repo.AddBarber(models.Barber{UserID: u.ID})
	repo.PutSchedule(models.BarberSchedule{BarberID: b.ID, DayOfWeek: "Wednesday", StartTime: "09:00:00", EndTime: "17:00:00"})
	return repo, b
}

func TestMemoryRollbackDiscardsStagedWrites(t *testing.T) {
	repo, b := seeded(t)
	boom := errors.New("boom")

	err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
		ap := &models.Appointment{BarberID: b.ID, StartTime: clock(10, 0), EndTime: clock(10, 30), Status: "pending"}
		require.NoError(t, tx.InsertAppointment(ctx, ap))
		assert.NotZero(t, ap.ID)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, repo.Count())
}

func TestMemoryTxSeesOwnInserts(t *testing.T) {
	repo, b := seeded(t)

	err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
		ap := &models.Appointment{BarberID: b.ID, StartTime: clock(10, 0), EndTime: clock(10, 30), Status: "pending"}
		require.NoError(t, tx.InsertAppointment(ctx, ap))

		found, err := tx.FindOverlapping(ctx, b.ID, clock(10, 15), clock(10, 45), domain.ActiveStatuses, true)
		require.NoError(t, err)
		assert.Len(t, found, 1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryCanceledDoesNotOccupy(t *testing.T) {
	repo, b := seeded(t)
	repo.PutAppointment(models.Appointment{BarberID: b.ID, StartTime: clock(10, 0), EndTime: clock(11, 0), Status: "canceled"})
	repo.PutAppointment(models.Appointment{BarberID: b.ID, StartTime: clock(11, 0), EndTime: clock(11, 30), Status: "confirmed"})

	occupied, err := repo.ListOccupied(context.Background(), b.ID, wed, wed.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, clock(11, 0), occupied[0].StartTime)
}

func TestMemoryUpdateIsStagedUntilCommit(t *testing.T) {
	repo, b := seeded(t)
	ap := repo.PutAppointment(models.Appointment{BarberID: b.ID, StartTime: clock(10, 0), EndTime: clock(11, 0), Status: "pending"})

	err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
		got, err := tx.GetAppointmentForUpdate(ctx, ap.ID)
		require.NoError(t, err)
		got.Status = "canceled"
		require.NoError(t, tx.UpdateAppointment(ctx, got))

		outside, _ := repo.GetAppointment(ctx, ap.ID)
		assert.Equal(t, "pending", outside.Status)

		inside, _ := tx.FindOverlapping(ctx, b.ID, clock(10, 0), clock(11, 0), domain.ActiveStatuses, false)
		assert.Empty(t, inside)
		return nil
	})
	require.NoError(t, err)

	after, err := repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", after.Status)
}

func TestMemoryLockTimeout(t *testing.T) {
	repo, b := seeded(t)
	repo.lockTimeout = 20 * time.Millisecond

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
		return nil
	})
	close(release)

	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestMemoryConcurrentOverlapCommitsOnce(t *testing.T) {
	repo, b := seeded(t)

	const workers = 16
	var (
		wg      sync.WaitGroup
		booked  atomic.Int32
		refused atomic.Int32
		start   = make(chan struct{})
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			<-start

			s := clock(10, offset%20)
			err := repo.InBarberTx(context.Background(), b.ID, func(ctx context.Context, tx domain.BookingTx) error {
				found, err := tx.FindOverlapping(ctx, b.ID, s, s.Add(30*time.Minute), domain.ActiveStatuses, true)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					return errTaken
				}
				return tx.InsertAppointment(ctx, &models.Appointment{
					BarberID: b.ID, StartTime: s, EndTime: s.Add(30 * time.Minute), Status: "pending",
				})
			})

			switch {
			case err == nil:
				booked.Add(1)
			case errors.Is(err, errTaken):
				refused.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), booked.Load())
	assert.Equal(t, int32(workers-1), refused.Load())
	assert.Equal(t, 1, repo.Count())
}

var errTaken = errors.New("taken")

func TestMemoryListAppointmentsFiltersAndPreloads(t *testing.T) {
	repo, b := seeded(t)
	client := repo.AddUser(models.User{Name: "Ana", Email: "ana@example.com"})
	svc := repo.AddService(models.Service{Name: "Corte Express", DurationMinutes: 30})

	repo.PutAppointment(models.Appointment{ClientID: client.ID, BarberID: b.ID, ServiceID: svc.ID, StartTime: clock(14, 0), EndTime: clock(14, 30), Status: "pending"})
	repo.PutAppointment(models.Appointment{ClientID: client.ID, BarberID: b.ID, ServiceID: svc.ID, StartTime: clock(9, 0), EndTime: clock(9, 30), Status: "confirmed"})
	repo.PutAppointment(models.Appointment{ClientID: client.ID, BarberID: b.ID, ServiceID: svc.ID, StartTime: clock(11, 0), EndTime: clock(11, 30), Status: "canceled"})

	list, err := repo.ListAppointments(context.Background(), domain.AppointmentFilter{
		ClientID: client.ID,
		Statuses: domain.ActiveStatuses,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, clock(9, 0), list[0].StartTime)
	assert.Equal(t, "Ana", list[0].Client.Name)
	assert.Equal(t, "Barbero David", list[0].Barber.User.Name)
	assert.Equal(t, "Corte Express", list[0].Service.Name)
}

func TestSeedDemo(t *testing.T) {
	repo := NewAppointmentMemoryRepository(time.Second)
	SeedDemo(repo)

	barbers, err := repo.ListBarbers(context.Background())
	require.NoError(t, err)
	require.Len(t, barbers, 1)

	s, err := repo.GetSchedule(context.Background(), barbers[0].ID, "Wednesday")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "09:00:00", s.StartTime)

	sunday, err := repo.GetSchedule(context.Background(), barbers[0].ID, "Sunday")
	require.NoError(t, err)
	require.NotNil(t, sunday)
	assert.True(t, sunday.IsDayOff)
}
