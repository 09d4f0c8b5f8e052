package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (f *fixture) availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		ServiceID: f.express.ID,
		Date:      wednesday(0, 0),
	}
}

func TestAvailabilityFullJornada(t *testing.T) {
	f := newFixture(t)
	uc := NewGetAvailability(f.repo, WithClock(fixedNow))

	out, err := uc.Execute(context.Background(), f.availabilityInput())
	require.NoError(t, err)

	// o barbeiro sem agenda fica de fora
	require.Len(t, out, 1)
	assert.Equal(t, f.barber.ID, out[0].BarberID)
	assert.Equal(t, "Barbero David", out[0].Name)
	assert.Equal(t, "barbers/david.webp", out[0].PhotoPath)
	assert.Len(t, out[0].Slots, 16)
	assert.Equal(t, "09:00", out[0].Slots[0])
	assert.Equal(t, "16:30", out[0].Slots[15])
}

func TestAvailabilitySkipsOccupied(t *testing.T) {
	f := newFixture(t)
	f.occupy(10, 0, 60, domain.StatusConfirmed)
	f.occupy(14, 0, 30, domain.StatusCanceled)

	out, err := NewGetAvailability(f.repo, WithClock(fixedNow)).Execute(context.Background(), f.availabilityInput())
	require.NoError(t, err)
	require.Len(t, out, 1)

	slots := out[0].Slots
	assert.Len(t, slots, 14)
	assert.Contains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "11:00")
	assert.Contains(t, slots, "14:00")
}

func TestAvailabilityBarberFilter(t *testing.T) {
	f := newFixture(t)
	uc := NewGetAvailability(f.repo, WithClock(fixedNow))

	in := f.availabilityInput()
	in.BarberID = f.idle.ID
	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, out)

	in.BarberID = 9999
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound), "got %v", err)
}

func TestAvailabilityUnknownService(t *testing.T) {
	f := newFixture(t)
	in := f.availabilityInput()
	in.ServiceID = 9999

	_, err := NewGetAvailability(f.repo, WithClock(fixedNow)).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound), "got %v", err)
}

func TestAvailabilityDayOffIsEmpty(t *testing.T) {
	f := newFixture(t)
	in := f.availabilityInput()
	in.Date = time.Date(2025, 10, 16, 0, 0, 0, 0, wednesday(0, 0).Location())

	out, err := NewGetAvailability(f.repo, WithClock(fixedNow)).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAvailabilityTodaySkipsPast(t *testing.T) {
	f := newFixture(t)
	now := func() time.Time { return wednesday(15, 10) }

	out, err := NewGetAvailability(f.repo, WithClock(now)).Execute(context.Background(), f.availabilityInput())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"15:30", "16:00", "16:30"}, out[0].Slots)
}

func TestAvailabilityCacheInvalidatedByBooking(t *testing.T) {
	f := newFixture(t)
	ac := NewAvailabilityCache(cache.NewMemory(), time.Minute)

	avail := NewGetAvailability(f.repo, WithClock(fixedNow), WithCache(ac))
	book := f.book(WithCache(ac))
	ctx := context.Background()

	first, err := avail.Execute(ctx, f.availabilityInput())
	require.NoError(t, err)
	require.Contains(t, first[0].Slots, "10:00")

	_, err = book.Execute(ctx, f.input("2025-10-15 10:00:00"))
	require.NoError(t, err)

	second, err := avail.Execute(ctx, f.availabilityInput())
	require.NoError(t, err)
	assert.NotContains(t, second[0].Slots, "10:00")
	assert.Len(t, second[0].Slots, 15)
}

// bookingDuringRead reserva um horário logo depois da leitura dos ocupados,
// simulando uma reserva que confirma enquanto a disponibilidade é calculada.
type bookingDuringRead struct {
	*repository.AppointmentMemoryRepository

	onRead func()
	done   bool
}

func (r *bookingDuringRead) ListOccupied(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	apps, err := r.AppointmentMemoryRepository.ListOccupied(ctx, barberID, start, end)
	if err == nil && !r.done {
		r.done = true
		r.onRead()
	}
	return apps, err
}

func TestAvailabilityIgnoresResultComputedAcrossInvalidation(t *testing.T) {
	f := newFixture(t)
	ac := NewAvailabilityCache(cache.NewMemory(), time.Minute)
	ctx := context.Background()

	book := f.book(WithCache(ac))
	repo := &bookingDuringRead{AppointmentMemoryRepository: f.repo}
	repo.onRead = func() {
		_, err := book.Execute(ctx, f.input("2025-10-15 09:00:00"))
		require.NoError(t, err)
	}

	stale, err := NewGetAvailability(repo, WithClock(fixedNow), WithCache(ac)).Execute(ctx, f.availabilityInput())
	require.NoError(t, err)
	require.Contains(t, stale[0].Slots, "09:00")

	fresh, err := NewGetAvailability(f.repo, WithClock(fixedNow), WithCache(ac)).Execute(ctx, f.availabilityInput())
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.NotContains(t, fresh[0].Slots, "09:00")
	assert.Len(t, fresh[0].Slots, 15)
}

func TestAvailabilityCachedResultDropsPastSlots(t *testing.T) {
	f := newFixture(t)
	ac := NewAvailabilityCache(cache.NewMemory(), time.Minute)

	now := wednesday(8, 0)
	clock := func() time.Time { return now }
	uc := NewGetAvailability(f.repo, WithClock(clock), WithCache(ac))

	_, err := uc.Execute(context.Background(), f.availabilityInput())
	require.NoError(t, err)

	now = wednesday(16, 0)
	out, err := uc.Execute(context.Background(), f.availabilityInput())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"16:30"}, out[0].Slots)
}
