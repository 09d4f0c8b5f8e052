package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestBarberAgenda(t *testing.T) {
	f := newFixture(t)
	f.occupy(15, 0, 30, domain.StatusConfirmed)
	f.occupy(9, 0, 30, domain.StatusPending)
	f.occupy(11, 0, 30, domain.StatusCanceled)
	f.repo.PutAppointment(models.Appointment{
		ClientID: f.client.ID, BarberID: f.barber.ID, ServiceID: f.express.ID,
		StartTime: wednesday(9, 0).AddDate(0, 1, 0), EndTime: wednesday(9, 30).AddDate(0, 1, 0),
		Status: string(domain.StatusPending),
	})

	uc := NewListBarberAgenda(f.repo)
	ctx := context.Background()

	all, err := uc.Execute(ctx, f.barber.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-10-15 09:00:00", all[0].StartTime)
	assert.Equal(t, "2025-10-15 15:00:00", all[1].StartTime)
	assert.Equal(t, "Ana", all[0].ClientName)
	assert.Equal(t, "Corte Express", all[0].ServiceName)

	day, err := uc.ByDate(ctx, f.barber.ID, wednesday(13, 0))
	require.NoError(t, err)
	assert.Len(t, day, 2)

	month, err := uc.ByMonth(ctx, f.barber.ID, 2025, time.November)
	require.NoError(t, err)
	require.Len(t, month, 1)
	assert.Equal(t, "2025-11-15 09:00:00", month[0].StartTime)
}

func TestClientHistoryIncludesEveryStatus(t *testing.T) {
	f := newFixture(t)
	f.occupy(9, 0, 30, domain.StatusCompleted)
	f.occupy(11, 0, 30, domain.StatusCanceled)
	f.repo.PutAppointment(models.Appointment{
		ClientID: f.other.ID, BarberID: f.barber.ID, ServiceID: f.express.ID,
		StartTime: wednesday(12, 0), EndTime: wednesday(12, 30), Status: string(domain.StatusPending),
	})

	out, err := NewListClientAppointments(f.repo).Execute(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "completed", out[0].Status)
	assert.Equal(t, "canceled", out[1].Status)
	assert.Equal(t, "Barbero David", out[0].BarberName)
}
