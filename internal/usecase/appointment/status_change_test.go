package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestResolveActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	barber, err := ResolveActor(ctx, f.repo, f.barberUsr.ID, models.RoleBarber)
	require.NoError(t, err)
	assert.Equal(t, f.barber.ID, barber.BarberID)
	assert.True(t, barber.IsBarber())

	client, err := ResolveActor(ctx, f.repo, f.client.ID, models.RoleClient)
	require.NoError(t, err)
	assert.False(t, client.IsBarber())

	_, err = ResolveActor(ctx, f.repo, f.client.ID, models.RoleBarber)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "got %v", err)
}

func TestConfirmThenComplete(t *testing.T) {
	f := newFixture(t)
	ap := f.occupy(10, 0, 30, domain.StatusPending)
	ctx := context.Background()

	confirmed, err := NewConfirmAppointment(f.repo, WithClock(fixedNow)).Execute(ctx, f.barberActor(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	completed, err := NewCompleteAppointment(f.repo, WithClock(fixedNow)).Execute(ctx, f.barberActor(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, fixedNow(), *completed.CompletedAt)

	stored, err := f.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestStatusChangeRejections(t *testing.T) {
	f := newFixture(t)
	pending := f.occupy(10, 0, 30, domain.StatusPending)
	ctx := context.Background()

	clientActor := Actor{UserID: f.client.ID}
	otherBarber := Actor{UserID: 999, BarberID: f.idle.ID}

	_, err := NewConfirmAppointment(f.repo).Execute(ctx, clientActor, pending.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "client cannot confirm: %v", err)

	_, err = NewConfirmAppointment(f.repo).Execute(ctx, otherBarber, pending.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "foreign barber: %v", err)

	_, err = NewCompleteAppointment(f.repo).Execute(ctx, f.barberActor(), pending.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "complete from pending: %v", err)

	_, err = NewCancelAppointment(f.repo).Execute(ctx, Actor{UserID: f.other.ID}, pending.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "other client: %v", err)

	_, err = NewCancelAppointment(f.repo).Execute(ctx, f.barberActor(), 9999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound), "missing: %v", err)

	stored, _ := f.repo.GetAppointment(ctx, pending.ID)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestClientCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.book().Execute(ctx, f.input("2025-10-15 10:00:00"))
	require.NoError(t, err)

	canceled, err := NewCancelAppointment(f.repo, WithClock(fixedNow)).Execute(ctx, Actor{UserID: f.client.ID}, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), canceled.Status)
	require.NotNil(t, canceled.CanceledAt)

	_, err = NewCancelAppointment(f.repo).Execute(ctx, Actor{UserID: f.client.ID}, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), "double cancel: %v", err)

	_, err = f.book().Execute(ctx, f.input("2025-10-15 10:00:00"))
	assert.NoError(t, err)
}

func TestCancelPaidAppointmentMarksRefund(t *testing.T) {
	f := newFixture(t)
	paid := f.repo.PutAppointment(models.Appointment{
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceID:     f.express.ID,
		StartTime:     wednesday(10, 0),
		EndTime:       wednesday(10, 30),
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: string(domain.PaymentConfirmed),
	})

	out, err := NewCancelAppointment(f.repo).Execute(context.Background(), f.barberActor(), paid.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), out.Status)
	assert.Equal(t, string(domain.PaymentRefundPending), out.PaymentStatus)
}

func TestStatusChangeIsAudited(t *testing.T) {
	f := newFixture(t)
	ap := f.occupy(10, 0, 30, domain.StatusPending)

	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink)

	_, err := NewConfirmAppointment(f.repo, WithAudit(dispatcher)).Execute(context.Background(), f.barberActor(), ap.ID)
	require.NoError(t, err)

	dispatcher.Close()
	assert.Equal(t, []string{audit.ActionAppointmentConfirmed}, sink.actions())
}
