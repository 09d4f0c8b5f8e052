package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var cities = []string{"Puerto Ordaz", "San Felix"}

// terça 2025-10-14 12:00; a quarta seguinte é o dia de trabalho dos testes
func fixedNow() time.Time {
	return time.Date(2025, 10, 14, 12, 0, 0, 0, timezone.Location())
}

func wednesday(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, timezone.Location())
}

type fixture struct {
	repo *repository.AppointmentMemoryRepository

	client    models.User
	other     models.User
	barber    models.Barber
	barberUsr models.User
	idle      models.Barber
	express   models.Service
	domicilio models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository(time.Second)
	f := &fixture{repo: repo}

	f.client = repo.AddUser(models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleClient})
	f.other = repo.AddUser(models.User{Name: "Luis", Email: "luis@example.com", Role: models.RoleClient})
	f.barberUsr = repo.AddUser(models.User{Name: "Barbero David", Email: "david@example.com", Role: models.RoleBarber, PhotoPath: "barbers/david.webp"})
	idleUsr := repo.AddUser(models.User{Name: "Barbero Sin Agenda", Email: "idle@example.com", Role: models.RoleBarber})

	f.barber = repo.AddBarber(models.Barber{UserID: f.barberUsr.ID})
	f.idle = repo.AddBarber(models.Barber{UserID: idleUsr.ID})

	f.express = repo.AddService(models.Service{Name: "Corte Express", DurationMinutes: 30})
	f.domicilio = repo.AddService(models.Service{Name: "Corte a Domicílio", DurationMinutes: 60, IsDomicilio: true})

	repo.PutSchedule(models.BarberSchedule{BarberID: f.barber.ID, DayOfWeek: "Wednesday", StartTime: "09:00:00", EndTime: "17:00:00"})
	repo.PutSchedule(models.BarberSchedule{BarberID: f.barber.ID, DayOfWeek: "Thursday", IsDayOff: true})

	return f
}

func (f *fixture) occupy(h, m, minutes int, status domain.Status) models.Appointment {
	start := wednesday(h, m)
	return f.repo.PutAppointment(models.Appointment{
		ClientID:      f.client.ID,
		BarberID:      f.barber.ID,
		ServiceID:     f.express.ID,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(minutes) * time.Minute),
		Status:        string(status),
		PaymentStatus: string(domain.PaymentPending),
	})
}

func (f *fixture) barberActor() Actor {
	return Actor{UserID: f.barberUsr.ID, BarberID: f.barber.ID}
}

// flakyRepo falha as primeiras transações com err antes de delegar.
type flakyRepo struct {
	*repository.AppointmentMemoryRepository

	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (r *flakyRepo) InBarberTx(
	ctx context.Context,
	barberID uint,
	fn func(ctx context.Context, tx domain.BookingTx) error,
) error {

	r.mu.Lock()
	r.calls++
	fail := r.failures > 0
	if fail {
		r.failures--
	}
	r.mu.Unlock()

	if fail {
		return r.err
	}
	return r.AppointmentMemoryRepository.InBarberTx(ctx, barberID, fn)
}

// recordingSink guarda os eventos de auditoria.
type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}
