package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Actor é quem pede a mudança. BarberID só vem preenchido para barbeiros.
type Actor struct {
	UserID   uint
	BarberID uint
}

func (a Actor) IsBarber() bool {
	return a.BarberID != 0
}

// ResolveActor busca o barbeiro ligado ao usuário quando o papel é barber.
func ResolveActor(ctx context.Context, repo domain.Repository, userID uint, role string) (Actor, error) {
	actor := Actor{UserID: userID}
	if role != models.RoleBarber {
		return actor, nil
	}

	b, err := repo.GetBarberByUser(ctx, userID)
	if err != nil {
		return Actor{}, notFound(err, httperr.CodeForbidden)
	}
	actor.BarberID = b.ID
	return actor, nil
}

type transition struct {
	action      string
	allowClient bool
	apply       func(ap *models.Appointment, now time.Time) error
}

type statusChanger struct {
	repo domain.Repository
	opts options
}

func (s statusChanger) change(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
	t transition,
) (*models.Appointment, error) {

	current, err := s.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}
	if err := authorize(actor, current, t.allowClient); err != nil {
		return nil, err
	}

	var updated *models.Appointment
	err = withRetry(ctx, func() error {
		return s.repo.InBarberTx(ctx, current.BarberID, func(ctx context.Context, tx domain.BookingTx) error {
			ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
			if err != nil {
				return notFound(err, httperr.CodeAppointmentNotFound)
			}
			if err := t.apply(ap, s.opts.now()); err != nil {
				return err
			}
			if err := tx.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
			updated = ap
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.opts.cache.Invalidate(ctx, updated.StartTime)

	s.opts.dispatch(audit.Event{
		ActorID:  uintPtr(actor.UserID),
		BarberID: uintPtr(updated.BarberID),
		Action:   t.action,
		Entity:   "appointment",
		EntityID: uintPtr(updated.ID),
		Metadata: map[string]string{
			"status":         updated.Status,
			"payment_status": updated.PaymentStatus,
		},
	})

	return updated, nil
}

func authorize(actor Actor, ap *models.Appointment, allowClient bool) error {
	if actor.IsBarber() && ap.BarberID == actor.BarberID {
		return nil
	}
	if allowClient && ap.ClientID == actor.UserID {
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeForbidden)
}
