package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ConfirmAppointment struct {
	changer statusChanger
}

func NewConfirmAppointment(repo domain.Repository, opts ...Option) *ConfirmAppointment {
	return &ConfirmAppointment{
		changer: statusChanger{repo: repo, opts: newOptions(opts)},
	}
}

// Execute: só o barbeiro do agendamento confirma, e só a partir de pending.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.changer.change(ctx, actor, appointmentID, transition{
		action: audit.ActionAppointmentConfirmed,
		apply: func(ap *models.Appointment, _ time.Time) error {
			return domain.Confirm(ap)
		},
	})
}
