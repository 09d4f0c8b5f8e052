package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelAppointment struct {
	changer statusChanger
}

func NewCancelAppointment(repo domain.Repository, opts ...Option) *CancelAppointment {
	return &CancelAppointment{
		changer: statusChanger{repo: repo, opts: newOptions(opts)},
	}
}

// Execute: barbeiro do agendamento ou o próprio cliente. Cancelar libera o horário.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.changer.change(ctx, actor, appointmentID, transition{
		action:      audit.ActionAppointmentCanceled,
		allowClient: true,
		apply:       domain.Cancel,
	})
}
