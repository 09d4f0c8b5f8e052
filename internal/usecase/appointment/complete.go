package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CompleteAppointment struct {
	changer statusChanger
}

func NewCompleteAppointment(repo domain.Repository, opts ...Option) *CompleteAppointment {
	return &CompleteAppointment{
		changer: statusChanger{repo: repo, opts: newOptions(opts)},
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.changer.change(ctx, actor, appointmentID, transition{
		action: audit.ActionAppointmentCompleted,
		apply:  domain.Complete,
	})
}
