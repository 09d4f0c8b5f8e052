package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

// ListClientAppointments: histórico completo do cliente, qualquer status.
type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(repo domain.Repository) *ListClientAppointments {
	return &ListClientAppointments{repo: repo}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		ClientID: clientID,
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments of client %d: %w", clientID, err)
	}
	return dto.FromAppointments(apps), nil
}
