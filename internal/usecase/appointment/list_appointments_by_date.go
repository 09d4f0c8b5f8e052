package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListBarberAgenda devolve os agendamentos ativos do barbeiro em ordem de início.
type ListBarberAgenda struct {
	repo domain.Repository
}

func NewListBarberAgenda(repo domain.Repository) *ListBarberAgenda {
	return &ListBarberAgenda{repo: repo}
}

func (uc *ListBarberAgenda) Execute(
	ctx context.Context,
	barberID uint,
) ([]dto.AppointmentListDTO, error) {

	return uc.period(ctx, barberID, time.Time{}, time.Time{})
}

// ByDate restringe ao dia de date.
func (uc *ListBarberAgenda) ByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := timezone.StartOfDay(date)
	return uc.period(ctx, barberID, start, start.AddDate(0, 0, 1))
}

// ByMonth restringe ao mês informado.
func (uc *ListBarberAgenda) ByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month time.Month,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, month, 1, 0, 0, 0, 0, timezone.Location())
	return uc.period(ctx, barberID, start, start.AddDate(0, 1, 0))
}

func (uc *ListBarberAgenda) period(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		BarberID: barberID,
		Statuses: domain.ActiveStatuses,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, fmt.Errorf("list agenda of barber %d: %w", barberID, err)
	}
	return dto.FromAppointments(apps), nil
}
