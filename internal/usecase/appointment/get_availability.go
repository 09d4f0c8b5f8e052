package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	opts options
}

func NewGetAvailability(repo domain.Repository, opts ...Option) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		opts: newOptions(opts),
	}
}

// Execute lista, por barbeiro, os horários livres na data para o serviço.
// Barbeiros sem nenhum horário ficam de fora. O resultado é consultivo:
// a reserva confere tudo de novo dentro da transação.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.BarberAvailability, error) {

	in.Date = timezone.StartOfDay(in.Date)
	now := uc.opts.now()

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, httperr.CodeServiceNotFound)
	}
	if service.Duration() <= 0 {
		return nil, httperr.ErrBusinessDetail(httperr.CodeValidation, "service duration")
	}

	cached, cacheKey, ok := uc.opts.cache.Load(ctx, in)
	if ok {
		return dropPast(cached, in.Date, now), nil
	}

	// --------------------------------------------------
	// Barbeiros
	// --------------------------------------------------
	var barbers []models.Barber
	if in.BarberID != 0 {
		b, err := uc.repo.GetBarber(ctx, in.BarberID)
		if err != nil {
			return nil, notFound(err, httperr.CodeBarberNotFound)
		}
		barbers = []models.Barber{*b}
	} else {
		barbers, err = uc.repo.ListBarbers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list barbers: %w", err)
		}
	}

	// --------------------------------------------------
	// Horários por barbeiro
	// --------------------------------------------------
	out := make([]domain.BarberAvailability, 0, len(barbers))
	for _, b := range barbers {
		slots, err := uc.barberSlots(ctx, b.ID, in.Date, service.Duration(), now)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			continue
		}

		out = append(out, domain.BarberAvailability{
			BarberID:  b.ID,
			Name:      b.User.Name,
			PhotoPath: b.User.PhotoPath,
			Slots:     domain.FormatClocks(slots),
		})
	}

	uc.opts.cache.Store(ctx, cacheKey, out)
	return out, nil
}

func (uc *GetAvailability) barberSlots(
	ctx context.Context,
	barberID uint,
	date time.Time,
	duration time.Duration,
	now time.Time,
) ([]time.Time, error) {

	schedule, err := uc.repo.GetSchedule(ctx, barberID, domain.DayName(date))
	if err != nil {
		return nil, fmt.Errorf("schedule of barber %d: %w", barberID, err)
	}

	jornada, ok := domain.Jornada(schedule, date)
	if !ok {
		return nil, nil
	}

	// o dia inteiro, para pegar também agendamentos que atravessam a jornada
	apps, err := uc.repo.ListOccupied(ctx, barberID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("occupied of barber %d: %w", barberID, err)
	}

	occupied := make([]domain.Interval, 0, len(apps))
	for i := range apps {
		occupied = append(occupied, domain.Occupies(&apps[i]))
	}

	return domain.ComputeSlots(jornada.Start, jornada.End, duration, occupied, now), nil
}

// dropPast reaplica "início depois de agora" sobre um resultado vindo do cache.
func dropPast(cached []domain.BarberAvailability, date, now time.Time) []domain.BarberAvailability {
	out := make([]domain.BarberAvailability, 0, len(cached))

	for _, b := range cached {
		kept := make([]string, 0, len(b.Slots))
		for _, s := range b.Slots {
			off, err := domain.ParseClock(s)
			if err != nil || !domain.OnDay(date, off).After(now) {
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			continue
		}

		b.Slots = kept
		out = append(out, b)
	}
	return out
}
