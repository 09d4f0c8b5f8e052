package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Day struct {
	DayOfWeek string
	StartTime string
	EndTime   string
	IsDayOff  bool
}

// ReplaceWeek troca a semana inteira do barbeiro. Dias omitidos ficam sem linha,
// ou seja, sem atendimento. Agendamentos já existentes não são tocados.
type ReplaceWeek struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceWeek(repo domain.Repository, dispatcher *audit.Dispatcher) *ReplaceWeek {
	return &ReplaceWeek{repo: repo, audit: dispatcher}
}

func (uc *ReplaceWeek) Execute(
	ctx context.Context,
	actorID uint,
	barberID uint,
	days []Day,
) ([]models.BarberSchedule, error) {

	rows := make([]models.BarberSchedule, 0, len(days))
	for _, d := range days {
		row := models.BarberSchedule{
			BarberID:  barberID,
			DayOfWeek: d.DayOfWeek,
			IsDayOff:  d.IsDayOff,
		}
		if !d.IsDayOff {
			row.StartTime = normalizeClock(d.StartTime)
			row.EndTime = normalizeClock(d.EndTime)
		}
		rows = append(rows, row)
	}

	if err := domain.ValidateWeek(rows); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceSchedules(ctx, barberID, rows); err != nil {
		return nil, fmt.Errorf("replace schedules: %w", err)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:  &actorID,
			BarberID: &barberID,
			Action:   audit.ActionScheduleUpdated,
			Entity:   "barber_schedule",
			Metadata: map[string]int{"days": len(rows)},
		})
	}

	return Week(ctx, uc.repo, barberID)
}

// Week devolve as linhas do barbeiro de domingo a sábado.
func Week(ctx context.Context, repo domain.Repository, barberID uint) ([]models.BarberSchedule, error) {
	rows, err := repo.ListSchedules(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return weekdayIndex(rows[i].DayOfWeek) < weekdayIndex(rows[j].DayOfWeek)
	})
	return rows, nil
}

func weekdayIndex(day string) int {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return int(d)
		}
	}
	return 7
}

// "09:00" vira "09:00:00"; o resto passa como veio para a validação decidir.
func normalizeClock(s string) string {
	off, err := domain.ParseClock(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d:%02d:%02d", int(off.Hours()), int(off.Minutes())%60, int(off.Seconds())%60)
}
