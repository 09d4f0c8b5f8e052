package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// DayName devolve o nome usado em barber_schedules.day_of_week ("Monday"...).
func DayName(t time.Time) string {
	return t.Weekday().String()
}

func IsValidDayName(day string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return true
		}
	}
	return false
}

// ParseClock aceita HH:MM ou HH:MM:SS e devolve o deslocamento desde a meia-noite.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock %q", s)
}

// Jornada resolve o expediente do barbeiro na data de day.
// ok=false quando não há linha, é folga ou os horários são inválidos.
func Jornada(s *models.BarberSchedule, day time.Time) (Interval, bool) {
	if s == nil || s.IsDayOff {
		return Interval{}, false
	}

	startOff, err := ParseClock(s.StartTime)
	if err != nil {
		return Interval{}, false
	}
	endOff, err := ParseClock(s.EndTime)
	if err != nil || endOff <= startOff {
		return Interval{}, false
	}

	return Interval{
		Start: OnDay(day, startOff),
		End:   OnDay(day, endOff),
	}, true
}

// OnDay monta o horário de parede off na data de day. Somar off à meia-noite
// erra em uma hora nos dias de troca de horário de verão.
func OnDay(day time.Time, off time.Duration) time.Time {
	h := int(off / time.Hour)
	m := int(off % time.Hour / time.Minute)
	sec := int(off % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, day.Location())
}

// IsWithinJornada: o intervalo inteiro cabe no expediente.
func IsWithinJornada(s *models.BarberSchedule, slot Interval) bool {
	j, ok := Jornada(s, slot.Start)
	if !ok {
		return false
	}
	return !slot.Start.Before(j.Start) && !slot.End.After(j.End)
}

// ValidateWeek garante no máximo uma linha por dia e start < end fora das folgas.
func ValidateWeek(rows []models.BarberSchedule) error {
	seen := make(map[string]bool, len(rows))

	for _, r := range rows {
		if !IsValidDayName(r.DayOfWeek) {
			return httperr.ErrBusinessDetail(httperr.CodeValidation, "day_of_week")
		}
		if seen[r.DayOfWeek] {
			return httperr.ErrBusinessDetail(httperr.CodeValidation, "duplicated day_of_week "+r.DayOfWeek)
		}
		seen[r.DayOfWeek] = true

		if r.IsDayOff {
			continue
		}

		start, err := ParseClock(r.StartTime)
		if err != nil {
			return httperr.ErrBusinessDetail(httperr.CodeValidation, "start_time")
		}
		end, err := ParseClock(r.EndTime)
		if err != nil {
			return httperr.ErrBusinessDetail(httperr.CodeValidation, "end_time")
		}
		if end <= start {
			return httperr.ErrBusinessDetail(httperr.CodeValidation, "start_time must be before end_time")
		}
	}
	return nil
}
