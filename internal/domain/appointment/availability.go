package appointment

import (
	"sort"
	"time"
)

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps: [a,b) e [c,d) colidem sse a < d && b > c.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

type AvailabilityInput struct {
	BarberID  uint // zero: todos os barbeiros
	ServiceID uint
	Date      time.Time
}

type BarberAvailability struct {
	BarberID  uint     `json:"barber_id"`
	Name      string   `json:"name"`
	PhotoPath string   `json:"photo_path"`
	Slots     []string `json:"slots"`
}

// ComputeSlots percorre a jornada [workStart, workEnd) com passo duration.
// Ao colidir com um intervalo ocupado o cursor salta para o fim dele, o que
// empacota os horários livres em volta dos agendamentos existentes.
// Só entram horários com início estritamente depois de now.
func ComputeSlots(
	workStart time.Time,
	workEnd time.Time,
	duration time.Duration,
	occupied []Interval,
	now time.Time,
) []time.Time {

	if duration <= 0 || !workStart.Before(workEnd) {
		return nil
	}

	busy := make([]Interval, len(occupied))
	copy(busy, occupied)
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	var slots []time.Time
	cursor := workStart

	for {
		candidate := Interval{Start: cursor, End: cursor.Add(duration)}
		if candidate.End.After(workEnd) {
			break
		}

		if blocker, ok := firstOverlap(candidate, busy); ok {
			// blocker.End > cursor, então o laço sempre avança
			cursor = blocker.End
			continue
		}

		if candidate.Start.After(now) {
			slots = append(slots, candidate.Start)
		}
		cursor = candidate.End
	}

	return slots
}

// busy precisa estar ordenado por início.
func firstOverlap(candidate Interval, busy []Interval) (Interval, bool) {
	for _, b := range busy {
		if !b.Start.Before(candidate.End) {
			break
		}
		if candidate.Overlaps(b) {
			return b, true
		}
	}
	return Interval{}, false
}

func FormatClocks(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}
	return out
}
