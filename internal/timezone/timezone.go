package timezone

import (
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Caracas"

// Formatos trocados com os clientes, sem sufixo de fuso.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ClockLayout    = "15:04"
)

var current atomic.Pointer[time.Location]

func init() {
	current.Store(load(DefaultTimezone))
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault troca o relógio de parede usado pela aplicação inteira.
func SetDefault(tz string) {
	current.Store(load(tz))
}

func Location() *time.Location {
	return current.Load()
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Wall reinterpreta os campos de t no fuso da aplicação (timestamps sem fuso
// voltam do banco marcados como UTC).
func Wall(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		Location(),
	)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location())
}

func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, s, Location())
}

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func load(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.Local
}
