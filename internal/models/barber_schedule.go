package models

import "time"

// Uma linha por (barbeiro, dia da semana). Horários no formato HH:MM ou HH:MM:SS.
type BarberSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID  uint   `gorm:"uniqueIndex:idx_barber_day;not null" json:"barber_id"`
	DayOfWeek string `gorm:"size:10;uniqueIndex:idx_barber_day;not null" json:"day_of_week"`

	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`
	IsDayOff  bool   `gorm:"default:false" json:"is_day_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
