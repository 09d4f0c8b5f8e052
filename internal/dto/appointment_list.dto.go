package dto

import (
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Horários saem no formato local "YYYY-MM-DD HH:MM:SS", sem fuso.
type AppointmentListDTO struct {
	ID            uint    `json:"id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	ClientName    string  `json:"client_name,omitempty"`
	BarberName    string  `json:"barber_name,omitempty"`
	ServiceName   string  `json:"service_name"`
	IsDomicilio   bool    `json:"is_domicilio"`
	AddressStreet *string `json:"address_street,omitempty"`
	AddressCity   *string `json:"address_city,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		StartTime:     timezone.FormatDateTime(ap.StartTime),
		EndTime:       timezone.FormatDateTime(ap.EndTime),
		Status:        ap.Status,
		PaymentStatus: ap.PaymentStatus,
		ClientName:    ap.Client.Name,
		BarberName:    ap.Barber.User.Name,
		ServiceName:   ap.Service.Name,
		IsDomicilio:   ap.IsDomicilio,
		AddressStreet: ap.AddressStreet,
		AddressCity:   ap.AddressCity,
	}
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
