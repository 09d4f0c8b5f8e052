package repository

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// SeedDemo popula o modo memória com um barbeiro, um cliente e dois serviços.
func SeedDemo(r *AppointmentMemoryRepository) {
	barberUser := r.AddUser(models.User{
		Name:  "Barbero David",
		Email: "david.barber@example.com",
		Phone: "584121112233",
		Role:  models.RoleBarber,
	})
	r.AddUser(models.User{
		Name:  "Cliente Demo",
		Email: "cliente@example.com",
		Role:  models.RoleClient,
	})

	barber := r.AddBarber(models.Barber{
		UserID: barberUser.ID,
		Bio:    "Especialista em cortes modernos e degradês.",
	})

	r.AddService(models.Service{
		Name:            "Corte Express",
		Description:     "Corte rápido na máquina.",
		Price:           8.50,
		DurationMinutes: 30,
	})
	r.AddService(models.Service{
		Name:            "Corte a Domicílio",
		Description:     "Corte completo no endereço do cliente.",
		Price:           20,
		DurationMinutes: 60,
		IsDomicilio:     true,
	})

	for d := time.Monday; d <= time.Saturday; d++ {
		r.PutSchedule(models.BarberSchedule{
			BarberID:  barber.ID,
			DayOfWeek: d.String(),
			StartTime: "09:00:00",
			EndTime:   "17:00:00",
		})
	}
	r.PutSchedule(models.BarberSchedule{
		BarberID:  barber.ID,
		DayOfWeek: time.Sunday.String(),
		IsDayOff:  true,
	})
}
