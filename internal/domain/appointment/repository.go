package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentFilter struct {
	BarberID uint
	ClientID uint
	Statuses []Status

	// janela opcional sobre start_time: [From, To)
	From time.Time
	To   time.Time
}

type Repository interface {
	Transactor

	// -------- User --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetBarberByUser(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	ListBarbers(
		ctx context.Context,
	) ([]models.Barber, error)

	// -------- Schedule --------
	// (nil, nil) quando não existe linha para o dia
	GetSchedule(
		ctx context.Context,
		barberID uint,
		day string,
	) (*models.BarberSchedule, error)

	ListSchedules(
		ctx context.Context,
		barberID uint,
	) ([]models.BarberSchedule, error)

	ReplaceSchedules(
		ctx context.Context,
		barberID uint,
		rows []models.BarberSchedule,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// Ativos sobrepostos a [start, end), sem trava; leitura consultiva.
	ListOccupied(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f AppointmentFilter,
	) ([]models.Appointment, error)
}

// Transactor abre uma transação serializada por barbeiro: nenhuma outra
// InBarberTx do mesmo barbeiro roda enquanto fn não terminar.
// Um erro retornado por fn desfaz tudo e volta inalterado.
type Transactor interface {
	InBarberTx(
		ctx context.Context,
		barberID uint,
		fn func(ctx context.Context, tx BookingTx) error,
	) error
}

type BookingTx interface {
	GetSchedule(
		ctx context.Context,
		barberID uint,
		day string,
	) (*models.BarberSchedule, error)

	// Trava (FOR UPDATE) as linhas encontradas quando lock=true.
	FindOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		statuses []Status,
		lock bool,
	) ([]models.Appointment, error)

	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
