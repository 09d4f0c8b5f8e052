package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint

	// "YYYY-MM-DD HH:MM:SS" no fuso da aplicação
	StartTime string

	// nil: atendimento na barbearia
	Domicilio *domain.DomicilioAddress
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo          domain.Repository
	allowedCities []string
	opts          options
}

func NewBookAppointment(
	repo domain.Repository,
	allowedCities []string,
	opts ...Option,
) *BookAppointment {
	return &BookAppointment{
		repo:          repo,
		allowedCities: allowedCities,
		opts:          newOptions(opts),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Horário
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeValidation, "start_time")
	}
	if !start.After(uc.opts.now()) {
		return nil, httperr.ErrBusinessDetail(httperr.CodeValidation, "start_time must be in the future")
	}

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, httperr.CodeServiceNotFound)
	}
	if service.Duration() <= 0 {
		return nil, httperr.ErrBusinessDetail(httperr.CodeValidation, "service duration")
	}

	// --------------------------------------------------
	// 3️⃣ Barbeiro
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, notFound(err, httperr.CodeBarberNotFound)
	}

	// --------------------------------------------------
	// 4️⃣ Domicílio
	// --------------------------------------------------
	if err := domain.ValidateDomicilio(in.Domicilio, service, uc.allowedCities); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:      in.ClientID,
		BarberID:      in.BarberID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       start.Add(service.Duration()),
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
	}
	domain.ApplyDomicilio(ap, in.Domicilio)

	// --------------------------------------------------
	// 5️⃣ Transação do barbeiro
	// --------------------------------------------------
	err = withRetry(ctx, func() error {
		ap.ID = 0
		return uc.repo.InBarberTx(ctx, in.BarberID, func(ctx context.Context, tx domain.BookingTx) error {
			return commitBooking(ctx, tx, ap)
		})
	})
	if err != nil {
		err = collisionAsSlotTaken(err)
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			uc.opts.dispatch(audit.Event{
				ActorID:  uintPtr(in.ClientID),
				BarberID: uintPtr(in.BarberID),
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				Metadata: map[string]string{"start_time": in.StartTime},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cache + auditoria
	// --------------------------------------------------
	uc.opts.cache.Invalidate(ctx, ap.StartTime)

	uc.opts.dispatch(audit.Event{
		ActorID:  uintPtr(in.ClientID),
		BarberID: uintPtr(in.BarberID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: uintPtr(ap.ID),
	})

	return ap, nil
}

// commitBooking roda com a trava do barbeiro: expediente, colisão e inserção.
func commitBooking(ctx context.Context, tx domain.BookingTx, ap *models.Appointment) error {
	schedule, err := tx.GetSchedule(ctx, ap.BarberID, domain.DayName(ap.StartTime))
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if !domain.IsWithinJornada(schedule, domain.Occupies(ap)) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	conflicts, err := tx.FindOverlapping(
		ctx,
		ap.BarberID,
		ap.StartTime,
		ap.EndTime,
		domain.ActiveStatuses,
		true,
	)
	if err != nil {
		return fmt.Errorf("find overlapping: %w", err)
	}
	if len(conflicts) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	if err := tx.InsertAppointment(ctx, ap); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// withRetry repete uma única vez quando a transação falha por serialização ou deadlock.
func withRetry(ctx context.Context, run func() error) error {
	err := run()
	if !errors.Is(err, domain.ErrTransient) || ctx.Err() != nil {
		return err
	}

	slog.Debug("retrying barber transaction", "err", err)
	return run()
}

// collisionAsSlotTaken: qualquer sinal de disputa pelo horário vira slot_taken.
func collisionAsSlotTaken(err error) error {
	switch {
	case errors.Is(err, domain.ErrTransient),
		errors.Is(err, domain.ErrLockTimeout),
		errors.Is(err, domain.ErrOverlapConstraint):
		return httperr.ErrBusinessDetail(httperr.CodeSlotTaken, err.Error())
	}
	return err
}

// DomicilioFromRequest monta o endereço apenas quando o atendimento é a domicílio.
func DomicilioFromRequest(isDomicilio bool, street, city, zip, details string) *domain.DomicilioAddress {
	if !isDomicilio {
		return nil
	}
	return &domain.DomicilioAddress{
		Street:  street,
		City:    city,
		Zip:     zip,
		Details: details,
	}
}
