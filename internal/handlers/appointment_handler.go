package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo domain.Repository

	book     *ucAppointment.BookAppointment
	confirm  *ucAppointment.ConfirmAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment
	agenda   *ucAppointment.ListBarberAgenda
	history  *ucAppointment.ListClientAppointments
}

func NewAppointmentHandler(
	repo domain.Repository,
	book *ucAppointment.BookAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	agenda *ucAppointment.ListBarberAgenda,
	history *ucAppointment.ListClientAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:     repo,
		book:     book,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		agenda:   agenda,
		history:  history,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required,localdatetime"`

	IsDomicilio    bool   `json:"is_domicilio"`
	AddressStreet  string `json:"address_street"`
	AddressCity    string `json:"address_city"`
	AddressZip     string `json:"address_zip"`
	AddressDetails string `json:"address_details"`
}

// ======================================================
// CREATE
// ======================================================

// POST /api/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, bindError(err))
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		ClientID:  middleware.UserID(c),
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		Domicilio: ucAppointment.DomicilioFromRequest(
			req.IsDomicilio,
			req.AddressStreet,
			req.AddressCity,
			req.AddressZip,
			req.AddressDetails,
		),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Agendamento criado com sucesso. Aguardando confirmação.",
		"appointment_id": ap.ID,
	})
}

// ======================================================
// LISTS
// ======================================================

// GET /api/appointments/mine
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	out, err := h.history.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.List(c, "Lista de agendamentos obtida com sucesso.", out)
}

// GET /api/barber/appointments[?date=YYYY-MM-DD | ?month=YYYY-MM]
func (h *AppointmentHandler) ListBarberAgenda(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	date, hasDate, err := parseDateQuery(c, "date")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	year, month, hasMonth, err := parseMonthQuery(c, "month")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var out []dto.AppointmentListDTO
	switch {
	case hasDate:
		out, err = h.agenda.ByDate(ctx, actor.BarberID, date)
	case hasMonth:
		out, err = h.agenda.ByMonth(ctx, actor.BarberID, year, month)
	default:
		out, err = h.agenda.Execute(ctx, actor.BarberID)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.List(c, "Lista de agendamentos obtida com sucesso.", out)
}

// ======================================================
// STATUS
// ======================================================

// PATCH /api/barber/appointments/:id/confirm
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm.Execute, "Agendamento confirmado.")
}

// PATCH /api/barber/appointments/:id/complete
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete.Execute, "Agendamento concluído.")
}

// PATCH /api/barber/appointments/:id/cancel e /api/appointments/mine/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel.Execute, "Agendamento cancelado.")
}

type statusFn func(ctx context.Context, actor ucAppointment.Actor, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) changeStatus(c *gin.Context, run statusFn, message string) {
	id, err := parseIDParam(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"appointment": dto.FromAppointment(*ap),
	})
}

// ======================================================
// HELPERS
// ======================================================

// actor resolve o barbeiro do usuário logado; escreve a resposta quando falha.
func (h *AppointmentHandler) actor(c *gin.Context) (ucAppointment.Actor, bool) {
	actor, err := ucAppointment.ResolveActor(
		c.Request.Context(),
		h.repo,
		middleware.UserID(c),
		middleware.UserRole(c),
	)
	if err != nil {
		h.fail(c, err)
		return ucAppointment.Actor{}, false
	}
	return actor, true
}

func (h *AppointmentHandler) fail(c *gin.Context, err error) {
	if _, ok := httperr.AsBusiness(err); !ok {
		_ = c.Error(err)
	}
	httperr.Respond(c, err)
}
