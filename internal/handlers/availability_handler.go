package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(availability *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

type AvailabilityQuery struct {
	Date      string `form:"date" binding:"required,localdate"`
	ServiceID uint   `form:"service_id" binding:"required"`
	BarberID  uint   `form:"barber_id"`
}

// GET /api/barbers/schedule?date=YYYY-MM-DD&service_id=N[&barber_id=N]
func (h *AvailabilityHandler) Schedule(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Respond(c, bindError(err))
		return
	}

	date, err := timezone.ParseDate(q.Date)
	if err != nil {
		httperr.Respond(c, httperr.ErrBusinessDetail(httperr.CodeValidation, "date"))
		return
	}

	availability, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  q.BarberID,
		ServiceID: q.ServiceID,
		Date:      date,
	})
	if err != nil {
		_ = c.Error(err)
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Disponibilidade obtida com sucesso.",
		"date":         date.Format(timezone.DateLayout),
		"availability": availability,
	})
}
