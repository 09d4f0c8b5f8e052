package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// WorkingHoursHandler expõe a jornada semanal do barbeiro logado.
type WorkingHoursHandler struct {
	repo    domain.Repository
	replace *ucSchedule.ReplaceWeek
}

func NewWorkingHoursHandler(repo domain.Repository, replace *ucSchedule.ReplaceWeek) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo, replace: replace}
}

type WorkingDayConfig struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"omitempty,clock"`
	EndTime   string `json:"end_time" binding:"omitempty,clock"`
	IsDayOff  bool   `json:"is_day_off"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

// GET /api/barber/schedules
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barber, ok := h.barber(c)
	if !ok {
		return
	}

	week, err := ucSchedule.Week(c.Request.Context(), h.repo, barber.ID)
	if err != nil {
		_ = c.Error(err)
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": week})
}

// PUT /api/barber/schedules
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barber, ok := h.barber(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, bindError(err))
		return
	}

	days := make([]ucSchedule.Day, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, ucSchedule.Day{
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsDayOff:  d.IsDayOff,
		})
	}

	week, err := h.replace.Execute(c.Request.Context(), middleware.UserID(c), barber.ID, days)
	if err != nil {
		if _, ok := httperr.AsBusiness(err); !ok {
			_ = c.Error(err)
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Jornada atualizada.",
		"schedules": week,
	})
}

func (h *WorkingHoursHandler) barber(c *gin.Context) (*models.Barber, bool) {
	b, err := h.repo.GetBarberByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeForbidden))
		return nil, false
	}
	return b, true
}
