package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

// GET /api/me
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.repo.GetUser(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		_ = c.Error(err)
		httperr.Respond(c, err)
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"photo_path": user.PhotoPath,
			"role":       user.Role,
		},
	}

	if user.Role == models.RoleBarber {
		if b, err := h.repo.GetBarberByUser(ctx, user.ID); err == nil {
			resp["barber"] = gin.H{
				"id":  b.ID,
				"bio": b.Bio,
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
