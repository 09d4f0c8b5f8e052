package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo   domain.Repository
	reader audit.Reader
}

func NewAuditLogsHandler(repo domain.Repository, reader audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, reader: reader}
}

// GET /api/barber/audit-logs?action=&entity=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	barber, err := h.repo.GetBarberByUser(ctx, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeForbidden))
		return
	}

	from, _, err := parseDateQuery(c, "from")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, hasTo, err := parseDateQuery(c, "to")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if hasTo {
		// inclusivo: até o fim do dia informado
		to = to.AddDate(0, 0, 1)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	q := audit.Query{
		BarberID: barber.ID,
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		From:     from,
		To:       to,
		Page:     page,
		Limit:    limit,
	}.Normalize()

	logs, total, err := h.reader.List(ctx, q)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}
