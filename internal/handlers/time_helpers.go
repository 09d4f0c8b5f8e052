package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// --------------------------------------------------
// Parâmetros de data/hora em query e path
// --------------------------------------------------

// parseDateQuery lê ?key=YYYY-MM-DD no fuso da aplicação; ok=false sem o parâmetro.
func parseDateQuery(c *gin.Context, key string) (time.Time, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false, nil
	}

	d, err := timezone.ParseDate(raw)
	if err != nil {
		return time.Time{}, true, httperr.ErrBusinessDetail(httperr.CodeValidation, key)
	}
	return d, true, nil
}

// parseMonthQuery lê ?month=YYYY-MM.
func parseMonthQuery(c *gin.Context, key string) (int, time.Month, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, 0, false, nil
	}

	m, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, true, httperr.ErrBusinessDetail(httperr.CodeValidation, key)
	}
	return m.Year(), m.Month(), true, nil
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.ErrBusinessDetail(httperr.CodeValidation, "id")
	}
	return uint(id), nil
}

func bindError(err error) error {
	return httperr.ErrBusinessDetail(httperr.CodeValidation, err.Error())
}
