package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
}

// List sempre serializa data como array, nunca null.
func List[T any](c *gin.Context, message string, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Message: message,
		Data:    data,
		Total:   len(data),
	})
}
