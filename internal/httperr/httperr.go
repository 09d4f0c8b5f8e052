package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

var businessStatus = map[string]int{
	CodeValidation:          http.StatusUnprocessableEntity,
	CodeBarberNotFound:      http.StatusNotFound,
	CodeServiceNotFound:     http.StatusNotFound,
	CodeAppointmentNotFound: http.StatusNotFound,
	CodeOutsideWorkingHours: http.StatusUnprocessableEntity,
	CodeSlotTaken:           http.StatusConflict,
	CodeDomicilioIneligible: http.StatusUnprocessableEntity,
	CodeInvalidState:        http.StatusConflict,
	CodeForbidden:           http.StatusForbidden,
}

var businessMessage = map[string]string{
	CodeValidation:          "Dados inválidos.",
	CodeBarberNotFound:      "Barbeiro não encontrado.",
	CodeServiceNotFound:     "Serviço não encontrado.",
	CodeAppointmentNotFound: "Agendamento não encontrado.",
	CodeOutsideWorkingHours: "Fora do horário de atendimento do barbeiro.",
	CodeSlotTaken:           "O horário selecionado já está reservado. Escolha outro horário.",
	CodeDomicilioIneligible: "Serviço a domicílio indisponível para esta solicitação.",
	CodeInvalidState:        "O agendamento não permite esta operação.",
	CodeForbidden:           "Acesso negado.",
}

// Status devolve o HTTP status de um código de negócio (500 se desconhecido).
func Status(code string) int {
	if s, ok := businessStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Respond escreve err como resposta; erros fora da taxonomia viram 500.
func Respond(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg, ok := businessMessage[be.Code]
	if !ok {
		msg = be.Code
	}

	c.JSON(Status(be.Code), HTTPError{
		Code:    be.Code,
		Message: msg,
		Detail:  be.Detail,
	})
}
