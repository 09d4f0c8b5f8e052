package httperr

import "errors"

// Códigos de negócio expostos ao cliente em "error_code".
const (
	CodeValidation          = "validation_error"
	CodeBarberNotFound      = "barber_not_found"
	CodeServiceNotFound     = "service_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeSlotTaken           = "slot_taken"
	CodeDomicilioIneligible = "domicilio_ineligible"
	CodeInvalidState        = "invalid_state"
	CodeForbidden           = "forbidden"
)

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
