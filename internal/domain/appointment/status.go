package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentConfirmed     PaymentStatus = "confirmed"
	PaymentRefundPending PaymentStatus = "refund_pending"
)

// ActiveStatuses ocupam horário na agenda do barbeiro.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
