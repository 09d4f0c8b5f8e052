package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type DomicilioAddress struct {
	Street  string
	City    string
	Zip     string
	Details string
}

const (
	maxStreetLen  = 255
	maxZipLen     = 50
	maxDetailsLen = 1000
)

// ValidateDomicilio roda antes de abrir qualquer transação.
func ValidateDomicilio(
	addr *DomicilioAddress,
	service *models.Service,
	allowedCities []string,
) error {

	if addr == nil {
		return nil
	}

	if !service.IsDomicilio {
		return httperr.ErrBusinessDetail(httperr.CodeDomicilioIneligible, "service")
	}

	if strings.TrimSpace(addr.Street) == "" {
		return httperr.ErrBusinessDetail(httperr.CodeDomicilioIneligible, "address_street")
	}
	if !cityAllowed(addr.City, allowedCities) {
		return httperr.ErrBusinessDetail(httperr.CodeDomicilioIneligible, "address_city")
	}

	if len(addr.Street) > maxStreetLen {
		return httperr.ErrBusinessDetail(httperr.CodeValidation, "address_street")
	}
	if len(addr.Zip) > maxZipLen {
		return httperr.ErrBusinessDetail(httperr.CodeValidation, "address_zip")
	}
	if len(addr.Details) > maxDetailsLen {
		return httperr.ErrBusinessDetail(httperr.CodeValidation, "address_details")
	}

	return nil
}

func cityAllowed(city string, allowed []string) bool {
	for _, c := range allowed {
		if city == c {
			return true
		}
	}
	return false
}

// ApplyDomicilio copia o endereço para o agendamento; sem endereço os campos ficam nulos.
func ApplyDomicilio(ap *models.Appointment, addr *DomicilioAddress) {
	if addr == nil {
		ap.IsDomicilio = false
		return
	}

	ap.IsDomicilio = true
	ap.AddressStreet = strPtr(addr.Street)
	ap.AddressCity = strPtr(addr.City)
	if addr.Zip != "" {
		ap.AddressZip = strPtr(addr.Zip)
	}
	if addr.Details != "" {
		ap.AddressDetails = strPtr(addr.Details)
	}
}

func strPtr(s string) *string {
	return &s
}
