package validators

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Tags usadas nos requests:
//
//	localdatetime  "YYYY-MM-DD HH:MM:SS", sem fuso
//	localdate      "YYYY-MM-DD"
//	clock          "HH:MM" ou "HH:MM:SS"
const (
	TagLocalDateTime = "localdatetime"
	TagLocalDate     = "localdate"
	TagClock         = "clock"
)

// Register instala as tags no validador do gin. Chamar uma vez no boot.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		TagLocalDateTime: isLocalDateTime,
		TagLocalDate:     isLocalDate,
		TagClock:         isClock,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func isLocalDateTime(fl validator.FieldLevel) bool {
	_, err := timezone.ParseDateTime(fl.Field().String())
	return err == nil
}

func isLocalDate(fl validator.FieldLevel) bool {
	_, err := timezone.ParseDate(fl.Field().String())
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	_, err := domain.ParseClock(fl.Field().String())
	return err == nil
}
