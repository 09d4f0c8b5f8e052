package appointment

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Option ajusta dependências opcionais dos casos de uso.
type Option func(*options)

type options struct {
	now   func() time.Time
	cache *AvailabilityCache
	audit *audit.Dispatcher
}

func newOptions(opts []Option) options {
	o := options{
		now:   timezone.Now,
		cache: NewAvailabilityCache(nil, 0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock troca o relógio (testes).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithCache(c *AvailabilityCache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

func WithAudit(d *audit.Dispatcher) Option {
	return func(o *options) { o.audit = d }
}

func (o options) dispatch(ev audit.Event) {
	if o.audit != nil {
		o.audit.Dispatch(ev)
	}
}

// notFound traduz ErrNotFound do repositório para o código de negócio.
func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func uintPtr(v uint) *uint {
	return &v
}
