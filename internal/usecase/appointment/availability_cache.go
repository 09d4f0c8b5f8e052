package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// generationTTL limita a vida da geração por data; sem ela as entradas somem de vez.
const generationTTL = 24 * time.Hour

// AvailabilityCache guarda listas de horários por (data, serviço, barbeiro).
// Invalidar uma data troca a geração dela, deixando as entradas antigas inacessíveis
// até expirarem pelo TTL.
type AvailabilityCache struct {
	store cache.Cache
	ttl   time.Duration
}

func NewAvailabilityCache(store cache.Cache, ttl time.Duration) *AvailabilityCache {
	if store == nil {
		store = cache.NewNoop()
	}
	return &AvailabilityCache{store: store, ttl: ttl}
}

// Load devolve também a chave lida. Num miss, o resultado calculado deve ir
// para essa chave (via Store): uma invalidação no meio do cálculo troca a
// geração e a entrada gravada nasce inacessível.
func (c *AvailabilityCache) Load(ctx context.Context, in domain.AvailabilityInput) ([]domain.BarberAvailability, string, bool) {
	if c.ttl <= 0 {
		return nil, "", false
	}

	key := c.key(ctx, in)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("availability cache get failed", "err", err)
		return nil, key, false
	}
	if !ok {
		return nil, key, false
	}

	var out []domain.BarberAvailability
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("availability cache decode failed", "err", err)
		return nil, key, false
	}
	return out, key, true
}

func (c *AvailabilityCache) Store(ctx context.Context, key string, result []domain.BarberAvailability) {
	if c.ttl <= 0 || key == "" {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		slog.Warn("availability cache set failed", "err", err)
	}
}

// Invalidate descarta tudo o que foi calculado para o dia de t.
func (c *AvailabilityCache) Invalidate(ctx context.Context, t time.Time) {
	if c.ttl <= 0 {
		return
	}

	gen := uuid.NewString()
	if err := c.store.Set(ctx, generationKey(t), []byte(gen), generationTTL); err != nil {
		slog.Warn("availability cache invalidate failed", "date", t.Format(timezone.DateLayout), "err", err)
	}
}

func (c *AvailabilityCache) key(ctx context.Context, in domain.AvailabilityInput) string {
	return fmt.Sprintf("availability:%s:%s:s%d:b%d",
		in.Date.Format(timezone.DateLayout),
		c.generation(ctx, in.Date),
		in.ServiceID,
		in.BarberID,
	)
}

func (c *AvailabilityCache) generation(ctx context.Context, t time.Time) string {
	raw, ok, err := c.store.Get(ctx, generationKey(t))
	if err == nil && ok {
		return string(raw)
	}

	if err != nil {
		slog.Warn("availability cache generation get failed", "date", t.Format(timezone.DateLayout), "err", err)
	}

	gen := uuid.NewString()
	if err := c.store.Set(ctx, generationKey(t), []byte(gen), generationTTL); err != nil {
		slog.Warn("availability cache generation set failed", "date", t.Format(timezone.DateLayout), "err", err)
	}
	return gen
}

func generationKey(t time.Time) string {
	return "availability:gen:" + t.Format(timezone.DateLayout)
}
