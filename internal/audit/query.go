package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Query filtra a trilha de um barbeiro. From/To são opcionais sobre created_at: [From, To).
type Query struct {
	BarberID uint
	Action   string
	Entity   string
	From     time.Time
	To       time.Time

	Page  int
	Limit int
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Normalize aplica página 1 e limite 50 (máximo 200).
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > maxLimit {
		q.Limit = defaultLimit
	}
	return q
}

func (q Query) offset() int {
	return (q.Page - 1) * q.Limit
}

type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

// Store é um Sink que também pode ser consultado.
type Store interface {
	Sink
	Reader
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barber_id = ?", q.BarberID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.offset()).
		Find(&logs).Error

	return logs, total, err
}

// MemoryStore mantém os últimos eventos em memória e repassa tudo para o slog.
type MemoryStore struct {
	next *SlogSink

	mu     sync.Mutex
	logs   []models.AuditLog
	lastID uint
	cap    int
	now    func() time.Time
}

func NewMemoryStore(next *SlogSink, capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{next: next, cap: capacity, now: time.Now}
}

func (m *MemoryStore) Log(ev Event) error {
	m.mu.Lock()
	m.lastID++
	m.logs = append(m.logs, models.AuditLog{
		ID:        m.lastID,
		ActorID:   ev.ActorID,
		BarberID:  ev.BarberID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  encodeMetadata(ev.Metadata),
		CreatedAt: m.now(),
	})
	if len(m.logs) > m.cap {
		m.logs = m.logs[len(m.logs)-m.cap:]
	}
	m.mu.Unlock()

	if m.next != nil {
		return m.next.Log(ev)
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	m.mu.Lock()
	var match []models.AuditLog
	for _, l := range m.logs {
		if l.BarberID == nil || *l.BarberID != q.BarberID {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if !q.From.IsZero() && l.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !l.CreatedAt.Before(q.To) {
			continue
		}
		match = append(match, l)
	}
	m.mu.Unlock()

	// mais recentes primeiro
	sort.SliceStable(match, func(i, j int) bool { return match[i].ID > match[j].ID })

	total := int64(len(match))
	start := q.offset()
	if start >= len(match) {
		return []models.AuditLog{}, total, nil
	}
	end := start + q.Limit
	if end > len(match) {
		end = len(match)
	}
	return match[start:end], total, nil
}

var (
	_ Store = (*Logger)(nil)
	_ Store = (*MemoryStore)(nil)
)
