package audit

import (
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger grava eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	row := models.AuditLog{
		ActorID:  ev.ActorID,
		BarberID: ev.BarberID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encodeMetadata(ev.Metadata),
	}

	return l.db.Create(&row).Error
}

// SlogSink registra eventos só no log estruturado (modo memória).
type SlogSink struct {
	log *slog.Logger
}

func NewSlogSink(log *slog.Logger) *SlogSink {
	return &SlogSink{log: log}
}

func (s *SlogSink) Log(ev Event) error {
	s.log.Info("audit",
		slog.String("action", ev.Action),
		slog.String("entity", ev.Entity),
		slog.Any("entity_id", ev.EntityID),
		slog.Any("actor_id", ev.ActorID),
		slog.Any("barber_id", ev.BarberID),
		slog.String("metadata", encodeMetadata(ev.Metadata)),
	)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
