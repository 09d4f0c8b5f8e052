package models

import "time"

const (
	RoleClient = "client"
	RoleBarber = "barber"
	RoleAdmin  = "admin"
)

// Conta emitida pelo serviço de autenticação; aqui só é lida.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	PhotoPath string `gorm:"size:255" json:"photo_path"`
	Role      string `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
