package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"column:user_id;index" json:"user_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	BarberID uint   `gorm:"index:idx_appointments_barber_start,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	PaymentMethodID *uint `json:"payment_method_id"`

	// timestamp sem fuso: relógio de parede local
	StartTime time.Time `gorm:"type:timestamp;not null;index:idx_appointments_barber_start,priority:2" json:"start_time"`
	EndTime   time.Time `gorm:"type:timestamp;not null" json:"end_time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	IsDomicilio    bool    `gorm:"default:false" json:"is_domicilio"`
	AddressStreet  *string `gorm:"size:255" json:"address_street"`
	AddressCity    *string `gorm:"size:100" json:"address_city"`
	AddressZip     *string `gorm:"size:50" json:"address_zip"`
	AddressDetails *string `gorm:"type:text" json:"address_details"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) AfterFind(tx *gorm.DB) error {
	a.StartTime = timezone.Wall(a.StartTime)
	a.EndTime = timezone.Wall(a.EndTime)
	return nil
}
