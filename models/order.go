package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderPending   = "Pending"
	OrderPaid      = "Paid"
	OrderCompleted = "Completed"
)

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Product string  `gorm:"not null"`
	Price   float64 `gorm:"type:decimal(12,2);not null"`
	Status  string  `gorm:"type:varchar(20);default:'Pending'"`
	Date    time.Time

	gorm.Model
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// Paid reports whether the order contributes to sales totals.
func (o Order) Paid() bool {
	return o.Status == OrderPaid
}
