package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Whatsapp string `gorm:"not null"`
	Notes    string

	// TotalSpent only counts this customer's Paid orders.
	TotalOrders int     `gorm:"default:0"`
	TotalSpent  float64 `gorm:"type:decimal(12,2);default:0.0"`

	Orders []Order `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
