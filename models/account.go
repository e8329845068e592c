package models

import (
	"pulse-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`

	Currency           string `gorm:"type:varchar(8);default:'₦'"`
	SubscriptionStatus string `gorm:"type:varchar(20);default:'free'"`

	// Denormalized counters, maintained by the sales service.
	// TotalSales only counts orders with status Paid.
	TotalCustomers int     `gorm:"default:0"`
	TotalOrders    int     `gorm:"default:0"`
	TotalSales     float64 `gorm:"type:decimal(12,2);default:0.0"`

	Customers []Customer `gorm:"foreignKey:AccountID"`
	Orders    []Order    `gorm:"foreignKey:AccountID"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
