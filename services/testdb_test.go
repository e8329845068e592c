package services

import (
	"fmt"
	"strings"
	"testing"

	"pulse-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Customer{},
		&models.Order{},
		&models.PaymentReminderLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, plan string) models.Account {
	t.Helper()

	account := models.Account{
		Email:              fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password:           "secret123",
		Name:               "Pulse Test Shop",
		Currency:           "₦",
		SubscriptionStatus: plan,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id interface{}) models.Account {
	t.Helper()

	var account models.Account
	if err := db.First(&account, "id = ?", id).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return account
}

func reloadCustomer(t *testing.T, db *gorm.DB, id interface{}) models.Customer {
	t.Helper()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", id).Error; err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	return customer
}
