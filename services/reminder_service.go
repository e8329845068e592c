// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"pulse-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// PendingReminderAge is how long an order may sit in Pending before the
// customer gets a WhatsApp nudge.
const PendingReminderAge = 3 * 24 * time.Hour

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Payment reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily payment reminder processing...")

	var accounts []models.Account
	if err := s.db.Find(&accounts).Error; err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return
	}

	for _, account := range accounts {
		s.ProcessAccountReminders(account)
	}

	log.Println("Daily payment reminder processing completed")
}

func (s *ReminderService) ProcessAccountReminders(account models.Account) {
	orders, err := s.stalePendingOrders(account.ID)
	if err != nil {
		log.Printf("Account %s: failed to get pending orders: %v", account.ID, err)
		return
	}

	for _, order := range orders {
		var customer models.Customer
		if err := s.db.First(&customer, "account_id = ? AND id = ?", account.ID, order.CustomerID).Error; err != nil {
			log.Printf("Account %s: no customer for order %s: %v", account.ID, order.ID, err)
			continue
		}
		s.sendReminder(account, customer, order)
	}
}

func (s *ReminderService) stalePendingOrders(accountID uuid.UUID) ([]models.Order, error) {
	cutoff := time.Now().Add(-PendingReminderAge)

	var orders []models.Order
	err := s.db.Where("account_id = ? AND status = ? AND date <= ?",
		accountID, models.OrderPending, cutoff).Find(&orders).Error
	if err != nil {
		return nil, err
	}

	// Skip orders already nudged once.
	reminded := make(map[uuid.UUID]bool)
	var logs []models.PaymentReminderLog
	if err := s.db.Where("account_id = ? AND status = ?", accountID, "sent").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	for _, l := range logs {
		reminded[l.OrderID] = true
	}

	var due []models.Order
	for _, o := range orders {
		if !reminded[o.ID] {
			due = append(due, o)
		}
	}
	return due, nil
}

func (s *ReminderService) sendReminder(account models.Account, customer models.Customer, order models.Order) {
	message := fmt.Sprintf("Hi %s, a friendly reminder from %s: your order for %s (%s%.2f) is still pending payment.",
		customer.Name, account.Name, order.Product, account.Currency, order.Price)

	to := customer.Whatsapp
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Whatsapp, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Whatsapp, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Whatsapp)
	}

	reminderLog := models.PaymentReminderLog{
		AccountID:    account.ID,
		CustomerID:   customer.ID,
		OrderID:      order.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for order %s: %v", order.ID, err)
	}
}
