// services/reconcile_service.go
package services

import (
	"log"

	"pulse-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileService recounts the denormalized totals from the live rows and
// repairs any drift, e.g. after a manual database edit.
type ReconcileService struct {
	db *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{db: db}
}

func (s *ReconcileService) StartScheduler() {
	c := cron.New()

	// Run weekly, Sunday 3 AM
	c.AddFunc("0 3 * * 0", s.ReconcileAll)

	c.Start()
	log.Println("Aggregate reconcile scheduler started")
}

func (s *ReconcileService) ReconcileAll() {
	log.Println("Starting aggregate reconciliation...")

	var accounts []models.Account
	if err := s.db.Find(&accounts).Error; err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return
	}

	for _, account := range accounts {
		if err := s.ReconcileAccount(account.ID); err != nil {
			log.Printf("Account %s: reconcile failed: %v", account.ID, err)
		}
	}

	log.Println("Aggregate reconciliation completed")
}

// ReconcileAccount recomputes every counter of one account and its customers
// inside a single transaction.
func (s *ReconcileService) ReconcileAccount(accountID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var customerCount, orderCount int64
		if err := tx.Model(&models.Customer{}).Where("account_id = ?", accountID).
			Count(&customerCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("account_id = ?", accountID).
			Count(&orderCount).Error; err != nil {
			return err
		}

		var sales float64
		if err := tx.Model(&models.Order{}).
			Where("account_id = ? AND status = ?", accountID, models.OrderPaid).
			Select("COALESCE(SUM(price), 0)").Scan(&sales).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Account{}).Where("id = ?", accountID).
			Updates(map[string]interface{}{
				"total_customers": customerCount,
				"total_orders":    orderCount,
				"total_sales":     sales,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // account vanished mid-sweep
		}

		var customers []models.Customer
		if err := tx.Where("account_id = ?", accountID).Find(&customers).Error; err != nil {
			return err
		}
		for _, customer := range customers {
			var orders int64
			if err := tx.Model(&models.Order{}).
				Where("account_id = ? AND customer_id = ?", accountID, customer.ID).
				Count(&orders).Error; err != nil {
				return err
			}
			var spent float64
			if err := tx.Model(&models.Order{}).
				Where("account_id = ? AND customer_id = ? AND status = ?",
					accountID, customer.ID, models.OrderPaid).
				Select("COALESCE(SUM(price), 0)").Scan(&spent).Error; err != nil {
				return err
			}

			if int(orders) == customer.TotalOrders && spent == customer.TotalSpent {
				continue
			}
			log.Printf("Account %s: repairing counters for customer %s", accountID, customer.ID)
			if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
				Updates(map[string]interface{}{
					"total_orders": orders,
					"total_spent":  spent,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
