// services/sales_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"pulse-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesService owns every mutation of customers and orders, and keeps the
// denormalized counters on Account and Customer in step with them. Each
// multi-row update runs in a single transaction; the account id is always an
// explicit parameter, never pulled from ambient state.
type SalesService struct {
	db *gorm.DB
}

func NewSalesService(db *gorm.DB) *SalesService {
	return &SalesService{db: db}
}

type CustomerInput struct {
	Name     string
	Whatsapp string
	Notes    string
}

type OrderInput struct {
	CustomerID uuid.UUID
	Product    string
	Price      float64
	Status     string
	Date       *time.Time
}

// GetAccount fetches the account record, counters included.
func (s *SalesService) GetAccount(accountID uuid.UUID) (models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		return account, err
	}
	return account, nil
}

// AddCustomer creates a customer with zeroed counters and bumps the account's
// customer count, subject to the plan quota.
func (s *SalesService) AddCustomer(accountID uuid.UUID, input CustomerInput) (models.Customer, error) {
	customer := models.Customer{
		AccountID: accountID,
		Name:      input.Name,
		Whatsapp:  input.Whatsapp,
		Notes:     input.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, accountID)
		if err != nil {
			return err
		}
		if err := CanCreate(account, KindCustomer); err != nil {
			return err
		}

		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		// Conditional increment; a concurrent create from another session
		// cannot push a free account past the limit.
		res := tx.Model(&models.Account{}).
			Where("id = ? AND (subscription_status = ? OR total_customers < ?)",
				accountID, models.PlanPremium, FreePlanLimit).
			Update("total_customers", gorm.Expr("total_customers + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: upgrade to add more customers", ErrQuotaExceeded)
		}
		return nil
	})
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// ListCustomers returns all live customers of the account.
func (s *SalesService) ListCustomers(accountID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Where("account_id = ?", accountID).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// DeleteCustomer removes the customer and every one of its orders, and takes
// their contributions out of the account counters. All-or-nothing.
func (s *SalesService) DeleteCustomer(accountID, customerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "account_id = ? AND id = ?", accountID, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
			}
			return err
		}

		var orders []models.Order
		if err := tx.Where("account_id = ? AND customer_id = ?", accountID, customerID).
			Find(&orders).Error; err != nil {
			return err
		}

		delta := CustomerRemoved(orders)

		if len(orders) > 0 {
			if err := tx.Where("account_id = ? AND customer_id = ?", accountID, customerID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&customer).Error; err != nil {
			return err
		}

		return applyDelta(tx, accountID, delta)
	})
}

// AddOrder creates an order and bumps the counters on both the account and
// the referenced customer, subject to the plan quota.
func (s *SalesService) AddOrder(accountID uuid.UUID, input OrderInput) (models.Order, error) {
	order := models.Order{
		AccountID:  accountID,
		CustomerID: input.CustomerID,
		Product:    input.Product,
		Price:      input.Price,
		Status:     input.Status,
		Date:       time.Now(),
	}
	if input.Date != nil {
		order.Date = *input.Date
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := loadAccount(tx, accountID)
		if err != nil {
			return err
		}
		if err := CanCreate(account, KindOrder); err != nil {
			return err
		}

		var customer models.Customer
		if err := tx.First(&customer, "account_id = ? AND id = ?", accountID, input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer %s: %w", input.CustomerID, ErrNotFound)
			}
			return err
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_orders": gorm.Expr("total_orders + ?", 1),
		}
		if order.Paid() {
			updates["total_sales"] = gorm.Expr("total_sales + ?", order.Price)
		}
		res := tx.Model(&models.Account{}).
			Where("id = ? AND (subscription_status = ? OR total_orders < ?)",
				accountID, models.PlanPremium, FreePlanLimit).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: upgrade to add more orders", ErrQuotaExceeded)
		}

		customerUpdates := map[string]interface{}{
			"total_orders": gorm.Expr("total_orders + ?", 1),
		}
		if order.Paid() {
			customerUpdates["total_spent"] = gorm.Expr("total_spent + ?", order.Price)
		}
		return tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Updates(customerUpdates).Error
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ListOrders returns all live orders of the account.
func (s *SalesService) ListOrders(accountID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("account_id = ?", accountID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder rewrites the order's fields and shifts the monetary totals for
// the old→new transition, including moving the contribution between customers
// when the order is reassigned.
func (s *SalesService) UpdateOrder(accountID, orderID uuid.UUID, input OrderInput) (models.Order, error) {
	var updated models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var old models.Order
		if err := tx.First(&old, "account_id = ? AND id = ?", accountID, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}

		if input.CustomerID != old.CustomerID {
			var customer models.Customer
			if err := tx.First(&customer, "account_id = ? AND id = ?", accountID, input.CustomerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %s: %w", input.CustomerID, ErrNotFound)
				}
				return err
			}
		}

		updated = old
		updated.CustomerID = input.CustomerID
		updated.Product = input.Product
		updated.Price = input.Price
		updated.Status = input.Status
		if input.Date != nil {
			updated.Date = *input.Date
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", old.ID).
			Updates(map[string]interface{}{
				"customer_id": updated.CustomerID,
				"product":     updated.Product,
				"price":       updated.Price,
				"status":      updated.Status,
				"date":        updated.Date,
			}).Error; err != nil {
			return err
		}

		return applyDelta(tx, accountID, OrderUpdated(old, updated))
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// DeleteOrder removes the order and takes its contribution out of the account
// and customer counters.
func (s *SalesService) DeleteOrder(accountID, orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "account_id = ? AND id = ?", accountID, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}

		if err := tx.Delete(&order).Error; err != nil {
			return err
		}

		return applyDelta(tx, accountID, OrderDeleted(order))
	})
}

// UpgradePlan moves the account to premium. Idempotent.
func (s *SalesService) UpgradePlan(accountID uuid.UUID) error {
	res := s.db.Model(&models.Account{}).Where("id = ?", accountID).
		Update("subscription_status", models.PlanPremium)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return nil
}

// DeleteAccount removes the account and everything it owns in one
// transaction. The account row is the auth identity, so this also revokes
// sign-in; not reversible.
func (s *SalesService) DeleteAccount(accountID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
			}
			return err
		}

		if err := tx.Where("account_id = ?", accountID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", accountID).Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
}

func loadAccount(tx *gorm.DB, accountID uuid.UUID) (models.Account, error) {
	var account models.Account
	if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		return account, err
	}
	return account, nil
}

// applyDelta turns an AggregateDelta into column arithmetic on the account
// row and each touched customer row, inside the caller's transaction.
func applyDelta(tx *gorm.DB, accountID uuid.UUID, delta AggregateDelta) error {
	if delta.IsZero() {
		return nil
	}

	updates := map[string]interface{}{}
	if delta.Customers != 0 {
		updates["total_customers"] = gorm.Expr("total_customers + ?", delta.Customers)
	}
	if delta.Orders != 0 {
		updates["total_orders"] = gorm.Expr("total_orders + ?", delta.Orders)
	}
	if delta.Sales != 0 {
		updates["total_sales"] = gorm.Expr("total_sales + ?", delta.Sales)
	}
	if len(updates) > 0 {
		if err := tx.Model(&models.Account{}).Where("id = ?", accountID).
			Updates(updates).Error; err != nil {
			return err
		}
	}

	for customerID, cd := range delta.ByCustomer {
		cu := map[string]interface{}{}
		if cd.Orders != 0 {
			cu["total_orders"] = gorm.Expr("total_orders + ?", cd.Orders)
		}
		if cd.Spent != 0 {
			cu["total_spent"] = gorm.Expr("total_spent + ?", cd.Spent)
		}
		if len(cu) == 0 {
			continue
		}
		if err := tx.Model(&models.Customer{}).
			Where("account_id = ? AND id = ?", accountID, customerID).
			Updates(cu).Error; err != nil {
			return err
		}
	}
	return nil
}
