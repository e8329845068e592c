package services

import (
	"fmt"

	"pulse-backend/models"
)

// FreePlanLimit is the maximum number of customers and of orders a free
// account may hold. Premium accounts are unlimited.
const FreePlanLimit = 10

type EntityKind string

const (
	KindCustomer EntityKind = "customer"
	KindOrder    EntityKind = "order"
)

// CanCreate decides whether the account may create one more entity of the
// given kind. Pure decision, no side effects; the sales service enforces the
// same rule again with a conditional write when it applies the increment.
func CanCreate(account models.Account, kind EntityKind) error {
	if account.SubscriptionStatus == models.PlanPremium {
		return nil
	}

	var count int
	switch kind {
	case KindCustomer:
		count = account.TotalCustomers
	case KindOrder:
		count = account.TotalOrders
	default:
		return fmt.Errorf("unknown entity kind: %s", kind)
	}

	if count >= FreePlanLimit {
		return fmt.Errorf("%w: upgrade to add more %ss", ErrQuotaExceeded, kind)
	}
	return nil
}
