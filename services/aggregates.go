package services

import (
	"pulse-backend/models"

	"github.com/google/uuid"
)

// CustomerDelta is the adjustment to one customer's denormalized counters.
type CustomerDelta struct {
	Orders int
	Spent  float64
}

// AggregateDelta is the signed adjustment a single mutation applies to the
// account's counters and to the counters of each touched customer.
type AggregateDelta struct {
	Customers int
	Orders    int
	Sales     float64

	ByCustomer map[uuid.UUID]CustomerDelta
}

func newDelta() AggregateDelta {
	return AggregateDelta{ByCustomer: make(map[uuid.UUID]CustomerDelta)}
}

func (d *AggregateDelta) customer(id uuid.UUID, orders int, spent float64) {
	cd := d.ByCustomer[id]
	cd.Orders += orders
	cd.Spent += spent
	d.ByCustomer[id] = cd
}

// IsZero reports whether applying the delta would change nothing.
func (d AggregateDelta) IsZero() bool {
	if d.Customers != 0 || d.Orders != 0 || d.Sales != 0 {
		return false
	}
	for _, cd := range d.ByCustomer {
		if cd.Orders != 0 || cd.Spent != 0 {
			return false
		}
	}
	return true
}

// CustomerCreated: one more live customer, nothing else moves.
func CustomerCreated() AggregateDelta {
	d := newDelta()
	d.Customers = 1
	return d
}

// CustomerRemoved computes the account-level decrements for cascading a
// customer delete over its orders. Per-customer counters die with the row.
func CustomerRemoved(orders []models.Order) AggregateDelta {
	d := newDelta()
	d.Customers = -1
	d.Orders = -len(orders)
	for _, o := range orders {
		if o.Paid() {
			d.Sales -= o.Price
		}
	}
	return d
}

// OrderCreated: count on both account and customer, money only if Paid.
func OrderCreated(o models.Order) AggregateDelta {
	d := newDelta()
	d.Orders = 1
	if o.Paid() {
		d.Sales = o.Price
		d.customer(o.CustomerID, 1, o.Price)
	} else {
		d.customer(o.CustomerID, 1, 0)
	}
	return d
}

// OrderDeleted is the exact inverse of OrderCreated for the stored state.
func OrderDeleted(o models.Order) AggregateDelta {
	d := newDelta()
	d.Orders = -1
	if o.Paid() {
		d.Sales = -o.Price
		d.customer(o.CustomerID, -1, -o.Price)
	} else {
		d.customer(o.CustomerID, -1, 0)
	}
	return d
}

// OrderUpdated computes the delta for an old→new order transition. Order
// counts on the account never move on update; per-customer order counts move
// only when the order is reassigned to a different customer.
func OrderUpdated(old, new models.Order) AggregateDelta {
	d := newDelta()

	switch {
	case !old.Paid() && new.Paid():
		d.Sales = new.Price
	case old.Paid() && !new.Paid():
		d.Sales = -old.Price
	case old.Paid() && new.Paid():
		d.Sales = new.Price - old.Price
	}

	if old.CustomerID == new.CustomerID {
		// Money follows the account-level delta on the one customer.
		if d.Sales != 0 {
			d.customer(new.CustomerID, 0, d.Sales)
		}
		return d
	}

	// Reassignment: remove the old contribution, add the new one. Only the
	// Paid side of each transition carries money.
	if old.Paid() {
		d.customer(old.CustomerID, 0, -old.Price)
	}
	if new.Paid() {
		d.customer(new.CustomerID, 0, new.Price)
	}
	d.customer(old.CustomerID, -1, 0)
	d.customer(new.CustomerID, 1, 0)
	return d
}
