package services

import (
	"testing"

	"pulse-backend/models"

	"github.com/google/uuid"
)

func order(customer uuid.UUID, price float64, status string) models.Order {
	return models.Order{CustomerID: customer, Price: price, Status: status}
}

func TestOrderCreatedDelta(t *testing.T) {
	cust := uuid.New()

	d := OrderCreated(order(cust, 100, models.OrderPending))
	if d.Orders != 1 || d.Sales != 0 {
		t.Fatalf("pending create: orders=%d sales=%v", d.Orders, d.Sales)
	}
	if cd := d.ByCustomer[cust]; cd.Orders != 1 || cd.Spent != 0 {
		t.Fatalf("pending create customer delta: %+v", cd)
	}

	d = OrderCreated(order(cust, 100, models.OrderPaid))
	if d.Orders != 1 || d.Sales != 100 {
		t.Fatalf("paid create: orders=%d sales=%v", d.Orders, d.Sales)
	}
	if cd := d.ByCustomer[cust]; cd.Orders != 1 || cd.Spent != 100 {
		t.Fatalf("paid create customer delta: %+v", cd)
	}
}

func TestOrderDeletedMirrorsCreated(t *testing.T) {
	cust := uuid.New()
	o := order(cust, 250, models.OrderPaid)

	created := OrderCreated(o)
	deleted := OrderDeleted(o)

	if deleted.Orders != -created.Orders || deleted.Sales != -created.Sales {
		t.Fatalf("delete is not the inverse of create: %+v vs %+v", deleted, created)
	}
	cc, dc := created.ByCustomer[cust], deleted.ByCustomer[cust]
	if dc.Orders != -cc.Orders || dc.Spent != -cc.Spent {
		t.Fatalf("customer delta not mirrored: %+v vs %+v", dc, cc)
	}
}

func TestOrderUpdatedSameCustomer(t *testing.T) {
	cust := uuid.New()

	tests := []struct {
		name      string
		old, new  models.Order
		wantSales float64
	}{
		{"pending to paid", order(cust, 100, models.OrderPending), order(cust, 100, models.OrderPaid), 100},
		{"paid to pending", order(cust, 100, models.OrderPaid), order(cust, 100, models.OrderPending), -100},
		{"paid to completed", order(cust, 100, models.OrderPaid), order(cust, 100, models.OrderCompleted), -100},
		{"paid price change", order(cust, 100, models.OrderPaid), order(cust, 150, models.OrderPaid), 50},
		{"pending price change", order(cust, 100, models.OrderPending), order(cust, 150, models.OrderPending), 0},
		{"no change", order(cust, 100, models.OrderPaid), order(cust, 100, models.OrderPaid), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := OrderUpdated(tt.old, tt.new)
			if d.Orders != 0 {
				t.Fatalf("update moved the account order count: %d", d.Orders)
			}
			if d.Sales != tt.wantSales {
				t.Fatalf("sales delta = %v, want %v", d.Sales, tt.wantSales)
			}
			if cd := d.ByCustomer[cust]; cd.Spent != tt.wantSales {
				t.Fatalf("customer spent delta = %v, want %v", cd.Spent, tt.wantSales)
			}
			if cd := d.ByCustomer[cust]; cd.Orders != 0 {
				t.Fatalf("same-customer update moved the customer order count: %d", cd.Orders)
			}
		})
	}
}

func TestOrderUpdatedReassignment(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()

	t.Run("paid order moves between customers", func(t *testing.T) {
		d := OrderUpdated(order(c1, 100, models.OrderPaid), order(c2, 100, models.OrderPaid))
		if d.Sales != 0 {
			t.Fatalf("account sales moved on pure reassignment: %v", d.Sales)
		}
		if cd := d.ByCustomer[c1]; cd.Spent != -100 || cd.Orders != -1 {
			t.Fatalf("old customer delta: %+v", cd)
		}
		if cd := d.ByCustomer[c2]; cd.Spent != 100 || cd.Orders != 1 {
			t.Fatalf("new customer delta: %+v", cd)
		}
	})

	t.Run("reassign with price change while paid", func(t *testing.T) {
		d := OrderUpdated(order(c1, 100, models.OrderPaid), order(c2, 150, models.OrderPaid))
		if d.Sales != 50 {
			t.Fatalf("sales delta = %v, want 50", d.Sales)
		}
		if cd := d.ByCustomer[c1]; cd.Spent != -100 {
			t.Fatalf("old customer spent delta = %v, want -100", cd.Spent)
		}
		if cd := d.ByCustomer[c2]; cd.Spent != 150 {
			t.Fatalf("new customer spent delta = %v, want 150", cd.Spent)
		}
	})

	t.Run("reassign while becoming paid", func(t *testing.T) {
		d := OrderUpdated(order(c1, 100, models.OrderPending), order(c2, 100, models.OrderPaid))
		if d.Sales != 100 {
			t.Fatalf("sales delta = %v, want 100", d.Sales)
		}
		if cd := d.ByCustomer[c1]; cd.Spent != 0 || cd.Orders != -1 {
			t.Fatalf("old customer delta: %+v", cd)
		}
		if cd := d.ByCustomer[c2]; cd.Spent != 100 || cd.Orders != 1 {
			t.Fatalf("new customer delta: %+v", cd)
		}
	})

	t.Run("reassign while unpaid", func(t *testing.T) {
		d := OrderUpdated(order(c1, 100, models.OrderPending), order(c2, 100, models.OrderPending))
		if d.Sales != 0 {
			t.Fatalf("sales delta = %v, want 0", d.Sales)
		}
		if cd := d.ByCustomer[c1]; cd.Spent != 0 || cd.Orders != -1 {
			t.Fatalf("old customer delta: %+v", cd)
		}
		if cd := d.ByCustomer[c2]; cd.Spent != 0 || cd.Orders != 1 {
			t.Fatalf("new customer delta: %+v", cd)
		}
	})
}

func TestCustomerRemovedDelta(t *testing.T) {
	cust := uuid.New()
	orders := []models.Order{
		order(cust, 100, models.OrderPaid),
		order(cust, 40, models.OrderPending),
		order(cust, 60, models.OrderPaid),
		order(cust, 30, models.OrderCompleted),
	}

	d := CustomerRemoved(orders)
	if d.Customers != -1 {
		t.Fatalf("customers delta = %d, want -1", d.Customers)
	}
	if d.Orders != -4 {
		t.Fatalf("orders delta = %d, want -4", d.Orders)
	}
	if d.Sales != -160 {
		t.Fatalf("sales delta = %v, want -160 (only Paid orders)", d.Sales)
	}
}

func TestCustomerCreatedDelta(t *testing.T) {
	d := CustomerCreated()
	if d.Customers != 1 || d.Orders != 0 || d.Sales != 0 {
		t.Fatalf("unexpected delta: %+v", d)
	}
}

func TestDeltaIsZero(t *testing.T) {
	if !newDelta().IsZero() {
		t.Fatal("fresh delta should be zero")
	}
	d := newDelta()
	d.customer(uuid.New(), 0, 0.01)
	if d.IsZero() {
		t.Fatal("delta with customer spend should not be zero")
	}
}
