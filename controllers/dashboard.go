package controllers

import (
	"net/http"
	"pulse-backend/config"
	"pulse-backend/models"
	"pulse-backend/services"
	"pulse-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers int           `json:"totalCustomers"`
	TotalOrders    int           `json:"totalOrders"`
	TotalSales     float64       `json:"totalSales"`
	Currency       string        `json:"currency"`
	MonthlyRevenue float64       `json:"monthlyRevenue"`
	PendingOrders  int64         `json:"pendingOrders"`
	RecentOrders   []RecentOrder `json:"recentOrders"`
}

type RecentOrder struct {
	Product      string    `json:"product"`
	CustomerName string    `json:"customerName"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// GetDashboardOverview returns the stored account totals plus a few derived
// figures for the home page.
func GetDashboardOverview(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	account, err := svc.GetAccount(accountUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load account")
		return
	}

	// This Month's Revenue (Paid orders only)
	firstOfMonth := utils.BeginningOfMonth(time.Now())
	var monthlyRevenue float64
	config.DB.Model(&models.Order{}).
		Where("account_id = ? AND status = ? AND date >= ?", accountUUID, models.OrderPaid, firstOfMonth).
		Select("COALESCE(SUM(price), 0)").Scan(&monthlyRevenue)

	var pendingOrders int64
	config.DB.Model(&models.Order{}).
		Where("account_id = ? AND status = ?", accountUUID, models.OrderPending).
		Count(&pendingOrders)

	// Recent orders with customer names
	var recentOrders []RecentOrder
	rows, err := config.DB.Raw(`
        SELECT o.product, c.name, o.price, o.status, o.date
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        WHERE o.account_id = ? AND o.deleted_at IS NULL
        ORDER BY o.date DESC
        LIMIT 5
    `, accountUUID).Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var ro RecentOrder
			rows.Scan(&ro.Product, &ro.CustomerName, &ro.Price, &ro.Status, &ro.Date)
			recentOrders = append(recentOrders, ro)
		}
	}

	overview := DashboardOverview{
		TotalCustomers: account.TotalCustomers,
		TotalOrders:    account.TotalOrders,
		TotalSales:     account.TotalSales,
		Currency:       account.Currency,
		MonthlyRevenue: monthlyRevenue,
		PendingOrders:  pendingOrders,
		RecentOrders:   recentOrders,
	}

	c.JSON(http.StatusOK, overview)
}
