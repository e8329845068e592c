// controllers/report.go
package controllers

import (
	"net/http"
	"pulse-backend/config"
	"pulse-backend/models"
	"pulse-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue float64           `json:"currentMonthRevenue"`
	MonthGrowth         float64           `json:"monthGrowth"`
	CurrentYearRevenue  float64           `json:"currentYearRevenue"`
	YearGrowth          float64           `json:"yearGrowth"`
	TopCustomers        []CustomerSummary `json:"topCustomers"`
	QuickStats          QuickStatistics   `json:"quickStats"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalOrders    int     `json:"totalOrders"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
}

// GetReportAnalytics returns revenue growth figures and top customers
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	firstOfMonth := utils.BeginningOfMonth(now)
	firstOfYear := utils.BeginningOfYear(now)

	currentMonthRevenue, err := rc.getRevenue(accountUUID, firstOfMonth, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := rc.getRevenue(accountUUID,
		firstOfMonth.AddDate(0, -1, 0), firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(accountUUID, firstOfYear, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := rc.getRevenue(accountUUID,
		firstOfYear.AddDate(-1, 0, 0), firstOfYear)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	// Top customers straight off the denormalized counters
	var top []models.Customer
	if err := config.DB.Where("account_id = ?", accountUUID).
		Order("total_spent DESC").Limit(5).Find(&top).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}
	topCustomers := make([]CustomerSummary, 0, len(top))
	for _, customer := range top {
		topCustomers = append(topCustomers, CustomerSummary{
			Name:   customer.Name,
			Orders: customer.TotalOrders,
			Spent:  customer.TotalSpent,
		})
	}

	var account models.Account
	if err := config.DB.First(&account, "id = ?", accountUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load account")
		return
	}

	var paidOrders int64
	config.DB.Model(&models.Order{}).
		Where("account_id = ? AND status = ?", accountUUID, models.OrderPaid).
		Count(&paidOrders)

	avgOrderValue := 0.0
	if paidOrders > 0 {
		avgOrderValue = account.TotalSales / float64(paidOrders)
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue: currentMonthRevenue,
		MonthGrowth:         growth(currentMonthRevenue, lastMonthRevenue),
		CurrentYearRevenue:  currentYearRevenue,
		YearGrowth:          growth(currentYearRevenue, lastYearRevenue),
		TopCustomers:        topCustomers,
		QuickStats: QuickStatistics{
			TotalCustomers: account.TotalCustomers,
			TotalOrders:    account.TotalOrders,
			AvgOrderValue:  avgOrderValue,
		},
	}

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) getRevenue(accountID uuid.UUID, from, to time.Time) (float64, error) {
	var revenue float64
	err := config.DB.Model(&models.Order{}).
		Where("account_id = ? AND status = ? AND date >= ? AND date < ?",
			accountID, models.OrderPaid, from, to).
		Select("COALESCE(SUM(price), 0)").Scan(&revenue).Error
	return revenue, err
}

func growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
