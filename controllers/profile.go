package controllers

import (
	"errors"
	"net/http"
	"pulse-backend/config"
	"pulse-backend/services"
	"pulse-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

func GetProfile(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	account, err := svc.GetAccount(accountUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":               account.Name,
		"email":              account.Email,
		"currency":           account.Currency,
		"subscriptionStatus": account.SubscriptionStatus,
		"totalCustomers":     account.TotalCustomers,
		"totalOrders":        account.TotalOrders,
		"totalSales":         account.TotalSales,
	})
}

func UpdateProfile(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	svc := services.NewSalesService(config.DB)
	account, err := svc.GetAccount(accountUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	// Update fields
	if input.Name != "" {
		account.Name = input.Name
	}
	if input.Email != "" {
		account.Email = input.Email
	}
	if input.Currency != "" {
		account.Currency = input.Currency
	}

	if err := config.DB.Model(&account).Updates(map[string]interface{}{
		"name":     account.Name,
		"email":    account.Email,
		"currency": account.Currency,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpgradePlan moves the account to premium, lifting the free plan limits.
func UpgradePlan(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	if err := svc.UpgradePlan(accountUUID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upgrade plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account upgraded to Premium"})
}

// DeleteAccount removes the account and everything it owns. Not reversible.
func DeleteAccount(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	if err := svc.DeleteAccount(accountUUID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	// Expire the auth cookie
	c.SetCookie("token", "", -1, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
