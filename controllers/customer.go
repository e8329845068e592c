package controllers

import (
	"errors"
	"net/http"
	"pulse-backend/config"
	"pulse-backend/services"
	"pulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Whatsapp string `json:"whatsapp" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateCustomer creates a new customer for the account, subject to the plan
// quota.
func CreateCustomer(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateWhatsapp(input.Whatsapp) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid WhatsApp number format")
		return
	}

	svc := services.NewSalesService(config.DB)
	customer, err := svc.AddCustomer(accountUUID, services.CustomerInput{
		Name:     input.Name,
		Whatsapp: input.Whatsapp,
		Notes:    input.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			utils.RespondWithError(c, http.StatusForbidden,
				"You have reached the customers limit on the Free plan. Go to Settings to upgrade to Premium for unlimited customers.")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the account
func GetCustomers(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	customers, err := svc.ListCustomers(accountUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// DeleteCustomer removes a customer and all of its orders
func DeleteCustomer(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	svc := services.NewSalesService(config.DB)
	if err := svc.DeleteCustomer(accountUUID, customerUUID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// accountFromContext pulls the authenticated account id set by the auth
// middleware. Writes the error response itself on failure.
func accountFromContext(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get("accountId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in context")
		return uuid.Nil, false
	}

	accountUUID, err := uuid.Parse(accountID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID format")
		return uuid.Nil, false
	}
	return accountUUID, true
}
