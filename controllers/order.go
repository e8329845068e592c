// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"pulse-backend/config"
	"pulse-backend/models"
	"pulse-backend/services"
	"pulse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderInput defines the expected JSON structure for creating or updating an
// order. Updates send the full record, like the original client did.
type OrderInput struct {
	CustomerID uuid.UUID  `json:"customerId" binding:"required"`
	Product    string     `json:"product" binding:"required"`
	Price      float64    `json:"price" binding:"min=0"`
	Status     string     `json:"status" binding:"required,oneof=Pending Paid Completed"`
	Date       *time.Time `json:"date"`
}

func (in OrderInput) toService() services.OrderInput {
	return services.OrderInput{
		CustomerID: in.CustomerID,
		Product:    in.Product,
		Price:      in.Price,
		Status:     in.Status,
		Date:       in.Date,
	}
}

// CreateOrder creates a new order for the account, subject to the plan quota.
func CreateOrder(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewSalesService(config.DB)
	order, err := svc.AddOrder(accountUUID, input.toService())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuotaExceeded):
			utils.RespondWithError(c, http.StatusForbidden,
				"You have reached the orders limit on the Free plan. Go to Settings to upgrade to Premium for unlimited orders.")
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders retrieves all orders for the account
func GetOrders(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	svc := services.NewSalesService(config.DB)
	orders, err := svc.ListOrders(accountUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrder rewrites an order; sales totals follow the status/price/customer
// transition.
func UpdateOrder(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewSalesService(config.DB)
	order, err := svc.UpdateOrder(accountUUID, orderUUID, input.toService())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order and rolls its contribution out of the totals
func DeleteOrder(c *gin.Context) {
	accountUUID, ok := accountFromContext(c)
	if !ok {
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	svc := services.NewSalesService(config.DB)
	if err := svc.DeleteOrder(accountUUID, orderUUID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// allowedStatuses documents the accepted order states for API consumers.
var allowedStatuses = []string{models.OrderPending, models.OrderPaid, models.OrderCompleted}

// GetOrderStatuses lists the valid order status values.
func GetOrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statuses": allowedStatuses})
}
