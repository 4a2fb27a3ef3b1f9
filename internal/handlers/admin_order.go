package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medidex/internal/middleware"
	"medidex/internal/models"
	"medidex/internal/service"
)

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders returns every order, most-recent-first, for the dashboard.
func ListOrders(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.List(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

// UpdateOrderStatus applies a status transition and records the acting
// staff member on the order.
func UpdateOrderStatus(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/orders/:id/status"
		defer handlePanic(c, route)

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, route, err)
			return
		}

		actor := ""
		if value, ok := c.Get(middleware.ContextAccount); ok {
			if acct, ok := value.(*models.StaffAccount); ok {
				actor = acct.Email
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.SetStatus(ctx, c.Param("id"), req.Status, actor)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[ORDER] [INFO] status of %s set to %s by %s", order.ID.Hex(), order.Status, actor)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
