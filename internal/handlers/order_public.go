package handlers

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medidex/internal/service"
)

// CreateOrder handles checkout submissions. Totals are recomputed
// server-side; a client-sent total never reaches the stored order.
func CreateOrder(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		var input service.CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Create(ctx, input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order})
	}
}

// GetOrder returns a single order by id.
func GetOrder(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.Get(ctx, c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GetOrdersByKey is the legacy owner listing gated by the shared secret
// query parameter. The bearer-token variant lives under /api/admin.
func GetOrdersByKey(orders *service.OrderService, ownerKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		key := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(ownerKey)) != 1 {
			respondWithError(c, http.StatusUnauthorized, route, "invalid key")
			return
		}

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
