package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medidex/internal/models"
	"medidex/internal/notify"
)

// TestNotification pushes a synthetic order through the fan-out so the
// owner can confirm channel configuration from the settings panel.
func TestNotification(notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/test-notification"
		defer handlePanic(c, route)

		sample := models.Order{
			ID:       primitive.NewObjectID(),
			Name:     "Test Customer",
			Phone:    "+10000000000",
			Location: "Test address",
			Items: []models.OrderItem{
				{ProductID: "test", Name: "Aspirin", Price: 5.99, Quantity: 1},
			},
			Total:     5.99,
			Status:    models.StatusReceived,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		notifier.Dispatch(sample)
		c.JSON(http.StatusOK, gin.H{"message": "test notification dispatched"})
	}
}
