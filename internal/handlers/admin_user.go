package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medidex/internal/service"
)

// GetUsers lists staff accounts. ADMIN only (enforced by the route policy).
func GetUsers(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := staff.List(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": list})
	}
}

func CreateUser(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/users"
		defer handlePanic(c, route)

		var input service.CreateStaffInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		acct, err := staff.Create(ctx, input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[STAFF] [INFO] account created:", acct.Email)
		c.JSON(http.StatusCreated, gin.H{"user": acct})
	}
}

func UpdateUser(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/users/:id"
		defer handlePanic(c, route)

		var input service.UpdateStaffInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		acct, err := staff.Update(ctx, c.Param("id"), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": acct})
	}
}

// ToggleUserActive deactivates or reactivates an account.
func ToggleUserActive(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/users/:id/toggle-active"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		acct, err := staff.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[STAFF] [INFO] account %s active=%t", acct.Email, acct.IsActive)
		c.JSON(http.StatusOK, gin.H{"user": acct})
	}
}
