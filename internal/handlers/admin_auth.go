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

type ownerLoginRequest struct {
	Key string `json:"key" binding:"required"`
}

type staffLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func accountJSON(acct *models.StaffAccount) gin.H {
	return gin.H{
		"id":    acct.ID.Hex(),
		"email": acct.Email,
		"name":  acct.Name,
		"role":  acct.Role,
	}
}

// OwnerLogin exchanges the shared owner key for a bearer token.
func OwnerLogin(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/login"
		defer handlePanic(c, route)

		var req ownerLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		token, acct, err := staff.OwnerLogin(ctx, req.Key)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] owner login succeeded")
		c.JSON(http.StatusOK, gin.H{"token": token, "user": accountJSON(acct)})
	}
}

// StaffLogin authenticates a staff email/password pair.
func StaffLogin(staff *service.StaffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/staff-login"
		defer handlePanic(c, route)

		var req staffLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		token, acct, err := staff.Login(ctx, req.Email, req.Password)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[AUTH] [INFO] staff login succeeded:", acct.Email)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": accountJSON(acct)})
	}
}

// Verify confirms the guard accepted the credential and echoes the resolved
// account. The actual validation happens in the AuthGuard middleware.
func Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(middleware.ContextAccount)
		acct, castOK := value.(*models.StaffAccount)
		if !ok || !castOK {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "user": accountJSON(acct)})
	}
}
