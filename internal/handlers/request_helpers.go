package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"medidex/internal/service"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondBindError turns a ShouldBindJSON failure into a 400 naming the
// offending fields when the binding tags produced field errors.
func respondBindError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		respondWithError(c, http.StatusBadRequest, route, "invalid body")
		return
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := lowerCamel(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", field))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", field))
		}
	}

	log.Printf("[%s] returning error 400: validation failed (%v)", route, details)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": details,
	})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondServiceError maps service-level errors onto the HTTP taxonomy.
// Anything unrecognized is logged and reported generically.
func respondServiceError(c *gin.Context, route string, err error) {
	switch {
	case service.IsValidation(err):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, service.ErrAccountInactive):
		respondWithError(c, http.StatusForbidden, route, err.Error())
	case service.IsAuth(err):
		respondWithError(c, http.StatusUnauthorized, route, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, "not found")
	default:
		log.Printf("[%s] internal error: %v", route, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
