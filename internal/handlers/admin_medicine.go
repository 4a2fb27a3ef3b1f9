package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"medidex/internal/models"
	"medidex/internal/store"
)

type medicineCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"required"`
	StockCount  int     `json:"stockCount"`
}

type medicineUpdateRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	StockCount  *int     `json:"stockCount"`
	InStock     *bool    `json:"inStock"`
}

// GetMedicines lists the catalog for the admin inventory panel.
func GetMedicines(medicines store.MedicineStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/medicines"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := medicines.List(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"medicines": list})
	}
}

func CreateMedicine(medicines store.MedicineStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/medicines"
		defer handlePanic(c, route)

		var req medicineCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, route, err)
			return
		}

		if req.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid price")
			return
		}
		if req.StockCount < 0 {
			respondWithError(c, http.StatusBadRequest, route, "stockCount must be zero or greater")
			return
		}

		med := models.Medicine{
			Name:        strings.TrimSpace(req.Name),
			Category:    strings.TrimSpace(req.Category),
			Description: strings.TrimSpace(req.Description),
			Image:       strings.TrimSpace(req.Image),
			Price:       req.Price,
			InStock:     req.StockCount > 0,
			StockCount:  req.StockCount,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := medicines.Insert(ctx, &med); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[MEDICINE] [INFO] created:", med.ID.Hex())
		c.JSON(http.StatusCreated, med)
	}
}

func UpdateMedicine(medicines store.MedicineStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/medicines/:id"
		defer handlePanic(c, route)

		var req medicineUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		med, err := medicines.Get(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "medicine not found")
			return
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name required")
				return
			}
			med.Name = name
		}
		if req.Category != nil {
			med.Category = strings.TrimSpace(*req.Category)
		}
		if req.Description != nil {
			med.Description = strings.TrimSpace(*req.Description)
		}
		if req.Image != nil {
			med.Image = strings.TrimSpace(*req.Image)
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "invalid price")
				return
			}
			med.Price = *req.Price
		}
		if req.StockCount != nil {
			if *req.StockCount < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stockCount must be zero or greater")
				return
			}
			med.StockCount = *req.StockCount
			med.InStock = *req.StockCount > 0
		}
		if req.InStock != nil {
			med.InStock = *req.InStock
		}

		if err := medicines.Update(ctx, med); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, med)
	}
}

func DeleteMedicine(medicines store.MedicineStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/medicines/:id"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err := medicines.Delete(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "medicine not found")
			return
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[MEDICINE] [INFO] deleted:", c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "medicine deleted"})
	}
}

// ToggleMedicineStock flips the in-stock flag without touching the count,
// mirroring the dashboard's quick toggle.
func ToggleMedicineStock(medicines store.MedicineStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/medicines/:id/toggle-stock"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		med, err := medicines.Get(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "medicine not found")
			return
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		med.InStock = !med.InStock
		if err := medicines.Update(ctx, med); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, med)
	}
}
