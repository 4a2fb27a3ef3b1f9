package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medidex/internal/config"
	"medidex/internal/database"
	"medidex/internal/handlers"
	"medidex/internal/middleware"
	"medidex/internal/notify"
	"medidex/internal/service"
	"medidex/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureStaffIndexes(db); err != nil {
		log.Printf("⚠️ staff index warning: %v", err)
	}
	if err := database.EnsureMedicineIndexes(db); err != nil {
		log.Printf("⚠️ medicine index warning: %v", err)
	}

	notifier := notify.FromConfig(config.AppEnv)

	orderSvc := service.NewOrderService(store.NewMongoOrders(db), notifier)
	staffSvc := service.NewStaffService(
		store.NewMongoStaff(db),
		config.AppEnv.OwnerKey,
		config.AppEnv.JWTSecret,
		config.AppEnv.TokenTTL,
	)
	medicines := store.NewMongoMedicines(db)

	bootCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := staffSvc.EnsureDefaultAdmin(bootCtx); err != nil {
		log.Printf("⚠️ default admin bootstrap warning: %v", err)
	}
	cancel()

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig()))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/api/orders", handlers.CreateOrder(orderSvc))
	r.GET("/api/orders", handlers.GetOrdersByKey(orderSvc, config.AppEnv.OwnerKey))
	r.GET("/api/orders/:id", handlers.GetOrder(orderSvc))

	r.POST("/api/admin/login", handlers.OwnerLogin(staffSvc))
	r.POST("/api/admin/staff-login", handlers.StaffLogin(staffSvc))

	secret := config.AppEnv.JWTSecret
	guard := func(op middleware.Operation) gin.HandlerFunc {
		return middleware.AuthGuard(secret, staffSvc, op)
	}

	admin := r.Group("/api/admin")
	{
		admin.GET("/verify", guard(middleware.OpOrdersRead), handlers.Verify())

		admin.GET("/orders", guard(middleware.OpOrdersRead), handlers.ListOrders(orderSvc))
		admin.PUT("/orders/:id/status", guard(middleware.OpOrdersStatus), handlers.UpdateOrderStatus(orderSvc))

		admin.GET("/medicines", guard(middleware.OpOrdersRead), handlers.GetMedicines(medicines))
		admin.POST("/medicines", guard(middleware.OpMedicinesWrite), handlers.CreateMedicine(medicines))
		admin.PUT("/medicines/:id", guard(middleware.OpMedicinesWrite), handlers.UpdateMedicine(medicines))
		admin.PUT("/medicines/:id/toggle-stock", guard(middleware.OpMedicinesWrite), handlers.ToggleMedicineStock(medicines))
		admin.DELETE("/medicines/:id", guard(middleware.OpMedicinesDelete), handlers.DeleteMedicine(medicines))

		admin.GET("/users", guard(middleware.OpStaffManage), handlers.GetUsers(staffSvc))
		admin.POST("/users", guard(middleware.OpStaffManage), handlers.CreateUser(staffSvc))
		admin.PUT("/users/:id", guard(middleware.OpStaffManage), handlers.UpdateUser(staffSvc))
		admin.PUT("/users/:id/toggle-active", guard(middleware.OpStaffManage), handlers.ToggleUserActive(staffSvc))

		admin.GET("/test-notification", guard(middleware.OpNotifyTest), handlers.TestNotification(notifier))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

// corsConfig allows the configured origins, or everything when none are
// configured. Requests without an Origin header bypass CORS entirely.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Accept", "Origin", "Authorization", "X-Request-Id"}
	cfg.MaxAge = 24 * time.Hour

	if len(config.AppEnv.CORSOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = config.AppEnv.CORSOrigins
	}
	return cfg
}
