package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "herbaldesk/internal/adapters/web"
	"herbaldesk/internal/app"
	"herbaldesk/internal/cache"
	"herbaldesk/internal/core"
	"herbaldesk/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	c, err := cache.FromEnv(ctx)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if c == nil {
		log.Println("REDIS_ADDR not set, storefront cache disabled")
	} else {
		defer c.Close()
	}

	notificationService := core.NewNotificationService(pool)
	catalogService := core.NewCatalogService(pool)
	offerService := core.NewOfferService(pool)
	orderService := core.NewOrderService(pool, notificationService)
	employeeService := core.NewEmployeeService(pool)
	expenseService := core.NewExpenseService(pool)
	reportingService := core.NewReportingService(orderService, expenseService)

	svc := app.NewAppService(app.Services{
		Catalog:       catalogService,
		Offers:        offerService,
		Orders:        orderService,
		Employees:     employeeService,
		Expenses:      expenseService,
		Notifications: notificationService,
		Reporting:     reportingService,
	}, c)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
