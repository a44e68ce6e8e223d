package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"payroll-backend/internal/auth"
	"payroll-backend/internal/config"
	"payroll-backend/internal/database"
	"payroll-backend/internal/db"
	"payroll-backend/internal/handlers"
	"payroll-backend/internal/health"
	h "payroll-backend/internal/http"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/repositories"
	"payroll-backend/internal/services"
	"payroll-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := logger.Init(cfg.Server.Development); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	pool := db.Connect(cfg)
	defer pool.Close()

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)
	referenceRepo := repositories.NewReferenceRepository(pool)
	payrollRepo := repositories.NewPayrollRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)

	// Initialize services
	resolverService := services.NewResolverService(referenceRepo)
	provisioningService := services.NewProvisioningService(userRepo, employeeRepo, resolverService)
	payrollService := services.NewPayrollService(payrollRepo, employeeRepo, settingRepo)
	settingService := services.NewSettingService(settingRepo)
	authService := services.NewAuthService(userRepo, jwtManager)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(provisioningService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	settingHandler := handlers.NewSettingHandler(settingService)
	referenceHandler := handlers.NewReferenceHandler(resolverService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		employeeHandler,
		payrollHandler,
		settingHandler,
		referenceHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
