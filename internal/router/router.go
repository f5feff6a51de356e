package router

import (
	"database/sql"

	"gym_backend/internal/clock"
	"gym_backend/internal/handlers"
	"gym_backend/internal/middleware"
	"gym_backend/internal/repositories"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, clk *clock.Clock) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	registerRepo := repositories.NewCashRegisterRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	clientService := services.NewClientService(clientRepo, db)
	planService := services.NewPlanService(planRepo, db)
	membershipService := services.NewMembershipService(membershipRepo, clientRepo, clk, db)
	paymentService := services.NewPaymentService(paymentRepo, membershipRepo, planRepo, clientRepo, clk, db)
	attendanceService := services.NewAttendanceService(attendanceRepo, membershipRepo, clientRepo, clk, db)
	registerService := services.NewCashRegisterService(registerRepo, paymentRepo, clk, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService, membershipService)
	planHandler := handlers.NewPlanHandler(planService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, clk)
	registerHandler := handlers.NewCashRegisterHandler(registerService)
	reportHandler := handlers.NewReportHandler(membershipService)

	apiV1 := engine.Group("/api/v1")

	// Public routes
	apiV1.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthRoutes(authenticated, authHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupPlanRoutes(authenticated, planHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupCashRegisterRoutes(authenticated, registerHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
