package router

import (
	"gym_backend/internal/handlers"
	"gym_backend/internal/middleware"
	"gym_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authenticated auth routes: profile, password
// rotation, and admin-only user management.
func SetupAuthRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := authenticatedGroup.Group("/auth")
	{
		authRoutes.GET("/me", authHandler.GetProfile)
		authRoutes.POST("/change-password", authHandler.ChangePassword)

		userRoutes := authRoutes.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.GET("", authHandler.GetUsers)
			userRoutes.POST("", authHandler.CreateUser)
			userRoutes.PATCH("/:id", authHandler.UpdateUser)
			userRoutes.DELETE("/:id", authHandler.DeleteUser)
		}
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	clientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
		clientRoutes.GET("/:id/membership", clientHandler.GetClientMembership)
		clientRoutes.POST("/:id/token", clientHandler.GetClientCheckInToken)
	}
}

// SetupPlanRoutes sets up the membership plan routes. Reads are open to all
// staff, mutations are admin only.
func SetupPlanRoutes(authenticatedGroup *gin.RouterGroup, planHandler *handlers.PlanHandler) {
	planRoutes := authenticatedGroup.Group("/plans")
	planRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		planRoutes.GET("", planHandler.GetPlans)
		planRoutes.GET("/:id", planHandler.GetPlanByID)
	}

	planAdminRoutes := authenticatedGroup.Group("/plans")
	planAdminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		planAdminRoutes.POST("", planHandler.CreatePlan)
		planAdminRoutes.PUT("/:id", planHandler.UpdatePlan)
		planAdminRoutes.DELETE("/:id", planHandler.DeletePlan)
	}
}

// SetupPaymentRoutes sets up the payment routes.
func SetupPaymentRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payments")
	paymentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		paymentRoutes.POST("", paymentHandler.RecordPayment)
		paymentRoutes.GET("/today", paymentHandler.GetPaymentsToday)
	}
}

// SetupAttendanceRoutes sets up the attendance routes.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	attendanceRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		attendanceRoutes.POST("", attendanceHandler.RegisterEntry)
		attendanceRoutes.POST("/token", attendanceHandler.RegisterEntryByToken)
		attendanceRoutes.POST("/exit", attendanceHandler.RegisterExit)
		attendanceRoutes.GET("/today", attendanceHandler.GetEntriesToday)
	}
}

// SetupCashRegisterRoutes sets up the cash register closing routes.
func SetupCashRegisterRoutes(authenticatedGroup *gin.RouterGroup, registerHandler *handlers.CashRegisterHandler) {
	registerRoutes := authenticatedGroup.Group("/cash-closings")
	registerRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		registerRoutes.POST("", registerHandler.CloseRegister)
		registerRoutes.GET("", registerHandler.GetClosings)
		registerRoutes.GET("/:date", registerHandler.GetClosing)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleCashier))
	{
		reportRoutes.GET("/expirations", reportHandler.GetUpcomingExpirations)
	}
}
