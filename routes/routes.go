package routes

import (
	"clearview-backend/config"
	"clearview-backend/controllers"
	"clearview-backend/middleware"
	"clearview-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.Static("/uploads", cfg.UploadDir)

	lifecycle := services.NewLifecycle(db)
	scheduler := services.NewScheduler(db)

	authController := &controllers.AuthController{DB: db, Cfg: cfg}
	pricingController := &controllers.PricingController{DB: db}
	customerController := &controllers.CustomerController{DB: db, Lifecycle: lifecycle}
	jobController := &controllers.JobController{DB: db, Scheduler: scheduler, Cfg: cfg}
	adminController := &controllers.AdminController{DB: db}

	authenticated := middleware.Authenticate(db, cfg.JWTSecret)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/me", authenticated, authController.Me)
	}

	// Pricing is public: canvassers quote at the door before logging anything.
	pricing := r.Group("/api/pricing")
	{
		pricing.GET("", pricingController.GetPricingTiers)
		pricing.POST("/calculate", pricingController.CalculatePrice)
	}

	api := r.Group("/api")
	api.Use(authenticated)
	{
		customers := api.Group("/customers")
		{
			customers.GET("", customerController.GetCustomers)
			customers.POST("", customerController.CreateCustomer)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.POST("/:id/pause", customerController.PauseCustomer)
			customers.POST("/:id/resume", customerController.ResumeCustomer)
			customers.POST("/:id/cancel", customerController.CancelCustomer)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobController.GetJobs)
			jobs.GET("/today", jobController.GetTodaysJobs)
			jobs.PUT("/:id/complete", jobController.CompleteJob)
			jobs.PUT("/:id/skip", jobController.SkipJob)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("/users", adminController.GetUsers)
			admin.POST("/users", adminController.CreateUser)
			admin.PUT("/users/:id", adminController.UpdateUser)
			admin.GET("/stats", adminController.GetStats)
		}

		api.GET("/cleaners", adminController.GetCleaners)
	}

	return r
}
