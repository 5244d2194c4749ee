package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/container"
	"github.com/joshua-takyi/staydesk/internal/handlers"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	secure := cfg.IsProduction()
	validate := func(token string) (*helpers.CustomClaims, error) {
		return helpers.ValidateToken(cfg.SupabaseURL, token)
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "staydesk-api",
			})
		})

		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService, secure))
		v1.POST("/logout", handlers.Logout(secure))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(validate, container.UserService, secure, container.Logger))
	protected.GET("/profile", handlers.Profile())

	stays := protected.Group("/stays/:id")
	{
		stays.GET("", handlers.GetStay(container.StayService))
		stays.GET("/timeline", handlers.GetTimeline(container.StayService))
		stays.GET("/folio", handlers.GetFolio(container.StayService))
		stays.GET("/food-orders", handlers.GetFoodOrders(container.StayService))
		stays.POST("/precheckin", handlers.SubmitPreCheckin(container.StayService))
		stays.POST("/service-requests", handlers.CreateServiceRequest(container.StayService))
		stays.POST("/checkout-request", handlers.RequestCheckout(container.StayService))
		stays.POST("/reviews", handlers.CreateReview(container.ReviewService))
		stays.GET("/reviews", handlers.ListReviews(container.ReviewService))
	}

	owner := protected.Group("/owner")
	owner.Use(middleware.RequireRole("staff", "owner", "admin"))
	{
		owner.GET("/arrivals", handlers.ListArrivals(container.DashboardService))
		owner.GET("/stays/:id/timeline", handlers.GetTimeline(container.StayService))
		owner.GET("/stays/:id/folio", handlers.GetFolio(container.StayService))
		owner.POST("/stays/:id/payments", handlers.CollectPayment(container.FolioService))
		owner.POST("/stays/:id/checkout", handlers.CheckoutStay(container.FolioService))
		owner.GET("/analytics/experience", handlers.ExperienceStats(container.DashboardService))
	}

	hiring := owner.Group("/applications")
	hiring.Use(middleware.RequireRole("owner", "admin"))
	{
		hiring.GET("", handlers.ListApplications(container.HiringService))
		hiring.PATCH("/:id", handlers.UpdateApplication(container.HiringService))
	}

	return r
}
