package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mealbasket/gateway/pkg/models"
)

func NewEngine(api *API) *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(ContextMiddleware())
	engine.Use(api.SessionMiddleware())

	registerRoutes(engine, api)
	return engine
}

func registerRoutes(engine *gin.Engine, api *API) {
	root := engine.Group("/api")
	{
		root.GET("/health", api.HealthCheck)

		auth := root.Group("/auth")
		{
			auth.POST("/login", api.Login)
			auth.POST("/register", api.Register)
			auth.POST("/register/vendor", api.RegisterVendor)
			auth.POST("/logout", api.Logout)
		}

		root.GET("/session", api.CurrentSession)

		cart := root.Group("/cart")
		{
			cart.GET("", api.GetCart)
			cart.POST("/items", api.AddToCart)
			cart.PUT("/items/:productId", api.UpdateCartItem)
			cart.DELETE("/items/:productId", api.RemoveFromCart)
			cart.DELETE("", api.ClearCart)
		}

		favorites := root.Group("/favorites")
		{
			favorites.GET("", api.GetFavorites)
			favorites.POST("", api.AddFavorite)
			favorites.DELETE("/:productId", api.RemoveFavorite)
		}

		catalog := root.Group("/catalog")
		{
			catalog.GET("", api.BrowseCatalog)
			catalog.GET("/products/:id", api.GetProduct)
		}

		vendor := root.Group("/vendor")
		vendor.Use(api.RequireRole(models.RoleVendor))
		{
			vendor.GET("/profile", api.VendorProfile)
			vendor.GET("/products", api.ListVendorProducts)
			vendor.POST("/products", api.CreateVendorProduct)
			vendor.PUT("/products/:productId", api.UpdateVendorProduct)
			vendor.DELETE("/products/:productId", api.DeleteVendorProduct)
		}

		admin := root.Group("/admin")
		admin.Use(api.RequireRole(models.RoleAdmin))
		{
			admin.GET("/overview", api.AdminOverview)
			admin.GET("/users", api.AdminUsers)
			admin.GET("/vendors", api.AdminVendors)
			admin.DELETE("/users/:id", api.AdminDeleteUser)
		}

		orders := root.Group("/orders")
		orders.Use(api.RequireRole(models.RoleUser))
		{
			orders.GET("", api.ListOrders)
			orders.POST("", api.Checkout)
		}

		mealPlans := root.Group("/meal-plans")
		mealPlans.Use(api.RequireRole(models.RoleUser))
		{
			mealPlans.GET("", api.ListMealPlans)
			mealPlans.POST("", api.CreateMealPlan)
		}

		root.POST("/contact/message", api.SendContactMessage)
	}
}
