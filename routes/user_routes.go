package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/storekart/PriceRules/controllers"
	"github.com/storekart/PriceRules/middleware"
)

// initUserRoutes initializes the storefront routes. Browsing and the cart
// work for guests too, so they use optional auth: a valid bearer token
// switches pricing to the logged-in view and the cart to the database.
func initUserRoutes(router *gin.RouterGroup) {
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	storefront := router.Group("")
	storefront.Use(middleware.OptionalAuthMiddleware())
	{
		storefront.GET("/products", controllers.GetProducts)
		storefront.GET("/products/:id", controllers.GetProductDetails)
		storefront.GET("/notice", controllers.GetStorefrontNotice)

		storefront.POST("/cart", controllers.AddToCart)
		storefront.GET("/cart", controllers.GetCart)
		storefront.DELETE("/cart/:productId", controllers.RemoveFromCart)
		storefront.DELETE("/cart", controllers.ClearCart)
	}
}
