package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/storekart/PriceRules/controllers"
	"github.com/storekart/PriceRules/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// Discount rule management
			admin.POST("/rules", controllers.CreateRule)
			admin.GET("/rules", controllers.ListRules)
			admin.GET("/rules/:id", controllers.GetRule)
			admin.PUT("/rules/:id", controllers.UpdateRule)
			admin.DELETE("/rules/:id", controllers.DeleteRule)
			admin.PUT("/rules/reorder", controllers.ReorderRules)
			admin.GET("/rules/export/excel", controllers.DownloadRulesExcel)
			admin.GET("/rules/export/pdf", controllers.DownloadRulesPDF)

			// Global evaluation settings
			admin.GET("/settings", controllers.GetSettings)
			admin.PUT("/settings", controllers.UpdateSettings)

			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.GET("/categories", controllers.ListCategories)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			// Product management
			admin.POST("/products", controllers.CreateProduct)
			admin.GET("/products", controllers.ListAdminProducts)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)
		}
	}
}
