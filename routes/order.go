package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	orderControllers "github.com/AndreyGichan/shop-api/controllers/order"
	"github.com/AndreyGichan/shop-api/middleware"
)

// SetupOrderRoutes registers checkout and order history endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth(db, cfg))
	{
		orders.POST("", orderControllers.Checkout(db, logger))
		orders.GET("/my", orderControllers.GetMyOrders(db))

		admin := orders.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", orderControllers.GetAllOrders(db))
			admin.PUT("/:id", orderControllers.UpdateOrderStatus(db))
		}
	}
}
