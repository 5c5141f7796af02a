package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	cartControllers "github.com/AndreyGichan/shop-api/controllers/cart"
	"github.com/AndreyGichan/shop-api/middleware"
)

// SetupCartRoutes registers the shopping cart endpoints.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth(db, cfg))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddToCart(db))
		cart.PUT("/:item_id", cartControllers.UpdateItemQuantity(db))
		cart.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
