package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	userControllers "github.com/AndreyGichan/shop-api/controllers/user"
	"github.com/AndreyGichan/shop-api/middleware"
)

// SetupUserRoutes registers the profile endpoints. Admin user management
// lives under SetupAdminRoutes.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(db, cfg))
	{
		users.GET("/me", userControllers.GetProfile())
		users.PUT("/me", userControllers.UpdateProfile(db))
		users.DELETE("/me", userControllers.DeleteProfile(db))
	}
}
