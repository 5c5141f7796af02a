package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	authControllers "github.com/AndreyGichan/shop-api/controllers/auth"
	productcontroller "github.com/AndreyGichan/shop-api/controllers/product"
	userControllers "github.com/AndreyGichan/shop-api/controllers/user"
	"github.com/AndreyGichan/shop-api/middleware"
)

// SetupAdminRoutes registers the administrative surface: user management,
// statistics, temporary passwords and catalog export.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(db, cfg), middleware.RequireAdmin())
	{
		users.GET("", userControllers.GetAllUsers(db))
		users.GET("/stats", userControllers.GetUserStats(db))
		users.GET("/:id", userControllers.GetUserByID(db))
		users.POST("", userControllers.CreateUser(db))
		users.PUT("/:id", userControllers.UpdateUserByAdmin(db))
		users.DELETE("/:id", userControllers.DeleteUserByAdmin(db))
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(db, cfg), middleware.RequireAdmin())
	{
		admin.POST("/temp-password", authControllers.TempPassword(db))
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(db))
	}
}
