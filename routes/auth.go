package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	authControllers "github.com/AndreyGichan/shop-api/controllers/auth"
)

// SetupAuthRoutes registers registration and login endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/register", authControllers.Register(db))
	r.POST("/login", authControllers.Login(db, cfg))
}
