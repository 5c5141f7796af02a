package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// Authenticated user-facing routes
	SetupUserRoutes(r, db, cfg)
	SetupCartRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg, logger)

	// Catalog (public reads, admin writes)
	SetupProductRoutes(r, db, cfg)

	// Administrative surface
	SetupAdminRoutes(r, db, cfg)
}
