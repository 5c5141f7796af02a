package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/config"
	productcontroller "github.com/AndreyGichan/shop-api/controllers/product"
	"github.com/AndreyGichan/shop-api/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Reads are public;
// writes require an administrator.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/categories", productcontroller.GetCategories(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAuth(db, cfg), middleware.RequireAdmin())
		{
			admin.POST("", productcontroller.CreateProduct(db, cfg))
			admin.PUT("/:id", productcontroller.UpdateProduct(db, cfg))
			admin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}
	}
}
