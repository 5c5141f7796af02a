package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/models"
)

// productSortColumns is the explicit allow-list of caller-facing sort keys.
// Anything outside it is rejected; caller input is never resolved into a
// column name dynamically.
var productSortColumns = map[string]string{
	"price":    "price",
	"name":     "name",
	"quantity": "quantity",
}

// GET /products
//
// Filters combine conjunctively: search (name substring), min_price/max_price,
// in_stock, categories. Sorting is restricted to the allow-list above; results
// are ordered by id when no sort is requested.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categories := c.QueryArray("categories")
		sortBy := c.Query("sort_by")
		sortOrder := strings.ToLower(c.DefaultQuery("sort_order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var minPrice, maxPrice *float64
		if v := c.Query("min_price"); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil || p < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			minPrice = &p
		}
		if v := c.Query("max_price"); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil || p < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			maxPrice = &p
		}
		if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_price cannot be greater than max_price"})
			return
		}

		query := db.Model(&models.Product{})
		if search != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
		}
		if minPrice != nil {
			query = query.Where("price >= ?", *minPrice)
		}
		if maxPrice != nil {
			query = query.Where("price <= ?", *maxPrice)
		}
		if c.Query("in_stock") == "true" {
			query = query.Where("quantity > 0")
		}
		if len(categories) > 0 {
			query = query.Where("category IN ?", categories)
		}

		if sortBy != "" {
			column, ok := productSortColumns[sortBy]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort field: " + sortBy})
				return
			}
			query = query.Order(column + " " + sortOrder)
		} else {
			query = query.Order("id")
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
