package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/models"
)

// orderSortColumns is the explicit allow-list of caller-facing sort keys for
// order listings.
var orderSortColumns = map[string]string{
	"total_price": "total_price",
	"status":      "status",
	"created_at":  "created_at",
	"user_id":     "user_id",
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type StatusUpdateView struct {
	ID         uint      `json:"id"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

var validStatuses = map[string]bool{
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// applyOrderFilters adds the shared filter and sort clauses for order
// listings. It writes the error response itself and returns nil on invalid
// input.
func applyOrderFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if s := c.Query("search_by_status"); s != "" {
		query = query.Where("LOWER(status) LIKE LOWER(?)", "%"+s+"%")
	}
	if s := c.Query("search_by_product_name"); s != "" {
		query = query.Where(
			`EXISTS (SELECT 1 FROM order_items
			 JOIN products ON products.id = order_items.product_id
			 WHERE order_items.order_id = orders.id AND LOWER(products.name) LIKE LOWER(?))`,
			"%"+s+"%")
	}

	var minTotal, maxTotal *float64
	if v := c.Query("min_total_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_total_price"})
			return nil
		}
		minTotal = &p
	}
	if v := c.Query("max_total_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_total_price"})
			return nil
		}
		maxTotal = &p
	}
	if minTotal != nil && maxTotal != nil && *minTotal > *maxTotal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_total_price cannot be greater than max_total_price"})
		return nil
	}
	if minTotal != nil {
		query = query.Where("total_price >= ?", *minTotal)
	}
	if maxTotal != nil {
		query = query.Where("total_price <= ?", *maxTotal)
	}

	if sortBy := c.Query("sort_by"); sortBy != "" {
		column, ok := orderSortColumns[sortBy]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort field: " + sortBy})
			return nil
		}
		sortOrder := strings.ToLower(c.DefaultQuery("sort_order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		query = query.Order(column + " " + sortOrder)
	} else {
		query = query.Order("id")
	}
	return query
}

func listOrders(c *gin.Context, db *gorm.DB, query *gorm.DB) {
	query = applyOrderFilters(c, query)
	if query == nil {
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	itemsByOrder, err := loadOrderItemViews(db, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{
			ID:         o.ID,
			UserID:     o.UserID,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			Address:    o.Address,
			Phone:      o.Phone,
			CreatedAt:  o.CreatedAt,
			Items:      itemsByOrder[o.ID],
		})
	}
	c.JSON(http.StatusOK, views)
}

// GET /orders/my
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listOrders(c, db, db.Model(&models.Order{}).Where("user_id = ?", userID))
	}
}

// GET /orders (admin)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listOrders(c, db, db.Model(&models.Order{}))
	}
}

// PUT /orders/:id (admin)
//
// Orders are immutable once placed except for their status.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		status := strings.ToLower(req.Status)
		if !validStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status: " + req.Status})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := db.Model(&order).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, StatusUpdateView{
			ID:         order.ID,
			TotalPrice: order.TotalPrice,
			Status:     order.Status,
			CreatedAt:  order.CreatedAt,
		})
	}
}
