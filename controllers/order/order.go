package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/models"
)

// Checkout failure modes. Handlers map these onto HTTP statuses; anything
// else is a 500.
var (
	ErrCartMissing = errors.New("cart is empty")
	ErrCartEmpty   = errors.New("the cart has no items")
)

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d was not found", e.ProductID)
}

type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s'", e.Name)
}

type CheckoutRequest struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type OrderItemView struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

type OrderView struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	TotalPrice float64         `json:"total_price"`
	Status     string          `json:"status"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItemView `json:"items"`
}

// PlaceOrder converts the user's cart into an order as one atomic unit:
// validate every line, snapshot prices, decrement stock, create the order
// aggregate and clear the cart. Any failure rolls the whole transaction back,
// so no partial decrement or partial order is ever visible.
func PlaceOrder(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartMissing
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		var total float64
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return err
			}
			if product.Quantity < item.Quantity {
				return &InsufficientStockError{Name: product.Name}
			}

			// Conditional decrement: the quantity guard in the WHERE clause
			// makes concurrent checkouts against the same product serialize
			// on the row; the loser affects zero rows and the whole
			// transaction rolls back.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &InsufficientStockError{Name: product.Name}
			}

			total += product.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order = models.Order{
			UserID:     userID,
			TotalPrice: total,
			Status:     models.OrderStatusProcessing,
			Address:    req.Address,
			Phone:      req.Phone,
			Items:      items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The cart row itself persists for reuse; only its lines go.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /orders
func Checkout(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			status := checkoutErrorStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error("checkout failed",
					zap.Uint("user_id", userID),
					zap.Error(err))
				c.JSON(status, gin.H{"error": "Failed to place order"})
				return
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		logger.Info("order placed",
			zap.Uint("order_id", order.ID),
			zap.Uint("user_id", userID),
			zap.Float64("total_price", order.TotalPrice),
			zap.Int("items", len(order.Items)))

		// Read-only enrichment with product display data, outside the
		// transactional write.
		view, err := buildOrderView(db, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func checkoutErrorStatus(err error) int {
	var notFound *ProductNotFoundError
	var noStock *InsufficientStockError
	switch {
	case errors.Is(err, ErrCartMissing), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCartEmpty), errors.As(err, &noStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userIDFrom(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func buildOrderView(db *gorm.DB, order *models.Order) (*OrderView, error) {
	itemsByOrder, err := loadOrderItemViews(db, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	return &OrderView{
		ID:         order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		Address:    order.Address,
		Phone:      order.Phone,
		CreatedAt:  order.CreatedAt,
		Items:      itemsByOrder[order.ID],
	}, nil
}

// loadOrderItemViews fetches the line items of the given orders joined with
// product name and image, grouped by order id.
func loadOrderItemViews(db *gorm.DB, orderIDs []uint) (map[uint][]OrderItemView, error) {
	if len(orderIDs) == 0 {
		return map[uint][]OrderItemView{}, nil
	}

	type itemRow struct {
		ID        uint
		OrderID   uint
		ProductID uint
		Name      string
		Price     float64
		Quantity  int
		ImageURL  string
	}
	var rows []itemRow
	err := db.Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, products.name, order_items.price, order_items.quantity, products.image_url").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint][]OrderItemView, len(orderIDs))
	for _, r := range rows {
		out[r.OrderID] = append(out[r.OrderID], OrderItemView{
			ID:        r.ID,
			ProductID: r.ProductID,
			Name:      r.Name,
			Price:     r.Price,
			Quantity:  r.Quantity,
			ImageURL:  r.ImageURL,
		})
	}
	return out, nil
}
