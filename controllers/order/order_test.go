package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AndreyGichan/shop-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory database lives per connection.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Username: "test", Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Quantity: quantity, Category: "misc"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, items ...models.CartItem) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	for i := range items {
		items[i].CartID = cart.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return cart
}

func TestPlaceOrderCreatesOrderAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	apples := seedProduct(t, db, "Apples", 10.0, 5)
	bread := seedProduct(t, db, "Bread", 5.0, 4)
	cart := seedCart(t, db, user.ID,
		models.CartItem{ProductID: apples.ID, Quantity: 2, Price: apples.Price},
		models.CartItem{ProductID: bread.ID, Quantity: 1, Price: bread.Price},
	)

	order, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "1 Main St", Phone: "555-0100"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, "1 Main St", order.Address)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 10.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 5.0, order.Items[1].Price)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, apples.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
	// Reset so the first load's primary key doesn't leak into the next query.
	reloaded = models.Product{}
	require.NoError(t, db.First(&reloaded, bread.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lines).Error)
	assert.Zero(t, lines, "cart lines should be removed")

	// The cart row itself survives for reuse.
	require.NoError(t, db.First(&models.Cart{}, cart.ID).Error)
}

func TestPlaceOrderWithoutCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	assert.ErrorIs(t, err, ErrCartMissing)
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	seedCart(t, db, user.ID)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestPlaceOrderProductRemovedFromCatalog(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Ghost", 3.0, 10)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 1, Price: product.Price})
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, product.ID, notFound.ProductID)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Chairs", 40.0, 3)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 10, Price: product.Price})

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	var noStock *InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, "Chairs", noStock.Name)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity, "stock must be untouched")
}

func TestPlaceOrderRollsBackEverythingOnFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	ok := seedProduct(t, db, "Plenty", 2.0, 100)
	scarce := seedProduct(t, db, "Scarce", 9.0, 1)
	cart := seedCart(t, db, user.ID,
		models.CartItem{ProductID: ok.ID, Quantity: 5, Price: ok.Price},
		models.CartItem{ProductID: scarce.ID, Quantity: 2, Price: scarce.Price},
	)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	var noStock *InsufficientStockError
	require.ErrorAs(t, err, &noStock)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, ok.ID).Error)
	assert.Equal(t, 100, reloaded.Quantity, "decrement of the first line must be rolled back")

	var orders, orderItems, cartLines int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartLines).Error)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)
	assert.Equal(t, int64(2), cartLines, "cart must survive a failed checkout")
}

func TestPlaceOrderSnapshotSurvivesPriceChange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Lamp", 20.0, 10)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 1, Price: product.Price})

	order, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 99.0).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 20.0, item.Price)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, 20.0, reloaded.TotalPrice)
}

func TestPlaceOrderCannotBeReplayed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Once", 5.0, 5)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 1, Price: product.Price})

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	require.NoError(t, err)

	_, err = PlaceOrder(db, user.ID, CheckoutRequest{Address: "a", Phone: "p"})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing cart", ErrCartMissing, http.StatusNotFound},
		{"empty cart", ErrCartEmpty, http.StatusBadRequest},
		{"product gone", &ProductNotFoundError{ProductID: 7}, http.StatusNotFound},
		{"no stock", &InsufficientStockError{Name: "x"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checkoutErrorStatus(tc.err))
		})
	}
}

func newOrderRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/orders", Checkout(db, zap.NewNop()))
	r.GET("/orders/my", GetMyOrders(db))
	r.GET("/orders", GetAllOrders(db))
	r.PUT("/orders/:id", UpdateOrderStatus(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandlerReturnsCreatedOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	product := seedProduct(t, db, "Mug", 4.5, 8)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 2, Price: product.Price})
	r := newOrderRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", CheckoutRequest{Address: "1 Main St", Phone: "555-0100"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view OrderView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 9.0, view.TotalPrice)
	assert.Equal(t, models.OrderStatusProcessing, view.Status)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Mug", view.Items[0].Name)
	assert.Equal(t, 4.5, view.Items[0].Price)
}

func TestCheckoutHandlerMapsDomainErrors(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	r := newOrderRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", CheckoutRequest{Address: "a", Phone: "p"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")

	seedCart(t, db, user.ID)
	w = doJSON(t, r, http.MethodPost, "/orders", CheckoutRequest{Address: "a", Phone: "p"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandlerRejectsMissingFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com")
	r := newOrderRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/orders", gin.H{"address": "only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
