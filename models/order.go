package models

import "time"

const (
	// Order statuses. An order starts in "processing"; later transitions are
	// driven by an administrator through the status update endpoint.
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is the immutable record of a completed checkout. Only Status may
// change after creation.
type Order struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	Status     string      `gorm:"type:VARCHAR(20);not null;default:'processing'" json:"status"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderItem snapshots (product, quantity, unit price) at checkout time. Later
// catalog price changes never affect it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
