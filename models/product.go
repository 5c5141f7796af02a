package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null;check:price > 0" json:"price"`
	Quantity    int     `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Category    string  `gorm:"index" json:"category"`
	ImageURL    string  `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
