package models

import "time"

// CartItem is hard-deleted so the (user, product) unique index never meets a tombstone.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
