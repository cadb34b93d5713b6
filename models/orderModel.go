package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending        = "Pending"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

var OrderStatusNames = []string{StatusPending, StatusOutForDelivery, StatusDelivered, StatusCancelled}

type OrderStatus struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Delivery struct {
	gorm.Model
	Name  string          `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
	Price decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

type Order struct {
	gorm.Model
	UserID        uint            `json:"userId" gorm:"index;not null"`
	CustomerName  string          `json:"customerName" binding:"required" gorm:"size:191;not null"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	OrderStatusID uint            `json:"orderStatusId" gorm:"index"`
	OrderStatus   *OrderStatus    `json:"orderStatus,omitempty"`
	DeliveryID    *uint           `json:"deliveryId"`
	Delivery      *Delivery       `json:"delivery,omitempty"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// ReadOnly marks cancelled orders for the back office. It is not enforced on writes.
	ReadOnly bool `json:"readOnly" gorm:"-"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index;not null"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Quantity  int             `json:"quantity"`
}

func (o *Order) AfterFind(tx *gorm.DB) error {
	o.ReadOnly = o.OrderStatus != nil && o.OrderStatus.Name == StatusCancelled
	return nil
}
