package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID uint
	Quantity  int
}

// PricedLine is a cart line joined with the product's current pricing.
type PricedLine struct {
	ProductID         uint                `json:"productId"`
	Name              string              `json:"name"`
	Quantity          int                 `json:"quantity"`
	Price             decimal.Decimal     `json:"price"`
	PriceWithDiscount decimal.NullDecimal `json:"priceWithDiscount"`
}

func (l PricedLine) UnitPrice() decimal.Decimal {
	if l.PriceWithDiscount.Valid {
		return l.PriceWithDiscount.Decimal
	}
	return l.Price
}

func (l PricedLine) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store is the persistence boundary of the cart service.
// FindProductStock returns ErrNotFound when the product does not exist.
type Store interface {
	FindProductStock(ctx context.Context, productID uint) (int, error)
	FindLine(ctx context.Context, userID, productID uint) (Line, bool, error)
	UpsertLine(ctx context.Context, userID, productID uint, quantity int) error
	DeleteLine(ctx context.Context, userID, productID uint) error
	ListLines(ctx context.Context, userID uint) ([]PricedLine, error)
}
