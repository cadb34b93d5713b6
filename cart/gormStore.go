package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/amexan-store/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// FindProductStock treats products hidden from the storefront as missing, so they cannot be added or increased.
func (s *GormStore) FindProductStock(ctx context.Context, productID uint) (int, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Select("id", "quantity").
		Where("is_active = ?", true).
		First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stock of product %d: %w", productID, err)
	}
	return product.Quantity, nil
}

func (s *GormStore) FindLine(ctx context.Context, userID, productID uint) (Line, bool, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Line{}, false, nil
	}
	if err != nil {
		return Line{}, false, fmt.Errorf("failed to read cart line: %w", err)
	}
	return Line{ProductID: item.ProductID, Quantity: item.Quantity}, true, nil
}

func (s *GormStore) UpsertLine(ctx context.Context, userID, productID uint, quantity int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteLine(ctx context.Context, userID, productID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	return nil
}

func (s *GormStore) ListLines(ctx context.Context, userID uint) ([]PricedLine, error) {
	var lines []PricedLine
	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id, products.name, cart_items.quantity, products.price, products.price_with_discount").
		Joins("JOIN products ON products.id = cart_items.product_id AND products.deleted_at IS NULL").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	return lines, nil
}
