package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service keeps every cart line within 1..stock. Each operation re-reads current state and issues
// at most one write. Reads and writes do not share a transaction, so concurrent increments of one
// line can race past the stock check.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Add puts one more unit of the product in the user's cart, creating the line if needed.
func (s *Service) Add(ctx context.Context, userID, productID uint) Result {
	if userID == 0 || productID == 0 {
		return failed(ErrValidation, msgInvalidInput)
	}

	stock, err := s.store.FindProductStock(ctx, productID)
	if errors.Is(err, ErrNotFound) {
		return failed(ErrNotFound, msgProductNotFound)
	}
	if err != nil {
		return s.storeFailure("add", userID, productID, err)
	}

	line, exists, err := s.store.FindLine(ctx, userID, productID)
	if err != nil {
		return s.storeFailure("add", userID, productID, err)
	}

	quantity := 0
	if exists {
		quantity = line.Quantity
	}
	if quantity+1 > stock {
		if stock < 1 && !exists {
			return failed(ErrOutOfStock, msgOutOfStock)
		}
		return failed(ErrExceedsStock, msgExceedsStock)
	}

	if err := s.store.UpsertLine(ctx, userID, productID, quantity+1); err != nil {
		return s.storeFailure("add", userID, productID, err)
	}
	return succeeded()
}

// Remove deletes the line. Removing a product that is not in the cart succeeds.
func (s *Service) Remove(ctx context.Context, userID, productID uint) Result {
	if userID == 0 || productID == 0 {
		return failed(ErrValidation, msgInvalidInput)
	}
	if err := s.store.DeleteLine(ctx, userID, productID); err != nil {
		return s.storeFailure("remove", userID, productID, err)
	}
	return succeeded()
}

// Increase adds one unit to an existing line.
func (s *Service) Increase(ctx context.Context, userID, productID uint) Result {
	if userID == 0 || productID == 0 {
		return failed(ErrValidation, msgInvalidInput)
	}

	line, exists, err := s.store.FindLine(ctx, userID, productID)
	if err != nil {
		return s.storeFailure("increase", userID, productID, err)
	}
	if !exists {
		return failed(ErrNotFound, msgLineNotFound)
	}

	stock, err := s.store.FindProductStock(ctx, productID)
	if errors.Is(err, ErrNotFound) {
		return failed(ErrNotFound, msgProductNotFound)
	}
	if err != nil {
		return s.storeFailure("increase", userID, productID, err)
	}

	if line.Quantity+1 > stock {
		return failed(ErrExceedsStock, msgExceedsStock)
	}

	if err := s.store.UpsertLine(ctx, userID, productID, line.Quantity+1); err != nil {
		return s.storeFailure("increase", userID, productID, err)
	}
	return succeeded()
}

// Decrease removes one unit; the last unit removes the line.
func (s *Service) Decrease(ctx context.Context, userID, productID uint) Result {
	if userID == 0 || productID == 0 {
		return failed(ErrValidation, msgInvalidInput)
	}

	line, exists, err := s.store.FindLine(ctx, userID, productID)
	if err != nil {
		return s.storeFailure("decrease", userID, productID, err)
	}
	if !exists {
		return succeeded()
	}

	if line.Quantity > 1 {
		err = s.store.UpsertLine(ctx, userID, productID, line.Quantity-1)
	} else {
		err = s.store.DeleteLine(ctx, userID, productID)
	}
	if err != nil {
		return s.storeFailure("decrease", userID, productID, err)
	}
	return succeeded()
}

// Lines returns the user's cart priced at the products' current prices.
func (s *Service) Lines(ctx context.Context, userID uint) ([]PricedLine, error) {
	lines, err := s.store.ListLines(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list cart lines", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return lines, nil
}

func (s *Service) ItemCount(ctx context.Context, userID uint) (int, error) {
	lines, err := s.Lines(ctx, userID)
	if err != nil {
		return 0, err
	}
	return CountItems(lines), nil
}

func (s *Service) TotalPrice(ctx context.Context, userID uint) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumPrice(lines), nil
}

func CountItems(lines []PricedLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func SumPrice(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (s *Service) storeFailure(op string, userID, productID uint, err error) Result {
	s.logger.Error("cart store failure",
		zap.String("op", op),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Error(err),
	)
	return failed(ErrStore, msgStoreFailure)
}
