package initializers

import (
	"fmt"

	"github.com/Kariqs/amexan-store/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncDatabase migrates every model and seeds the lookup rows the API relies on.
func SyncDatabase(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Brand{}, &models.Category{}, &models.Color{}, &models.Storage{}, &models.Ram{},
		&models.Cpu{}, &models.Gpu{}, &models.OperatingSystem{},
		&models.Product{}, &models.ProductImage{},
		&models.CartItem{},
		&models.OrderStatus{}, &models.Delivery{}, &models.Order{}, &models.OrderItem{},
		&models.Promotion{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := SeedLookups(db); err != nil {
		return err
	}

	log.Info("Database synced successfully.")
	return nil
}

// SeedLookups inserts the order statuses and roles if missing. It is safe to run repeatedly.
func SeedLookups(db *gorm.DB) error {
	for _, name := range models.OrderStatusNames {
		status := models.OrderStatus{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return fmt.Errorf("failed to seed order status %q: %w", name, err)
		}
	}
	for _, name := range []string{models.RoleAdmin, models.RoleCustomer} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	return nil
}
