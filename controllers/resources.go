package controllers

import (
	"fmt"
	"time"

	"github.com/Kariqs/amexan-store/crud"
	"github.com/Kariqs/amexan-store/export"
	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/query"
	"gorm.io/gorm"
)

var productPreloads = []string{"Category", "Brand", "Color", "Storage", "Ram", "Cpu", "Gpu", "OperatingSystem", "Images"}

func (h *Handlers) adminResources(pageSize int) []AdminResource {
	db := h.DB

	h.Products = crud.NewService(db, crud.Config[models.Product]{
		Entity:           query.Products,
		Label:            "Product",
		Preloads:         productPreloads,
		DuplicateMessage: "A product with these details already exists",
		AlwaysUpdate:     []string{"is_active", "quantity", "price_with_discount"},
		Columns: []export.Column[models.Product]{
			{Header: "Name", Value: func(p models.Product) any { return p.Name }},
			{Header: "Price", Value: func(p models.Product) any { return p.Price }},
			{Header: "Price with discount", Value: func(p models.Product) any {
				if p.PriceWithDiscount.Valid {
					return p.PriceWithDiscount.Decimal
				}
				return nil
			}},
			{Header: "Selling price", Value: func(p models.Product) any { return p.EffectivePrice() }},
			{Header: "Quantity", Value: func(p models.Product) any { return p.Quantity }},
			{Header: "Active", Value: func(p models.Product) any { return p.IsActive }},
			{Header: "Category", Value: func(p models.Product) any {
				if p.Category != nil {
					return p.Category.Name
				}
				return nil
			}},
			{Header: "Brand", Value: func(p models.Product) any {
				if p.Brand != nil {
					return p.Brand.Name
				}
				return nil
			}},
			{Header: "Created", Value: func(p models.Product) any { return p.CreatedAt }},
		},
	}, pageSize)

	h.Orders = crud.NewService(db, crud.Config[models.Order]{
		Entity:   query.Orders,
		Label:    "Order",
		Preloads: []string{"OrderStatus", "Delivery", "Items"},
		Columns: []export.Column[models.Order]{
			{Header: "Order", Value: func(o models.Order) any { return o.ID }},
			{Header: "Customer", Value: func(o models.Order) any { return o.CustomerName }},
			{Header: "Email", Value: func(o models.Order) any { return o.Email }},
			{Header: "Phone", Value: func(o models.Order) any { return o.Phone }},
			{Header: "Total", Value: func(o models.Order) any { return o.Total }},
			{Header: "Status", Value: func(o models.Order) any {
				if o.OrderStatus != nil {
					return o.OrderStatus.Name
				}
				return nil
			}},
			{Header: "Created", Value: func(o models.Order) any { return o.CreatedAt }},
		},
	}, pageSize)

	h.Categories = crud.NewService(db, named(query.Categories, "Category", func(c models.Category) (string, time.Time) { return c.Name, c.CreatedAt }), pageSize)

	users := crud.NewService(db, crud.Config[models.User]{
		Entity:           query.Users,
		Label:            "User",
		Preloads:         []string{"Role"},
		DuplicateMessage: "A user with this email already exists",
		Columns: []export.Column[models.User]{
			{Header: "Full name", Value: func(u models.User) any { return u.FullName }},
			{Header: "Email", Value: func(u models.User) any { return u.Email }},
			{Header: "Phone", Value: func(u models.User) any { return u.Phone }},
			{Header: "Role", Value: func(u models.User) any {
				if u.Role != nil {
					return u.Role.Name
				}
				return nil
			}},
			{Header: "Created", Value: func(u models.User) any { return u.CreatedAt }},
		},
	}, pageSize)

	promotions := crud.NewService(db, crud.Config[models.Promotion]{
		Entity:           query.Promotions,
		Label:            "Promotion",
		DuplicateMessage: "A promotion with this name already exists",
		AlwaysUpdate:     []string{"is_active", "discount_percent"},
		Columns: []export.Column[models.Promotion]{
			{Header: "Name", Value: func(p models.Promotion) any { return p.Name }},
			{Header: "Discount %", Value: func(p models.Promotion) any { return p.DiscountPercent }},
			{Header: "Start", Value: func(p models.Promotion) any { return p.StartDate }},
			{Header: "End", Value: func(p models.Promotion) any { return p.EndDate }},
			{Header: "Active", Value: func(p models.Promotion) any { return p.IsActive }},
			{Header: "Running now", Value: func(p models.Promotion) any { return p.ActiveAt(time.Now()) }},
		},
	}, pageSize)

	deliveries := crud.NewService(db, crud.Config[models.Delivery]{
		Entity:           query.Deliveries,
		Label:            "Delivery",
		DuplicateMessage: "A delivery method with this name already exists",
		Columns: []export.Column[models.Delivery]{
			{Header: "Name", Value: func(d models.Delivery) any { return d.Name }},
			{Header: "Price", Value: func(d models.Delivery) any { return d.Price }},
			{Header: "Created", Value: func(d models.Delivery) any { return d.CreatedAt }},
		},
	}, pageSize)

	return []AdminResource{
		&Resource[models.Product]{Path: "products", Service: h.Products, Logger: h.Logger},
		&Resource[models.Order]{Path: "orders", Service: h.Orders, Logger: h.Logger, NoCreate: true},
		&Resource[models.User]{Path: "users", Service: users, Logger: h.Logger, Prepare: preparePassword},
		&Resource[models.Role]{Path: "roles", Logger: h.Logger,
			Service: crud.NewService(db, named(query.Roles, "Role", func(r models.Role) (string, time.Time) { return r.Name, r.CreatedAt }), pageSize)},
		&Resource[models.Promotion]{Path: "promotions", Service: promotions, Logger: h.Logger},
		&Resource[models.OrderStatus]{Path: "order-statuses", Logger: h.Logger,
			Service: crud.NewService(db, named(query.OrderStatuses, "Order status", func(s models.OrderStatus) (string, time.Time) { return s.Name, s.CreatedAt }), pageSize)},
		&Resource[models.Delivery]{Path: "deliveries", Service: deliveries, Logger: h.Logger},
		&Resource[models.Brand]{Path: "brands", Logger: h.Logger,
			Service: crud.NewService(db, named(query.Brands, "Brand", func(b models.Brand) (string, time.Time) { return b.Name, b.CreatedAt }), pageSize)},
		&Resource[models.Category]{Path: "categories", Service: h.Categories, Logger: h.Logger},
		&Resource[models.Color]{Path: "colors", Logger: h.Logger,
			Service: crud.NewService(db, named(query.Colors, "Color", func(c models.Color) (string, time.Time) { return c.Name, c.CreatedAt }), pageSize)},
		&Resource[models.Storage]{Path: "storages", Logger: h.Logger,
			Service: crud.NewService(db, titled(query.Storages, "Storage", func(s models.Storage) (string, time.Time) { return s.Title, s.CreatedAt }), pageSize)},
		&Resource[models.Ram]{Path: "rams", Logger: h.Logger,
			Service: crud.NewService(db, titled(query.Rams, "RAM", func(r models.Ram) (string, time.Time) { return r.Title, r.CreatedAt }), pageSize)},
		&Resource[models.Cpu]{Path: "cpus", Logger: h.Logger,
			Service: crud.NewService(db, named(query.Cpus, "CPU", func(c models.Cpu) (string, time.Time) { return c.Name, c.CreatedAt }), pageSize)},
		&Resource[models.Gpu]{Path: "gpus", Logger: h.Logger,
			Service: crud.NewService(db, named(query.Gpus, "GPU", func(g models.Gpu) (string, time.Time) { return g.Name, g.CreatedAt }), pageSize)},
		&Resource[models.OperatingSystem]{Path: "operating-systems", Logger: h.Logger,
			Service: crud.NewService(db, named(query.OperatingSystems, "Operating system", func(o models.OperatingSystem) (string, time.Time) { return o.Name, o.CreatedAt }), pageSize)},
	}
}

// named configures a lookup entity identified by a unique name.
func named[T any](entity query.Entity, label string, fields func(T) (string, time.Time)) crud.Config[T] {
	return lookup(entity, label, "Name", "name", fields)
}

// titled configures a lookup entity identified by a unique title.
func titled[T any](entity query.Entity, label string, fields func(T) (string, time.Time)) crud.Config[T] {
	return lookup(entity, label, "Title", "title", fields)
}

func lookup[T any](entity query.Entity, label, header, noun string, fields func(T) (string, time.Time)) crud.Config[T] {
	return crud.Config[T]{
		Entity:           entity,
		Label:            label,
		DuplicateMessage: fmt.Sprintf("%s with this %s already exists", label, noun),
		Columns: []export.Column[T]{
			{Header: header, Value: func(row T) any { name, _ := fields(row); return name }},
			{Header: "Created", Value: func(row T) any { _, created := fields(row); return created }},
		},
	}
}

// preparePassword hashes the plain-text password of an admin user form.
func preparePassword(user *models.User, creating bool) error {
	if user.NewPassword == "" {
		if creating {
			return fmt.Errorf("%w: password is required", crud.ErrValidation)
		}
		return nil
	}
	hashed, err := hashPassword(user.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.NewPassword = ""
	return nil
}

// activeOnly limits product queries to the storefront catalog.
func activeOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
