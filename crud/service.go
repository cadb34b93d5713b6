package crud

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Kariqs/amexan-store/export"
	"github.com/Kariqs/amexan-store/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Config describes one administrable entity.
type Config[T any] struct {
	Entity query.Entity
	// Label names the entity in user-facing messages, e.g. "Brand".
	Label   string
	Columns []export.Column[T]
	// Preloads are eager-loaded by List, Get and Export.
	Preloads []string
	// DuplicateMessage is reported when a write hits a unique constraint.
	DuplicateMessage string
	// AlwaysUpdate lists columns Update writes even when the input holds their zero value.
	AlwaysUpdate []string
}

// Listing is one page of a listing together with its paging window.
type Listing[T any] struct {
	Rows       []T   `json:"rows"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

type Service[T any] struct {
	db       *gorm.DB
	cfg      Config[T]
	pageSize int
}

func NewService[T any](db *gorm.DB, cfg Config[T], pageSize int) *Service[T] {
	if pageSize < 1 {
		pageSize = query.PageSize
	}
	if cfg.Label == "" {
		cfg.Label = cfg.Entity.Name
	}
	if cfg.DuplicateMessage == "" {
		cfg.DuplicateMessage = cfg.Label + " already exists"
	}
	return &Service[T]{db: db, cfg: cfg, pageSize: pageSize}
}

func (s *Service[T]) Label() string {
	return s.cfg.Label
}

func (s *Service[T]) List(ctx context.Context, params query.Params, opts ...query.Option) (Listing[T], error) {
	q := query.Build(params, s.cfg.Entity, s.pageSize)
	opts = append(opts, query.Preload(s.cfg.Preloads...))

	page, err := query.Find[T](ctx, s.db, q, s.cfg.Entity, opts...)
	if err != nil {
		return Listing[T]{}, err
	}
	return Listing[T]{Rows: page.Rows, TotalCount: page.TotalCount, Page: q.Page, PageSize: q.Take}, nil
}

func (s *Service[T]) Get(ctx context.Context, id uint, scopes ...func(*gorm.DB) *gorm.DB) (*T, error) {
	tx := s.db.WithContext(ctx).Scopes(scopes...)
	for _, association := range s.cfg.Preloads {
		tx = tx.Preload(association)
	}

	record := new(T)
	if err := tx.First(record, id).Error; err != nil {
		return nil, s.translate(id, err)
	}
	return record, nil
}

// Create inserts record as a new row. Any client-supplied id is discarded and associations are not written.
func (s *Service[T]) Create(ctx context.Context, record *T) error {
	resetID(record)
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return s.translate(0, err)
	}
	return nil
}

// Update writes the non-zero fields of input, plus the configured AlwaysUpdate columns, to row id.
// omit names further columns to leave untouched.
func (s *Service[T]) Update(ctx context.Context, id uint, input *T, omit ...string) error {
	resetID(input)
	omit = append([]string{"id", "created_at", "deleted_at", clause.Associations}, omit...)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := new(T)
		if err := tx.First(existing, id).Error; err != nil {
			return err
		}
		if err := tx.Model(existing).Omit(omit...).Updates(input).Error; err != nil {
			return err
		}
		if len(s.cfg.AlwaysUpdate) == 0 {
			return nil
		}
		return tx.Model(existing).Select(s.cfg.AlwaysUpdate).Omit(omit...).Updates(input).Error
	})
	if err != nil {
		return s.translate(id, err)
	}
	return nil
}

// Delete soft-deletes row id.
func (s *Service[T]) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return s.translate(id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", s.cfg.Label, id, ErrNotFound)
	}
	return nil
}

// DeleteMany removes every listed row in one statement and reports how many rows were deleted.
func (s *Service[T]) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no %s selected", ErrValidation, s.cfg.Entity.Name)
	}
	result := s.db.WithContext(ctx).Delete(new(T), ids)
	if result.Error != nil {
		return 0, s.translate(0, result.Error)
	}
	return result.RowsAffected, nil
}

// Export shapes the full, unfiltered row set into the configured display columns.
func (s *Service[T]) Export(ctx context.Context) (export.Table, error) {
	tx := s.db.WithContext(ctx).Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"},
		Desc:   true,
	})
	for _, association := range s.cfg.Preloads {
		tx = tx.Preload(association)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return export.Table{}, fmt.Errorf("failed to export %s: %w", s.cfg.Entity.Name, err)
	}
	return export.Shape(rows, s.cfg.Columns), nil
}

func (s *Service[T]) translate(id uint, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %d: %w", s.cfg.Label, id, ErrNotFound)
	case isDuplicate(err):
		return &ConstraintError{Message: s.cfg.DuplicateMessage}
	default:
		return fmt.Errorf("%s: %w", s.cfg.Entity.Name, err)
	}
}

// resetID zeroes the primary key of a record bound from client input.
func resetID(record any) {
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	if field := v.FieldByName("ID"); field.IsValid() && field.CanSet() {
		field.Set(reflect.Zero(field.Type()))
	}
}
