package query

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Page[T any] struct {
	Rows       []T   `json:"rows"`
	TotalCount int64 `json:"totalCount"`
}

type Option func(*options)

type options struct {
	filters  []func(*gorm.DB) *gorm.DB
	preloads []string
}

// Where adds a filter applied to both the row query and the count.
func Where(scope func(*gorm.DB) *gorm.DB) Option {
	return func(o *options) { o.filters = append(o.filters, scope) }
}

// Preload eager-loads associations on the row query only.
func Preload(associations ...string) Option {
	return func(o *options) { o.preloads = append(o.preloads, associations...) }
}

const likeEscape = "!"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Filter applies the predicate. A match-all predicate adds no condition.
func (p Predicate) Filter(entity Entity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.MatchesAll() {
			return db
		}
		column, ok := entity.Column(p.Field)
		if !ok {
			column = p.Field
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(p.Term)) + "%"
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", column, likeEscape), pattern)
	}
}

// Window applies ordering and the pagination window.
func (q Query) Window(entity Entity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, o := range q.OrderBy {
			column, ok := entity.Column(o.Field)
			if !ok {
				continue
			}
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: clause.CurrentTable, Name: column},
				Desc:   o.Direction == Desc,
			})
		}
		return db.Offset(q.Skip).Limit(q.Take)
	}
}

// Find runs the query against T's table and counts every row the predicate matches.
func Find[T any](ctx context.Context, db *gorm.DB, q Query, entity Entity, opts ...Option) (Page[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	filtered := func() *gorm.DB {
		tx := db.WithContext(ctx).Model(new(T))
		for _, f := range o.filters {
			tx = f(tx)
		}
		return q.Predicate.Filter(entity)(tx)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("failed to count %s: %w", entity.Name, err)
	}

	tx := q.Window(entity)(filtered())
	for _, association := range o.preloads {
		tx = tx.Preload(association)
	}

	rows := make([]T, 0, q.Take)
	if err := tx.Find(&rows).Error; err != nil {
		return Page[T]{}, fmt.Errorf("failed to find %s: %w", entity.Name, err)
	}

	return Page[T]{Rows: rows, TotalCount: total}, nil
}
