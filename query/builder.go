package query

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of rows per listing page.
const PageSize = 10

// Predicate is a case-insensitive substring match of Term against Field. An empty Term matches all rows.
type Predicate struct {
	Field string `json:"field"`
	Term  string `json:"term"`
}

func (p Predicate) MatchesAll() bool {
	return p.Term == ""
}

type Query struct {
	Predicate Predicate     `json:"predicate"`
	OrderBy   []OrderClause `json:"orderBy"`
	Skip      int           `json:"skip"`
	Take      int           `json:"take"`
	Page      int           `json:"page"`
}

// Build maps search/sort/page parameters onto a query for entity. It performs no I/O.
func Build(params Params, entity Entity, pageSize int) Query {
	if pageSize < 1 {
		pageSize = PageSize
	}
	search, _ := params.first("search")
	page := parsePage(params, pageSize)

	return Query{
		Predicate: Predicate{Field: entity.SearchField, Term: search},
		OrderBy:   parseSort(params["sort"], entity),
		Skip:      pageSize * (page - 1),
		Take:      pageSize,
		Page:      page,
	}
}

// parsePage caps the page so that the row offset pageSize*(page-1) never overflows.
// Pages past the cap, including numbers too large to parse, address no rows.
func parsePage(params Params, pageSize int) int {
	raw, ok := params.first("page")
	if !ok {
		return 1
	}
	maxPage := math.MaxInt / pageSize
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return maxPage
	}
	if err != nil || page < 1 {
		return 1
	}
	return min(page, maxPage)
}

// parseSort joins every provided value with "," so array and scalar transports tokenize identically.
func parseSort(values []string, entity Entity) []OrderClause {
	var orderBy []OrderClause
	seen := make(map[string]bool)
	for _, token := range strings.Split(strings.Join(values, ","), ",") {
		clause, ok := entity.Sorts[strings.ToLower(strings.TrimSpace(token))]
		if !ok || seen[clause.Field] {
			continue
		}
		seen[clause.Field] = true
		orderBy = append(orderBy, clause)
	}
	if len(orderBy) == 0 {
		return []OrderClause{DefaultOrder}
	}
	return orderBy
}
