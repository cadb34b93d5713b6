package query

// CreatedDate is the logical field every listable entity can be ordered by.
const CreatedDate = "createdDate"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type OrderClause struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultOrder applies when a request names no usable sort token.
var DefaultOrder = OrderClause{Field: CreatedDate, Direction: Desc}

// Entity is the per-entity configuration the builder reads: which text field "search" targets,
// which sort tokens exist and how logical fields map to columns.
type Entity struct {
	Name        string
	SearchField string
	Columns     map[string]string
	Sorts       map[string]OrderClause
}

func newEntity(name, textField, textColumn string) Entity {
	e := Entity{
		Name:        name,
		SearchField: textField,
		Columns:     map[string]string{CreatedDate: "created_at"},
		Sorts:       map[string]OrderClause{},
	}
	return e.withSort("name", textField, textColumn).withSort("date", CreatedDate, "created_at")
}

// withSort registers the "<token>-asc" and "<token>-desc" sort tokens for field.
func (e Entity) withSort(token, field, column string) Entity {
	e.Columns[field] = column
	e.Sorts[token+"-asc"] = OrderClause{Field: field, Direction: Asc}
	e.Sorts[token+"-desc"] = OrderClause{Field: field, Direction: Desc}
	return e
}

func (e Entity) Column(field string) (string, bool) {
	column, ok := e.Columns[field]
	return column, ok
}

var (
	Products = newEntity("products", "name", "name").
			withSort("price", "price", "price").
			withSort("quantity", "quantity", "quantity")
	Orders = newEntity("orders", "customerName", "customer_name").
		withSort("total", "total", "total")
	Users      = newEntity("users", "fullName", "full_name")
	Roles      = newEntity("roles", "name", "name")
	Promotions = newEntity("promotions", "name", "name").
			withSort("discount", "discountPercent", "discount_percent")
	OrderStatuses = newEntity("order-statuses", "name", "name")
	Deliveries    = newEntity("deliveries", "name", "name").
			withSort("price", "price", "price")
	Brands           = newEntity("brands", "name", "name")
	Categories       = newEntity("categories", "name", "name")
	Colors           = newEntity("colors", "name", "name")
	Cpus             = newEntity("cpus", "name", "name")
	Gpus             = newEntity("gpus", "name", "name")
	OperatingSystems = newEntity("operating-systems", "name", "name")
	Storages         = newEntity("storages", "title", "title")
	Rams             = newEntity("rams", "title", "title")
)
