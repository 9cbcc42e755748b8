package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Table is a physical restaurant table ("meja"). Tables are keyed by Number
// in every remote path.
type Table struct {
	ID       int64      `json:"id" bson:"id"`
	Number   int        `json:"nomor" bson:"nomor"`
	Username string     `json:"username,omitempty" bson:"username,omitempty"`
	Cart     *TableCart `json:"cart,omitempty" bson:"cart,omitempty"`
}

func (t Table) Occupied() bool { return t.Username != "" }

// TableCart is the cart preview embedded in a table snapshot.
type TableCart struct {
	ID    ID              `json:"id,omitempty" bson:"id,omitempty"`
	Items []TableCartItem `json:"items" bson:"items"`
}

type TableCartItem struct {
	MenuName string          `json:"menuName" bson:"menu_name"`
	Quantity int             `json:"quantity" bson:"quantity"`
	Price    decimal.Decimal `json:"price,omitempty" bson:"-"`
}

// Quantity sums the quantities of all items in the cart.
func (c *TableCart) Quantity() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// Snapshot is one full replace-all delivery of table states.
type Snapshot struct {
	Tables     []Table
	ReceivedAt time.Time
}

// ValidateTables checks the uniqueness of ids and numbers across a snapshot.
func ValidateTables(tables []Table) error {
	ids := make(map[int64]struct{}, len(tables))
	numbers := make(map[int]struct{}, len(tables))

	for _, t := range tables {
		if _, dup := ids[t.ID]; dup {
			return fmt.Errorf("duplicate table id %d", t.ID)
		}
		if _, dup := numbers[t.Number]; dup {
			return fmt.Errorf("duplicate table number %d", t.Number)
		}
		ids[t.ID] = struct{}{}
		numbers[t.Number] = struct{}{}
	}

	return nil
}

// FindByUsername returns the first table assigned to username.
func FindByUsername(tables []Table, username string) (Table, bool) {
	if username == "" {
		return Table{}, false
	}
	for _, t := range tables {
		if t.Username == username {
			return t, true
		}
	}
	return Table{}, false
}

func FindByNumber(tables []Table, number int) (Table, bool) {
	for _, t := range tables {
		if t.Number == number {
			return t, true
		}
	}
	return Table{}, false
}
