package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrMissingID = errors.New("record id missing")
)

// Order is one ORDER BY term of a FetchByUsername query.
type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order {
	return Order{Field: field}
}

func Desc(field string) Order {
	return Order{Field: field, Desc: true}
}

// OrderClause renders the order as SQL. Fields not present in allowed are
// rejected, since they end up in the query text verbatim.
func OrderClause(order []Order, allowed map[string]bool) (string, error) {
	if len(order) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(order))
	for _, o := range order {
		if !allowed[o.Field] {
			return "", fmt.Errorf("order by %q not allowed", o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, o.Field+" "+dir)
	}
	return strings.Join(terms, ", "), nil
}
