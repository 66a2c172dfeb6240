package query

import "strings"

// Order is a nested ordering specification. A dot-separated sort key
// like "session.title" with direction "asc" becomes
// {"session": {"title": "ASC"}}; a flat key maps straight to its
// direction. Empty means no explicit order (store default applies).
type Order map[string]any

// SortDeconstruct folds a dot-separated sort field right-to-left into a
// nested Order, the innermost component carrying the uppercased
// direction. Either input being empty yields an empty Order. The field
// is not validated here; the repository checks it against its column
// allowlist.
func SortDeconstruct(sortBy, sort string) Order {
	if sortBy == "" || sort == "" {
		return Order{}
	}

	parts := strings.Split(sortBy, ".")
	var nested any = strings.ToUpper(sort)
	for i := len(parts) - 1; i >= 0; i-- {
		nested = Order{parts[i]: nested}
	}
	return nested.(Order)
}

// SortTerm is one flattened ordering term: a dot-separated field path
// and an uppercased direction.
type SortTerm struct {
	Path      string
	Direction string
}

// Terms flattens the nested Order back into path/direction pairs.
func (o Order) Terms() []SortTerm {
	var terms []SortTerm
	for key, val := range o {
		switch v := val.(type) {
		case Order:
			for _, inner := range v.Terms() {
				terms = append(terms, SortTerm{Path: key + "." + inner.Path, Direction: inner.Direction})
			}
		case string:
			terms = append(terms, SortTerm{Path: key, Direction: v})
		}
	}
	return terms
}
