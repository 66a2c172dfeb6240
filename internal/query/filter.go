// Package query builds normalized predicate and ordering fragments from
// user-supplied list parameters. Predicates are plain tagged values
// (field, operator, value) so they can be tested without a store; the
// repository layer translates them to SQL.
package query

import (
	"time"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
)

// Op is a predicate operator.
type Op string

const (
	OpEq      Op = "eq"      // field = value
	OpILike   Op = "ilike"   // case-insensitive substring match
	OpGT      Op = "gt"      // field > value
	OpGTE     Op = "gte"     // field >= value
	OpLTE     Op = "lte"     // field <= value
	OpBetween Op = "between" // value <= field <= Upper
)

// Cond is one predicate condition over a logical field name.
type Cond struct {
	Field string
	Op    Op
	Value any
	// Upper is the inclusive upper bound, set only for OpBetween.
	Upper any
}

// Predicate is a conjunction of conditions. Empty means "match all".
type Predicate []Cond

// Eq builds an equality condition.
func Eq(field string, value any) Cond {
	return Cond{Field: field, Op: OpEq, Value: value}
}

// Search builds a case-insensitive substring condition, wildcarded on
// both sides.
func Search(field, q string) Cond {
	return Cond{Field: field, Op: OpILike, Value: "%" + q + "%"}
}

// After builds a strictly-greater-than condition, used for
// cursor-style forward paging over time-ordered identifiers.
func After(field string, value any) Cond {
	return Cond{Field: field, Op: OpGT, Value: value}
}

// FieldCreatedAt is the logical name of the creation-timestamp field
// targeted by DateRange.
const FieldCreatedAt = "createdAt"

// dateLayouts are accepted calendar-date formats, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// DateRange builds a predicate fragment over the creation timestamp.
// A start date is normalized to the start of its UTC day and an end
// date to the end of its UTC day (23:59:59.999). Both bounds are
// inclusive. An end date before the start date is rejected.
func DateRange(fromDate, toDate string) (Predicate, error) {
	var start, end time.Time

	if fromDate != "" {
		parsed, err := parseDate(fromDate)
		if err != nil {
			return nil, apperr.Invalidf("invalid start date %q", fromDate)
		}
		y, m, d := parsed.UTC().Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if toDate != "" {
		parsed, err := parseDate(toDate)
		if err != nil {
			return nil, apperr.Invalidf("invalid end date %q", toDate)
		}
		y, m, d := parsed.UTC().Date()
		end = time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
	}

	switch {
	case !start.IsZero() && !end.IsZero():
		if end.Before(start) {
			return nil, apperr.Invalidf("end date must be on or after start date")
		}
		return Predicate{{Field: FieldCreatedAt, Op: OpBetween, Value: start, Upper: end}}, nil
	case !start.IsZero():
		return Predicate{{Field: FieldCreatedAt, Op: OpGTE, Value: start}}, nil
	case !end.IsZero():
		return Predicate{{Field: FieldCreatedAt, Op: OpLTE, Value: end}}, nil
	default:
		return nil, nil
	}
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
