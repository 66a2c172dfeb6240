package repository

import (
	"gorm.io/gorm"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
)

// applyPredicate translates a tagged predicate into WHERE clauses.
// Logical field names are resolved through the entity's column
// allowlist, so caller input never reaches SQL identifiers directly.
func applyPredicate(tx *gorm.DB, pred query.Predicate, columns map[string]string) (*gorm.DB, error) {
	for _, cond := range pred {
		col, ok := columns[cond.Field]
		if !ok {
			return nil, apperr.Invalidf("unsupported filter field %q", cond.Field)
		}

		switch cond.Op {
		case query.OpEq:
			tx = tx.Where(col+" = ?", cond.Value)
		case query.OpILike:
			// LOWER/LIKE instead of ILIKE keeps this portable to sqlite.
			tx = tx.Where("LOWER("+col+") LIKE LOWER(?)", cond.Value)
		case query.OpGT:
			tx = tx.Where(col+" > ?", cond.Value)
		case query.OpGTE:
			tx = tx.Where(col+" >= ?", cond.Value)
		case query.OpLTE:
			tx = tx.Where(col+" <= ?", cond.Value)
		case query.OpBetween:
			tx = tx.Where(col+" BETWEEN ? AND ?", cond.Value, cond.Upper)
		default:
			return nil, apperr.Invalidf("unsupported filter operator %q", cond.Op)
		}
	}
	return tx, nil
}

// applyOrder translates an ordering specification into ORDER BY
// clauses against the same column allowlist.
func applyOrder(tx *gorm.DB, order query.Order, columns map[string]string) (*gorm.DB, error) {
	for _, term := range order.Terms() {
		col, ok := columns[term.Path]
		if !ok {
			return nil, apperr.Invalidf("unsupported sort field %q", term.Path)
		}
		switch term.Direction {
		case "ASC", "DESC":
			tx = tx.Order(col + " " + term.Direction)
		default:
			return nil, apperr.Invalidf("unsupported sort direction %q", term.Direction)
		}
	}
	return tx, nil
}
