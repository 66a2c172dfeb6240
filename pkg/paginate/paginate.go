// Package paginate implements offset pagination over a GORM query,
// returning a page envelope with navigation metadata.
package paginate

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrInvalidLimit is returned when a non-positive limit is requested.
// The page-count computation is undefined for limit < 1, so the engine
// rejects it instead of guessing.
var ErrInvalidLimit = errors.New("limit must be positive")

// Options control a single Paginate call.
type Options struct {
	// Page is 1-based; values below 1 are treated as 1.
	Page int
	// Limit is the page size.
	Limit int
	// Select restricts the fetched columns. Empty selects everything.
	Select []string
	// Relations are association names to preload on the fetched rows.
	Relations []string
}

// Page is the result envelope of a paginated list. All fields are
// recomputed on every call, never cached.
type Page[T any] struct {
	Items           []T   `json:"items"`
	Limit           int   `json:"limit"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Paginate runs exactly one count and one fetch against tx, which must
// already carry any predicate and ordering. It never mutates the
// underlying rows. A page past the last one yields an empty item list
// with HasNextPage=false. Stable pagination across pages requires the
// caller to supply an ordering; none is imposed here.
func Paginate[T any](ctx context.Context, tx *gorm.DB, opts Options) (*Page[T], error) {
	if opts.Limit < 1 {
		return nil, ErrInvalidLimit
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	q := tx.Session(&gorm.Session{}).WithContext(ctx).
		Offset((page - 1) * opts.Limit).
		Limit(opts.Limit)
	if len(opts.Select) > 0 {
		q = q.Select(opts.Select)
	}
	for _, rel := range opts.Relations {
		q = q.Preload(rel)
	}

	items := make([]T, 0, opts.Limit)
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	return Envelope(items, total, page, opts.Limit), nil
}

// Envelope builds the page envelope from a fetched slice and totals.
func Envelope[T any](items []T, total int64, page, limit int) *Page[T] {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &Page[T]{
		Items:           items,
		Limit:           limit,
		TotalItems:      total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// Map converts a page of T into a page of U, preserving the
// navigation metadata.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return &Page[U]{
		Items:           items,
		Limit:           p.Limit,
		TotalItems:      p.TotalItems,
		TotalPages:      p.TotalPages,
		CurrentPage:     p.CurrentPage,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}
