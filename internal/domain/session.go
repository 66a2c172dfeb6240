package domain

import (
	"time"
)

// Session is a named conversation thread owned by one caller identity.
type Session struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	User       string    `json:"user"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateSessionRequest represents a create session request.
type CreateSessionRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	IsFavorite bool   `json:"isFavorite"`
}

// UpdateSessionRequest represents a patch session request. Pointer
// fields distinguish "absent" from an explicit zero value, so
// isFavorite=false still counts as provided.
type UpdateSessionRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=255"`
	IsFavorite *bool   `json:"isFavorite"`
}

// ListSessionsRequest represents a list sessions request.
type ListSessionsRequest struct {
	Q          string `form:"q"`
	IsFavorite *bool  `form:"isFavorite"`
	FromDate   string `form:"fromDate"`
	ToDate     string `form:"toDate"`
	SortBy     string `form:"sortBy,default=createdAt"`
	Sort       string `form:"sort,default=DESC"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
}
