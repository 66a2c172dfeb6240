package domain

import (
	"time"
)

// Message is one turn within a session, attributed to a sender
// identity. Messages are immutable once created. Identifiers are
// time-ordered (UUIDv7) so they sort chronologically and can serve as
// forward-paging cursors.
type Message struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId"`
	Message   string         `json:"message"`
	Sender    string         `json:"sender"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CreateMessageRequest represents a send message request.
type CreateMessageRequest struct {
	Message  string         `json:"message" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

// ListMessagesRequest represents a list messages request. AfterID is a
// cursor-style hint: only messages with identifiers strictly greater
// than it are returned. It combines with page/limit.
type ListMessagesRequest struct {
	Q        string `form:"q"`
	AfterID  string `form:"afterId"`
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
	SortBy   string `form:"sortBy,default=createdAt"`
	Sort     string `form:"sort,default=DESC"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}
