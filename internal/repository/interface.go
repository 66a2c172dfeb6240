package repository

import (
	"context"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session, actor string) error
	// FindByID returns apperr.ErrNotFound for absent or soft-deleted rows.
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session, actor string) error
	// SoftDelete stamps the deletion timestamp and actor; the row is retained.
	SoftDelete(ctx context.Context, id string, actor string) error
	FindPage(ctx context.Context, pred query.Predicate, order query.Order, page, limit int) (*paginate.Page[domain.Session], error)
}

// MessageRepository defines the interface for message persistence.
// Messages have no update or delete path.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message, actor string) error
	FindPage(ctx context.Context, pred query.Predicate, order query.Order, page, limit int) (*paginate.Page[domain.Message], error)
}
