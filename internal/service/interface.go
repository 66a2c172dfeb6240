package service

import (
	"context"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

// SessionService defines the interface for session business logic.
type SessionService interface {
	Create(ctx context.Context, user string, req *domain.CreateSessionRequest) (*domain.Session, error)
	Get(ctx context.Context, id, user string) (*domain.Session, error)
	List(ctx context.Context, user string, req *domain.ListSessionsRequest) (*paginate.Page[domain.Session], error)
	Patch(ctx context.Context, id, user string, req *domain.UpdateSessionRequest) (*domain.Session, error)
	ToggleFavorite(ctx context.Context, id, user string) (*domain.Session, error)
	Delete(ctx context.Context, id, user string) error

	// Resolve is the ownership guard: it looks up a session by id,
	// enforcing identifier validity, existence, and owner match. With
	// failOnMissing=false an absent session yields (nil, nil) instead of
	// ErrNotFound; invalid ids and owner mismatches always fail.
	Resolve(ctx context.Context, id, caller string, failOnMissing bool) (*domain.Session, error)
}

// MessageService defines the interface for message business logic.
type MessageService interface {
	Create(ctx context.Context, sessionID, user string, req *domain.CreateMessageRequest) (*domain.Message, error)
	List(ctx context.Context, sessionID, user string, req *domain.ListMessagesRequest) (*paginate.Page[domain.Message], error)
}
