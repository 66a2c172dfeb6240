package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/audit"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/repository"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

// messageServiceImpl implements MessageService.
type messageServiceImpl struct {
	repo     repository.MessageRepository
	sessions SessionService
}

// NewMessageService creates a new message service.
func NewMessageService(repo repository.MessageRepository, sessions SessionService) MessageService {
	return &messageServiceImpl{repo: repo, sessions: sessions}
}

// Create validates the parent session through the ownership guard,
// then inserts the message with a time-ordered identifier. Guard
// errors (InvalidArgument, NotFound, Forbidden) propagate unchanged.
func (s *messageServiceImpl) Create(ctx context.Context, sessionID, user string, req *domain.CreateMessageRequest) (*domain.Message, error) {
	if _, err := s.sessions.Resolve(ctx, sessionID, user, true); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	message := &domain.Message{
		ID:        id.String(),
		SessionID: sessionID,
		Message:   req.Message,
		Sender:    user,
		Metadata:  req.Metadata,
	}

	if err := s.repo.Create(ctx, message, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionCreateMessage, user, message.ID, "message created")
	return message, nil
}

// List returns a session's messages filtered, sorted, and paginated.
// The parent session is resolved through the ownership guard first, so
// callers cannot page through another user's conversation.
func (s *messageServiceImpl) List(ctx context.Context, sessionID, user string, req *domain.ListMessagesRequest) (*paginate.Page[domain.Message], error) {
	if _, err := s.sessions.Resolve(ctx, sessionID, user, true); err != nil {
		return nil, err
	}

	page, limit := normalizePaging(req.Page, req.Limit)

	pred := query.Predicate{query.Eq("sessionId", sessionID)}

	datePred, err := query.DateRange(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	pred = append(pred, datePred...)

	if req.Q != "" {
		pred = append(pred, query.Search("message", req.Q))
	}
	if req.AfterID != "" {
		pred = append(pred, query.After("id", req.AfterID))
	}

	return s.repo.FindPage(ctx, pred, query.SortDeconstruct(req.SortBy, req.Sort), page, limit)
}
