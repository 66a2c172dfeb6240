package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/audit"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/repository"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// sessionServiceImpl implements SessionService.
type sessionServiceImpl struct {
	repo repository.SessionRepository
}

// NewSessionService creates a new session service.
func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionServiceImpl{repo: repo}
}

// Create inserts a new session owned by user.
func (s *sessionServiceImpl) Create(ctx context.Context, user string, req *domain.CreateSessionRequest) (*domain.Session, error) {
	session := &domain.Session{
		ID:         uuid.New().String(),
		Title:      req.Title,
		User:       user,
		IsFavorite: req.IsFavorite,
	}

	if err := s.repo.Create(ctx, session, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionCreateSession, user, session.ID, "session created")
	return session, nil
}

// Resolve looks up a session by id and enforces ownership. See the
// interface doc for the failOnMissing contract.
func (s *sessionServiceImpl) Resolve(ctx context.Context, id, caller string, failOnMissing bool) (*domain.Session, error) {
	// A malformed id is a client error, not a missing resource, so it
	// fails regardless of failOnMissing.
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Invalidf("invalid session id %q", id)
	}

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) && !failOnMissing {
			return nil, nil
		}
		return nil, err
	}

	if caller != "" && session.User != caller {
		return nil, apperr.Forbiddenf("you do not have access to this chat")
	}

	return session, nil
}

// Get retrieves a session owned by user.
func (s *sessionServiceImpl) Get(ctx context.Context, id, user string) (*domain.Session, error) {
	return s.Resolve(ctx, id, user, true)
}

// List returns the caller's sessions filtered, sorted, and paginated.
func (s *sessionServiceImpl) List(ctx context.Context, user string, req *domain.ListSessionsRequest) (*paginate.Page[domain.Session], error) {
	page, limit := normalizePaging(req.Page, req.Limit)

	pred := query.Predicate{query.Eq("user", user)}

	datePred, err := query.DateRange(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	pred = append(pred, datePred...)

	if req.IsFavorite != nil {
		pred = append(pred, query.Eq("isFavorite", *req.IsFavorite))
	}
	if req.Q != "" {
		pred = append(pred, query.Search("title", req.Q))
	}

	return s.repo.FindPage(ctx, pred, query.SortDeconstruct(req.SortBy, req.Sort), page, limit)
}

// Patch overwrites only the fields supplied in the request.
func (s *sessionServiceImpl) Patch(ctx context.Context, id, user string, req *domain.UpdateSessionRequest) (*domain.Session, error) {
	session, err := s.Resolve(ctx, id, user, true)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.IsFavorite != nil {
		session.IsFavorite = *req.IsFavorite
	}

	if err := s.repo.Update(ctx, session, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdateSession, user, session.ID, "session updated")
	return session, nil
}

// ToggleFavorite flips the favorite flag and returns the updated session.
func (s *sessionServiceImpl) ToggleFavorite(ctx context.Context, id, user string) (*domain.Session, error) {
	session, err := s.Resolve(ctx, id, user, true)
	if err != nil {
		return nil, err
	}

	session.IsFavorite = !session.IsFavorite

	if err := s.repo.Update(ctx, session, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionFavoriteSession, user, session.ID, "session favorite toggled")
	return session, nil
}

// Delete soft-deletes a session owned by user. The row is retained
// with its deletion timestamp and actor; it becomes invisible to all
// read paths.
func (s *sessionServiceImpl) Delete(ctx context.Context, id, user string) error {
	if _, err := s.Resolve(ctx, id, user, true); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id, user); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionDeleteSession, user, id, "session deleted")
	return nil
}

// normalizePaging applies the default page and limit for out-of-range
// values, keeping the pagination engine's limit guard unreachable from
// the API surface.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}
