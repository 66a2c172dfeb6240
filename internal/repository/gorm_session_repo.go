package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/apperr"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

// sessionColumns maps logical field names to sessions table columns.
// "user" is a reserved word in Postgres, so it is pre-quoted.
var sessionColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"user":       `"user"`,
	"isFavorite": "is_favorite",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM-based session repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create inserts a new session stamped with the creating actor.
func (r *GormSessionRepository) Create(ctx context.Context, session *domain.Session, actor string) error {
	l := log.Ctx(ctx)

	model := domain.SessionToModel(session)
	model.StampCreate(actor)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create session in db")
		return result.Error
	}

	// Propagate generated timestamps back to the domain object.
	session.CreatedAt = model.CreatedAt
	session.UpdatedAt = model.UpdatedAt
	l.Debug().Str(log.FieldSessionID, session.ID).Msg("session created in db")
	return nil
}

// FindByID retrieves a session by ID. Soft-deleted rows are excluded
// by gorm.DeletedAt.
func (r *GormSessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	l := log.Ctx(ctx)

	var model domain.SessionModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("no such chat")
		}
		l.Error().Err(result.Error).Str(log.FieldSessionID, id).Msg("failed to get session by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update saves mutable fields of an existing session, stamped with the
// updating actor. Last write wins; there is no concurrency token.
func (r *GormSessionRepository) Update(ctx context.Context, session *domain.Session, actor string) error {
	l := log.Ctx(ctx)

	var model domain.SessionModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", session.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("no such chat")
		}
		return result.Error
	}

	model.Title = session.Title
	model.IsFavorite = session.IsFavorite
	model.StampUpdate(actor)

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		l.Error().Err(err).Str(log.FieldSessionID, session.ID).Msg("failed to update session in db")
		return err
	}

	session.UpdatedAt = model.UpdatedAt
	l.Debug().Str(log.FieldSessionID, session.ID).Msg("session updated in db")
	return nil
}

// SoftDelete marks a session deleted by actor. The row persists with
// its deletion timestamp and actor set.
func (r *GormSessionRepository) SoftDelete(ctx context.Context, id string, actor string) error {
	l := log.Ctx(ctx)

	var model domain.SessionModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("no such chat")
		}
		return result.Error
	}

	model.StampDelete(actor, time.Now().UTC())

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		l.Error().Err(err).Str(log.FieldSessionID, id).Msg("failed to soft delete session in db")
		return err
	}

	l.Debug().Str(log.FieldSessionID, id).Msg("session soft deleted in db")
	return nil
}

// FindPage lists sessions matching the predicate, ordered and paginated.
func (r *GormSessionRepository) FindPage(ctx context.Context, pred query.Predicate, order query.Order, page, limit int) (*paginate.Page[domain.Session], error) {
	l := log.Ctx(ctx)

	tx := r.db.WithContext(ctx).Model(&domain.SessionModel{})

	tx, err := applyPredicate(tx, pred, sessionColumns)
	if err != nil {
		return nil, err
	}
	tx, err = applyOrder(tx, order, sessionColumns)
	if err != nil {
		return nil, err
	}

	modelPage, err := paginate.Paginate[domain.SessionModel](ctx, tx, paginate.Options{Page: page, Limit: limit})
	if err != nil {
		l.Error().Err(err).Msg("failed to list sessions from db")
		return nil, err
	}

	return paginate.Map(modelPage, func(m domain.SessionModel) domain.Session {
		return *m.ToDomain()
	}), nil
}
