package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/query"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/paginate"
)

// messageColumns maps logical field names to messages table columns.
var messageColumns = map[string]string{
	"id":        "id",
	"sessionId": "session_id",
	"message":   "message",
	"sender":    "sender",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create inserts a new message stamped with the creating actor.
func (r *GormMessageRepository) Create(ctx context.Context, message *domain.Message, actor string) error {
	l := log.Ctx(ctx)

	model := domain.MessageToModel(message)
	model.StampCreate(actor)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldSessionID, message.SessionID).Msg("failed to create message in db")
		return result.Error
	}

	message.CreatedAt = model.CreatedAt
	l.Debug().
		Str(log.FieldMessageID, message.ID).
		Str(log.FieldSessionID, message.SessionID).
		Msg("message created in db")
	return nil
}

// FindPage lists messages matching the predicate, ordered and paginated.
func (r *GormMessageRepository) FindPage(ctx context.Context, pred query.Predicate, order query.Order, page, limit int) (*paginate.Page[domain.Message], error) {
	l := log.Ctx(ctx)

	tx := r.db.WithContext(ctx).Model(&domain.MessageModel{})

	tx, err := applyPredicate(tx, pred, messageColumns)
	if err != nil {
		return nil, err
	}
	tx, err = applyOrder(tx, order, messageColumns)
	if err != nil {
		return nil, err
	}

	modelPage, err := paginate.Paginate[domain.MessageModel](ctx, tx, paginate.Options{Page: page, Limit: limit})
	if err != nil {
		l.Error().Err(err).Msg("failed to list messages from db")
		return nil, err
	}

	return paginate.Map(modelPage, func(m domain.MessageModel) domain.Message {
		return *m.ToDomain()
	}), nil
}
