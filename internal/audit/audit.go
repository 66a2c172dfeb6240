// Package audit carries the shared audit/soft-delete columns embedded
// by every entity and the structured audit log events for mutations.
// Stamping is explicit: the actor is always passed in by the caller,
// never read from ambient state.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
)

// Fields are the audit and soft-delete columns shared by all entities.
// DeletedAt is a gorm.DeletedAt, so soft-deleted rows are excluded from
// queries by the store itself.
type Fields struct {
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy string         `gorm:"type:varchar(128)"`
	UpdatedBy string         `gorm:"type:varchar(128)"`
	DeletedBy string         `gorm:"type:varchar(128)"`
}

// StampCreate records the creating actor before insert.
func (f *Fields) StampCreate(actor string) {
	f.CreatedBy = actor
}

// StampUpdate records the updating actor before save.
func (f *Fields) StampUpdate(actor string) {
	f.UpdatedBy = actor
}

// StampDelete marks the row soft-deleted by actor at the given time.
// The row is retained; gorm.DeletedAt makes it invisible to reads.
func (f *Fields) StampDelete(actor string, at time.Time) {
	f.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
	f.DeletedBy = actor
}

// Audit actions.
const (
	ActionCreateSession   = "session.create"
	ActionUpdateSession   = "session.update"
	ActionFavoriteSession = "session.favorite"
	ActionDeleteSession   = "session.delete"
	ActionCreateMessage   = "message.create"
)

// Field constants for audit entries.
const (
	fieldAction = "action"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, actor, entityID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(fieldAction, action).
		Str(log.FieldUser, actor).
		Str("entity_id", entityID).
		Msg(msg)
}
