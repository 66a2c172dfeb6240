package domain

import (
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/audit"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/database"
)

// SessionModel is the GORM model for the sessions table.
type SessionModel struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	Title      string `gorm:"type:varchar(255);not null;index:idx_sessions_user_title,priority:2"`
	User       string `gorm:"type:varchar(128);not null;default:'default';index:idx_sessions_user;index:idx_sessions_user_title,priority:1;index:idx_sessions_user_fav,priority:1"`
	IsFavorite bool   `gorm:"not null;default:false;index:idx_sessions_user_fav,priority:2"`
	audit.Fields
}

// TableName specifies the table name for SessionModel.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts SessionModel to domain Session.
func (m *SessionModel) ToDomain() *Session {
	return &Session{
		ID:         m.ID,
		Title:      m.Title,
		User:       m.User,
		IsFavorite: m.IsFavorite,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SessionToModel converts domain Session to SessionModel.
func SessionToModel(s *Session) *SessionModel {
	return &SessionModel{
		ID:         s.ID,
		Title:      s.Title,
		User:       s.User,
		IsFavorite: s.IsFavorite,
	}
}

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        string           `gorm:"type:varchar(36);primaryKey"`
	SessionID string           `gorm:"type:varchar(36);not null;index:idx_messages_session"`
	Session   *SessionModel    `gorm:"foreignKey:SessionID"`
	Message   string           `gorm:"type:text;not null"`
	Sender    string           `gorm:"type:varchar(128);not null"`
	Metadata  database.JSONMap `gorm:"column:metadata"`
	audit.Fields
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message.
func (m *MessageModel) ToDomain() *Message {
	return &Message{
		ID:        m.ID,
		SessionID: m.SessionID,
		Message:   m.Message,
		Sender:    m.Sender,
		Metadata:  map[string]any(m.Metadata),
		CreatedAt: m.CreatedAt,
	}
}

// MessageToModel converts domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	return &MessageModel{
		ID:        msg.ID,
		SessionID: msg.SessionID,
		Message:   msg.Message,
		Sender:    msg.Sender,
		Metadata:  database.JSONMap(msg.Metadata),
	}
}
