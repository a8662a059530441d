// FILE: internal/entity/chat_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSupport   ChatRole = "support"
)

// ChatSession tracks one visitor conversation. SessionKey is the external id
// the widget holds on to; the workflow engine keys its memory off it too.
type ChatSession struct {
	Id           uuid.UUID
	SessionKey   string
	VisitorEmail string
	VisitorName  string
	IsEscalated  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ChatMessage struct {
	Id         uuid.UUID
	SessionKey string
	Role       ChatRole
	Content    string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
