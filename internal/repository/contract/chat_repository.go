package contract

import (
	"context"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindByKey(ctx context.Context, sessionKey string) (*entity.ChatSession, error)
	Update(ctx context.Context, session *entity.ChatSession) error
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAllBySession(ctx context.Context, sessionKey string, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}
