package implementation

import (
	"context"
	"encoding/json"

	"offerstack-be/internal/entity"
	"offerstack-be/internal/model"
	"offerstack-be/internal/repository/contract"
	"offerstack-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type chatSessionRepositoryImpl struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &chatSessionRepositoryImpl{db: db}
}

func (r *chatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := &model.ChatSession{
		Id:           session.Id,
		SessionKey:   session.SessionKey,
		VisitorEmail: session.VisitorEmail,
		VisitorName:  session.VisitorName,
		IsEscalated:  session.IsEscalated,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	session.Id = m.Id
	session.CreatedAt = m.CreatedAt
	return nil
}

func (r *chatSessionRepositoryImpl) FindByKey(ctx context.Context, sessionKey string) (*entity.ChatSession, error) {
	var m model.ChatSession
	err := r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.ChatSession{
		Id:           m.Id,
		SessionKey:   m.SessionKey,
		VisitorEmail: m.VisitorEmail,
		VisitorName:  m.VisitorName,
		IsEscalated:  m.IsEscalated,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r *chatSessionRepositoryImpl) Update(ctx context.Context, session *entity.ChatSession) error {
	return r.db.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", session.Id).
		Updates(map[string]interface{}{
			"visitor_email": session.VisitorEmail,
			"visitor_name":  session.VisitorName,
			"is_escalated":  session.IsEscalated,
		}).Error
}

// --- Chat Message Repository ---

type chatMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &chatMessageRepositoryImpl{db: db}
}

func (r *chatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	metadata, err := json.Marshal(message.Metadata)
	if err != nil {
		return err
	}
	m := &model.ChatMessage{
		Id:         message.Id,
		SessionKey: message.SessionKey,
		Role:       string(message.Role),
		Content:    message.Content,
		Metadata:   datatypes.JSON(metadata),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	message.Id = m.Id
	message.CreatedAt = m.CreatedAt
	return nil
}

func (r *chatMessageRepositoryImpl) FindAllBySession(ctx context.Context, sessionKey string, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var ms []*model.ChatMessage
	// Ordering is left to the caller's specs: history reads ascending, the
	// relay window reads descending with a limit.
	query := r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	var messages []*entity.ChatMessage
	for _, m := range ms {
		var metadata map[string]interface{}
		if len(m.Metadata) > 0 {
			if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
				return nil, err
			}
		}
		messages = append(messages, &entity.ChatMessage{
			Id:         m.Id,
			SessionKey: m.SessionKey,
			Role:       entity.ChatRole(m.Role),
			Content:    m.Content,
			Metadata:   metadata,
			CreatedAt:  m.CreatedAt,
		})
	}

	return messages, nil
}
