// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"regexp"
	"strings"

	"offerstack-be/internal/dto"
	"offerstack-be/internal/entity"
	"offerstack-be/internal/pkg/logger"
	"offerstack-be/internal/repository/memory"
	"offerstack-be/internal/repository/specification"
	"offerstack-be/internal/repository/unitofwork"
	adminEvents "offerstack-be/pkg/admin/events"
	"offerstack-be/pkg/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fallbackReply is returned when the workflow engine is down or times out.
// The widget must always get a usable answer, never a 5xx.
const fallbackReply = "Thanks for reaching out! Our team is currently offline, but we've logged your message and will follow up by email shortly."

// historyWindow caps how many prior turns are forwarded to the engine.
const historyWindow = 20

// schedulingLinkPattern pulls booking links out of engine replies so the
// widget can render a call-to-action button instead of a raw URL.
var schedulingLinkPattern = regexp.MustCompile(`https?://[^\s)<>"]*(?:calendly\.com|cal\.com|savvycal\.com|tidycal\.com)[^\s)<>"]*`)

// diagnosticTriggers are visitor phrasings that indicate a completed
// self-diagnostic; they fire the diagnostic-completion workflow.
var diagnosticTriggers = []string{
	"finished the diagnostic",
	"completed the diagnostic",
	"finished the audit",
	"completed the audit",
	"done with the assessment",
	"completed the assessment",
}

type IChatService interface {
	Send(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionKey string) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	relay      *workflow.Client
	bus        *workflow.Bus
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	relay *workflow.Client,
	bus *workflow.Bus,
	publisher adminEvents.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		sessions:   sessions,
		relay:      relay,
		bus:        bus,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *chatService) Send(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessionKey := req.SessionKey
	if sessionKey == "" {
		sessionKey = uuid.New().String()
	}

	session, err := s.loadSession(ctx, uow, sessionKey, req)
	if err != nil {
		return nil, err
	}

	history, err := s.recentHistory(ctx, uow, sessionKey)
	if err != nil {
		return nil, err
	}

	// Persist the visitor turn before relaying: if the engine call fails we
	// still keep the message for the support team.
	userMessage := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionKey: sessionKey,
		Role:       entity.ChatRoleUser,
		Content:    req.Message,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	reply, escalate, schedulingLink := s.relayToEngine(ctx, session, req.Message, history)

	metadata := map[string]interface{}{}
	if schedulingLink == "" {
		schedulingLink = schedulingLinkPattern.FindString(reply)
	}
	if schedulingLink != "" {
		metadata["scheduling_link"] = schedulingLink
	}

	assistantMessage := &entity.ChatMessage{
		Id:         uuid.New(),
		SessionKey: sessionKey,
		Role:       entity.ChatRoleAssistant,
		Content:    reply,
		Metadata:   metadata,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if escalate && !session.IsEscalated {
		session.IsEscalated = true
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			s.logger.Warn("CHAT", "Failed to persist escalation flag", map[string]interface{}{
				"sessionKey": sessionKey,
				"error":      err.Error(),
			})
		}
		s.publisher.PublishChatEscalated(ctx, sessionKey, session.VisitorEmail)
	}

	s.detectDiagnostic(ctx, sessionKey, session.VisitorEmail, req.Message)
	s.cacheSession(session)

	responseMeta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if str, ok := v.(string); ok {
			responseMeta[k] = str
		}
	}

	return &dto.ChatResponse{
		SessionKey:     sessionKey,
		Reply:          reply,
		Role:           string(entity.ChatRoleAssistant),
		Escalated:      session.IsEscalated,
		SchedulingLink: schedulingLink,
		Metadata:       responseMeta,
	}, nil
}

func (s *chatService) History(ctx context.Context, sessionKey string) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindByKey(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAllBySession(ctx, sessionKey,
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	history := make([]dto.ChatHistoryMessage, 0, len(messages))
	for _, msg := range messages {
		history = append(history, dto.ChatHistoryMessage{
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	return &dto.ChatHistoryResponse{
		SessionKey:  sessionKey,
		IsEscalated: session.IsEscalated,
		Messages:    history,
	}, nil
}

// loadSession finds or creates the session, preferring the in-memory cache so
// an active conversation doesn't hit Postgres on every turn.
func (s *chatService) loadSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionKey string, req *dto.ChatRequest) (*entity.ChatSession, error) {
	if cached, found := s.sessions.Get(sessionKey); found {
		session := &entity.ChatSession{
			Id:           cached.Id,
			SessionKey:   cached.SessionKey,
			VisitorEmail: cached.VisitorEmail,
			VisitorName:  cached.VisitorName,
			IsEscalated:  cached.IsEscalated,
		}
		if s.mergeIdentity(session, req) {
			if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
				return nil, err
			}
		}
		return session, nil
	}

	session, err := uow.ChatSessionRepository().FindByKey(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.ChatSession{
			Id:           uuid.New(),
			SessionKey:   sessionKey,
			VisitorEmail: strings.ToLower(req.VisitorEmail),
			VisitorName:  req.VisitorName,
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	if s.mergeIdentity(session, req) {
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// mergeIdentity backfills visitor identity once the widget learns it mid
// conversation. Returns true when anything changed.
func (s *chatService) mergeIdentity(session *entity.ChatSession, req *dto.ChatRequest) bool {
	changed := false
	if req.VisitorEmail != "" && session.VisitorEmail == "" {
		session.VisitorEmail = strings.ToLower(req.VisitorEmail)
		changed = true
	}
	if req.VisitorName != "" && session.VisitorName == "" {
		session.VisitorName = req.VisitorName
		changed = true
	}
	return changed
}

func (s *chatService) recentHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionKey string) ([]workflow.ChatTurn, error) {
	messages, err := uow.ChatMessageRepository().FindAllBySession(ctx, sessionKey,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyWindow, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	// Newest-first from the query; the engine wants chronological order.
	turns := make([]workflow.ChatTurn, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		turns = append(turns, workflow.ChatTurn{
			Role:    string(messages[i].Role),
			Content: messages[i].Content,
		})
	}
	return turns, nil
}

func (s *chatService) relayToEngine(ctx context.Context, session *entity.ChatSession, message string, history []workflow.ChatTurn) (reply string, escalate bool, schedulingLink string) {
	resp, err := s.relay.RelayChat(ctx, workflow.ChatRelayRequest{
		SessionKey:   session.SessionKey,
		Message:      message,
		VisitorEmail: session.VisitorEmail,
		VisitorName:  session.VisitorName,
		History:      history,
	})
	if err != nil {
		s.logger.Warn("CHAT", "Workflow relay failed, serving fallback", map[string]interface{}{
			"sessionKey": session.SessionKey,
			"error":      err.Error(),
		})
		return fallbackReply, false, ""
	}
	if resp.Reply == "" {
		return fallbackReply, resp.Escalate, resp.SchedulingLink
	}
	return resp.Reply, resp.Escalate, resp.SchedulingLink
}

// detectDiagnostic fires the diagnostic-completion workflow when the visitor
// says they finished a self-serve diagnostic. Best-effort, queued on the bus.
func (s *chatService) detectDiagnostic(ctx context.Context, sessionKey, visitorEmail, message string) {
	lowered := strings.ToLower(message)
	for _, trigger := range diagnosticTriggers {
		if strings.Contains(lowered, trigger) {
			s.bus.PublishDiagnostic(ctx, workflow.DiagnosticEvent{
				SessionKey:   sessionKey,
				VisitorEmail: visitorEmail,
				Trigger:      trigger,
				Message:      message,
			})
			return
		}
	}
}

func (s *chatService) cacheSession(session *entity.ChatSession) {
	s.sessions.Save(&memory.VisitorSession{
		Id:           session.Id,
		SessionKey:   session.SessionKey,
		VisitorEmail: session.VisitorEmail,
		VisitorName:  session.VisitorName,
		IsEscalated:  session.IsEscalated,
	})
}
