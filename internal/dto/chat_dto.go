package dto

import "time"

type ChatRequest struct {
	SessionKey   string `json:"session_key"`
	Message      string `json:"message" validate:"required,max=4000"`
	VisitorEmail string `json:"visitor_email" validate:"omitempty,email"`
	VisitorName  string `json:"visitor_name"`
}

type ChatResponse struct {
	SessionKey     string            `json:"session_key"`
	Reply          string            `json:"reply"`
	Role           string            `json:"role"`
	Escalated      bool              `json:"escalated"`
	SchedulingLink string            `json:"scheduling_link,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type ChatHistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionKey  string               `json:"session_key"`
	IsEscalated bool                 `json:"is_escalated"`
	Messages    []ChatHistoryMessage `json:"messages"`
}
