package models

// AIQueryRequest is the body of POST /ai/query.
type AIQueryRequest struct {
	Query   string         `json:"query"`
	Tool    string         `json:"tool"`
	Context map[string]any `json:"context,omitempty"`
}

// AIResponse is the envelope every AI endpoint returns. It is always
// well-formed; failures surface through Success and Error, never as a
// raw server error.
type AIResponse struct {
	Success bool           `json:"success"`
	Tool    string         `json:"tool"`
	Query   string         `json:"query"`
	Result  map[string]any `json:"result"`
	Error   string         `json:"error,omitempty"`
}

// AIChatRequest is the body of POST /ai/chat.
type AIChatRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// NotificationSendRequest delivers one generated notification draft.
type NotificationSendRequest struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}
