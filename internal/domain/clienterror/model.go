package clienterror

import (
	"time"

	"github.com/google/uuid"
)

// ReportInput is what a browser sends when a script fails.
type ReportInput struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Source  string `json:"source"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Stack   string `json:"stack"`
	URL     string `json:"url"`
}

// Metadata is captured by the transport layer, not the client payload.
type Metadata struct {
	UserAgent string
	ClientIP  string
	RequestID string
}

// Report is a stored client error.
type Report struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	Type       string    `json:"type,omitempty"`
	Source     string    `json:"source,omitempty"`
	Line       int       `json:"line,omitempty"`
	Column     int       `json:"column,omitempty"`
	Stack      string    `json:"stack,omitempty"`
	URL        string    `json:"url,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// SubmitResponse acknowledges a report.
type SubmitResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// Config bounds stored field sizes.
type Config struct {
	MaxMessageLength int
	MaxStackLength   int
}
