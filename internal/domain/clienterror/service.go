package clienterror

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/agemaster/pkg/errors"
	"github.com/yanqian/agemaster/pkg/util"
)

// CodeInvalidReport marks a report without any usable content.
const CodeInvalidReport = "invalid_report"

const (
	defaultMaxMessage = 500
	defaultMaxStack   = 4000
	maxShortField     = 500
)

// Service records errors reported by the web client.
type Service interface {
	Submit(ctx context.Context, input ReportInput, meta Metadata) (SubmitResponse, error)
}

type service struct {
	cfg    Config
	repo   Repository
	clock  util.Clock
	logger *slog.Logger
}

// NewService wires up client error reporting.
func NewService(cfg Config, repo Repository, clock util.Clock, logger *slog.Logger) Service {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = defaultMaxMessage
	}
	if cfg.MaxStackLength <= 0 {
		cfg.MaxStackLength = defaultMaxStack
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		clock:  clock,
		logger: logger.With("component", "clienterror.service"),
	}
}

func (s *service) Submit(ctx context.Context, input ReportInput, meta Metadata) (SubmitResponse, error) {
	message := truncate(strings.TrimSpace(input.Message), s.cfg.MaxMessageLength)
	stack := truncate(strings.TrimSpace(input.Stack), s.cfg.MaxStackLength)
	if message == "" && stack == "" {
		return SubmitResponse{}, apperrors.Wrap(CodeInvalidReport, "Error report must include a message or stack", nil)
	}
	if message == "" {
		message = firstLine(stack)
	}

	report := Report{
		ID:         uuid.New(),
		Message:    message,
		Type:       truncate(strings.TrimSpace(input.Type), maxShortField),
		Source:     truncate(strings.TrimSpace(input.Source), maxShortField),
		Line:       max(input.Line, 0),
		Column:     max(input.Column, 0),
		Stack:      stack,
		URL:        truncate(strings.TrimSpace(input.URL), maxShortField),
		UserAgent:  truncate(meta.UserAgent, maxShortField),
		ClientIP:   meta.ClientIP,
		RequestID:  meta.RequestID,
		ReceivedAt: s.clock.Now().UTC(),
	}

	s.logger.Warn("client error reported",
		"report_id", report.ID,
		"message", report.Message,
		"source", report.Source,
		"line", report.Line,
		"url", report.URL,
	)
	if err := s.repo.Save(ctx, report); err != nil {
		return SubmitResponse{}, apperrors.Wrap("client_error_store", "failed to store error report", err)
	}
	return SubmitResponse{Success: true, ID: report.ID}, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
