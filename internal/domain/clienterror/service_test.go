package clienterror

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/agemaster/pkg/errors"
	"github.com/yanqian/agemaster/pkg/util"
)

var reportedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSubmitStoresReport(t *testing.T) {
	repo := &stubRepository{}
	svc := newTestService(repo)

	resp, err := svc.Submit(context.Background(), ReportInput{
		Message: "  TypeError: x is undefined ",
		Source:  "/static/js/calculator.js",
		Line:    42,
		Column:  -3,
		URL:     "https://agemaster.example/",
	}, Metadata{UserAgent: "Mozilla/5.0", ClientIP: "203.0.113.9", RequestID: "req-1"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotEqual(t, uuid.Nil, resp.ID)

	require.Len(t, repo.saved, 1)
	stored := repo.saved[0]
	require.Equal(t, resp.ID, stored.ID)
	require.Equal(t, "TypeError: x is undefined", stored.Message)
	require.Equal(t, 42, stored.Line)
	require.Zero(t, stored.Column)
	require.Equal(t, "Mozilla/5.0", stored.UserAgent)
	require.Equal(t, "req-1", stored.RequestID)
	require.Equal(t, reportedAt, stored.ReceivedAt)
}

func TestSubmitDerivesMessageFromStack(t *testing.T) {
	repo := &stubRepository{}
	_, err := newTestService(repo).Submit(context.Background(), ReportInput{Stack: "RangeError: bad\n  at f (a.js:1)"}, Metadata{})
	require.NoError(t, err)
	require.Equal(t, "RangeError: bad", repo.saved[0].Message)
}

func TestSubmitTruncatesLongFields(t *testing.T) {
	repo := &stubRepository{}
	_, err := newTestService(repo).Submit(context.Background(), ReportInput{
		Message: strings.Repeat("é", 400),
		Stack:   strings.Repeat("s", 5000),
	}, Metadata{})
	require.NoError(t, err)
	require.LessOrEqual(t, len(repo.saved[0].Message), defaultMaxMessage)
	require.True(t, strings.HasPrefix(repo.saved[0].Message, "éé"))
	require.Len(t, repo.saved[0].Stack, defaultMaxStack)
}

func TestSubmitRejectsEmptyReport(t *testing.T) {
	repo := &stubRepository{}
	_, err := newTestService(repo).Submit(context.Background(), ReportInput{Message: "   "}, Metadata{})
	require.True(t, apperrors.IsCode(err, CodeInvalidReport))
	require.Empty(t, repo.saved)
}

func TestSubmitRepositoryFailure(t *testing.T) {
	repo := &stubRepository{err: errors.New("db down")}
	_, err := newTestService(repo).Submit(context.Background(), ReportInput{Message: "boom"}, Metadata{})
	require.True(t, apperrors.IsCode(err, "client_error_store"))
}

func newTestService(repo Repository) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{}, repo, util.FixedClock(reportedAt), logger)
}

type stubRepository struct {
	saved []Report
	err   error
}

func (s *stubRepository) Save(_ context.Context, report Report) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, report)
	return nil
}
