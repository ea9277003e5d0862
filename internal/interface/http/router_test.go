package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/clienterror"
	"github.com/yanqian/agemaster/internal/domain/enrichment"
	"github.com/yanqian/agemaster/internal/infra/config"
	"github.com/yanqian/agemaster/pkg/util"
)

var routerNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestRouter_CalculateSuccess(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.post(RouteCalculate, `{"birth_date":"1990-05-15"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))

	var body agecalc.CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 35, body.AgeData.Years)
	require.Equal(t, "Taurus", body.ZodiacSign)
	require.Equal(t, "Horse", body.ChineseZodiac)
	require.Equal(t, "Hello world", body.Quote.Text)
	require.Equal(t, "June 01, 2025", body.TargetDateFormatted)
}

func TestRouter_CalculateValidationErrors(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	tests := []struct {
		body    string
		code    string
		message string
	}{
		{`{"birth_date":"2030-01-01"}`, agecalc.CodeFutureBirthDate, "Birth date cannot be in the future"},
		{`{"birth_date":"1899-12-31"}`, agecalc.CodeInvalidInput, "Date cannot be before 1900"},
		{`{"birth_date":"01/02/2000"}`, agecalc.CodeInvalidInput, "Date must be in YYYY-MM-DD format"},
		{`{}`, agecalc.CodeInvalidInput, "Birth date is required"},
		{`{"birth_date":"2000-01-01","target_date":"1990-01-01"}`, agecalc.CodeDateOrder, "Birth date cannot be after target date"},
	}
	for _, tc := range tests {
		rec := env.post(RouteCalculate, tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		errBody := decodeErrorBody(t, rec.Body.Bytes())
		require.Equal(t, tc.code, errBody["code"], tc.body)
		require.Equal(t, tc.message, errBody["error"], tc.body)
	}
}

func TestRouter_RequestContract(t *testing.T) {
	env := newRouterUnderTest(t, func(cfg *config.Config) { cfg.HTTP.MaxBodyBytes = 64 })

	rec := env.do(http.MethodPost, RouteCalculate, `{"birth_date":"2000-01-01"}`, "text/plain")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Content-Type must be application/json", decodeErrorBody(t, rec.Body.Bytes())["error"])

	rec = env.post(RouteCalculate, `{"birth_date":2000}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["code"])

	rec = env.post(RouteCalculate, ``)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid JSON payload", decodeErrorBody(t, rec.Body.Bytes())["error"])

	rec = env.post(RouteCalculate, fmt.Sprintf(`{"birth_date":"2000-01-01","target_date":"%s"}`, strings.Repeat("x", 100)))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = env.do(http.MethodPost, RouteMilestones, `{"birth_date":"2000-01-01"}`, "application/json; charset=utf-8")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Compare(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.post(RouteCompare, `{"persons":[{"name":"Ada","birth_date":"1990-05-15"},{"name":"<b>Bad</b>","birth_date":"nope"},"junk",{"birth_date":"2000-01-01"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body agecalc.CompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Comparison, 2)
	require.Equal(t, "Ada", body.Comparison[0].Name)
	require.Equal(t, "Person", body.Comparison[1].Name)

	persons := make([]string, 11)
	for i := range persons {
		persons[i] = `{"name":"p","birth_date":"2000-01-01"}`
	}
	rec = env.post(RouteCompare, `{"persons":[`+strings.Join(persons, ",")+`]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid persons data or too many persons", decodeErrorBody(t, rec.Body.Bytes())["error"])

	rec = env.post(RouteCompare, `{"persons":"everyone"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.post(RouteCompare, `{"persons":[{"name":"x","birth_date":"bad"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No valid persons to compare", decodeErrorBody(t, rec.Body.Bytes())["error"])
}

func TestRouter_Milestones(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.post(RouteMilestones, `{"birth_date":"2000-01-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body agecalc.MilestonesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "25 Years Old (Quarter Life)", body.Milestones[7].Name)
	require.Equal(t, agecalc.StatusPassed, body.Milestones[7].Status)
	require.Equal(t, 151, *body.Milestones[7].DaysAgo)

	rec = env.post(RouteMilestones, `{"birth_date":"2026-01-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Content(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.do(http.MethodGet, RouteQuoteRandom, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quote enrichment.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.Equal(t, "Hello world", quote.Text)
	require.Equal(t, "Tester", quote.Author)
	require.Nil(t, env.gateway.lastAge)

	rec = env.post(RouteQuoteAI, `{"age_data":{"years":30,"total_days":10957,"label":"thirty"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var aiBody struct {
		Success bool             `json:"success"`
		Quote   enrichment.Quote `json:"quote"`
		Source  string           `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aiBody))
	require.True(t, aiBody.Success)
	require.Equal(t, enrichment.SourceLocal, aiBody.Source)
	require.NotNil(t, env.gateway.lastAge)
	require.Equal(t, 30, env.gateway.lastAge.Years)
	require.Equal(t, 10957, env.gateway.lastAge.TotalDays)

	rec = env.post(RouteQuoteAI, ``)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.gateway.lastAge)

	rec = env.do(http.MethodGet, RouteFactRandom, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fact enrichment.FunFact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fact))
	require.Equal(t, "Hearts beat", fact.Fact)
}

func TestRouter_ReportErrorAndHealth(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.post(RouteErrors, `{"message":"TypeError: boom","source":"app.js","line":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.reports.saved, 1)
	require.Equal(t, "TypeError: boom", env.reports.saved[0].Message)
	require.Equal(t, rec.Header().Get(requestIDHeader), env.reports.saved[0].RequestID)

	rec = env.post(RouteErrors, `{"line":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, clienterror.CodeInvalidReport, decodeErrorBody(t, rec.Body.Bytes())["code"])

	rec = env.do(http.MethodGet, RouteHealth, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
	require.Contains(t, rec.Body.String(), `"enabled":true`)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	env := newRouterUnderTest(t, nil)

	rec := env.do(http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Resource not found", decodeErrorBody(t, rec.Body.Bytes())["error"])

	rec = env.do(http.MethodGet, RouteCalculate, "", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "Method not allowed", decodeErrorBody(t, rec.Body.Bytes())["error"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	env := newRouterUnderTest(t, func(cfg *config.Config) { cfg.HTTP.AllowedOrigins = []string{"https://agemaster.example"} })

	req := httptest.NewRequest(http.MethodOptions, RouteCalculate, nil)
	req.Header.Set("Origin", "https://agemaster.example")
	rec := httptest.NewRecorder()
	env.server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://agemaster.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PerRouteRateLimit(t *testing.T) {
	env := newRouterUnderTest(t, func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 100,
			Burst:             100,
			Routes:            map[string]int{RouteQuoteAI: 2},
		}
	})

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, env.post(RouteQuoteAI, `{}`).Code)
	}
	rec := env.post(RouteQuoteAI, `{}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["code"])
	require.Equal(t, "30", rec.Header().Get("Retry-After"))

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, RouteQuoteRandom, "", "").Code)
}

func TestIPRateLimiterRefills(t *testing.T) {
	now := routerNow
	limiter := newIPRateLimiter(6, 1, func() time.Time { return now })

	require.True(t, limiter.allow("1.1.1.1"))
	require.False(t, limiter.allow("1.1.1.1"))
	require.True(t, limiter.allow("2.2.2.2"))

	now = now.Add(10 * time.Second)
	require.True(t, limiter.allow("1.1.1.1"))
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	env := newRouterUnderTest(t, nil)
	env.gateway.panicOnFact = true

	rec := env.do(http.MethodGet, RouteFactRandom, "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal server error", decodeErrorBody(t, rec.Body.Bytes())["error"])
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static", "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "js", "app.js"), []byte("console.log(1)"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>AgeMaster</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o600))
	env := newRouterUnderTest(t, func(cfg *config.Config) { cfg.HTTP.StaticDir = dir })

	rec := env.do(http.MethodGet, "/static/js/app.js", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = env.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "AgeMaster")

	rec = env.do(http.MethodGet, "/robots.txt", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSanitizeText(t *testing.T) {
	require.Equal(t, "alert1 hi", sanitizeText(`<script>alert(1)</script> hi`, 100))
	require.Equal(t, "Its fine", sanitizeText(`It's "fine"`, 100))
	require.Equal(t, "2000-01-01", sanitizeText(" 2000-01-01 ", 20))
	require.Equal(t, "ééé", sanitizeText("éééé", 3))
	require.Equal(t, "", sanitizeText("", 10))
}

type routerEnv struct {
	server  *http.Server
	gateway *stubGateway
	reports *stubReportRepo
}

func newRouterUnderTest(t *testing.T, mutate func(*config.Config)) *routerEnv {
	t.Helper()
	logger := newTestLogger()
	gateway := &stubGateway{}
	reports := &stubReportRepo{}
	clock := util.FixedClock(routerNow)

	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			MaxBodyBytes: 4096,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	ageSvc := agecalc.NewService(agecalc.Config{LifeExpectancy: 80, MaxCompare: 10}, clock, gateway, logger)
	reportSvc := clienterror.NewService(clienterror.Config{}, reports, clock, logger)
	handler := NewHandler(ageSvc, gateway, reportSvc, logger)
	return &routerEnv{server: NewRouter(cfg, handler), gateway: gateway, reports: reports}
}

func (e *routerEnv) post(path, body string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, body, "application/json")
}

func (e *routerEnv) do(method, path, body, contentType string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(rec, req)
	return rec
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubGateway struct {
	lastAge     *enrichment.AgeContext
	panicOnFact bool
}

func (s *stubGateway) Quote(_ context.Context, age *enrichment.AgeContext) enrichment.Quote {
	s.lastAge = age
	return enrichment.Quote{Text: `<b>Hello</b> "world"`, Author: "Tester", Source: enrichment.SourceLocal}
}

func (s *stubGateway) FunFact(_ context.Context, _ enrichment.AgeContext) enrichment.FunFact {
	if s.panicOnFact {
		panic("fact source exploded")
	}
	return enrichment.FunFact{Fact: "Hearts beat", Icon: "*", Source: enrichment.SourceLocal}
}

func (s *stubGateway) Status() enrichment.ThrottleStatus {
	return enrichment.ThrottleStatus{Enabled: true, Available: true}
}

type stubReportRepo struct {
	saved []clienterror.Report
}

func (s *stubReportRepo) Save(_ context.Context, report clienterror.Report) error {
	s.saved = append(s.saved, report)
	return nil
}
