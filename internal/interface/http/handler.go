package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/clienterror"
	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

const (
	maxDateLength   = 20
	maxNameLength   = 50
	maxQuoteLength  = 500
	maxAuthorLength = 100
	maxFactLength   = 500
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	ageSvc     agecalc.Service
	content    enrichment.Gateway
	reportsSvc clienterror.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(ageSvc agecalc.Service, content enrichment.Gateway, reportsSvc clienterror.Service, logger *slog.Logger) *Handler {
	return &Handler{
		ageSvc:     ageSvc,
		content:    content,
		reportsSvc: reportsSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Calculate returns the full age summary for a birth date.
func (h *Handler) Calculate(c *gin.Context) {
	var req agecalc.CalculateRequest
	if !bindJSON(c, &req, false) {
		return
	}
	req.BirthDate = sanitizeText(req.BirthDate, maxDateLength)
	req.TargetDate = sanitizeText(req.TargetDate, maxDateLength)

	resp, err := h.ageSvc.Calculate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	resp.Quote = sanitizeQuote(resp.Quote)
	resp.FunFact = sanitizeFact(resp.FunFact)
	c.JSON(http.StatusOK, resp)
}

// RandomQuote returns a quote without age context.
func (h *Handler) RandomQuote(c *gin.Context) {
	c.JSON(http.StatusOK, sanitizeQuote(h.content.Quote(c.Request.Context(), nil)))
}

type aiQuoteRequest struct {
	AgeData map[string]any `json:"age_data"`
}

// AIQuote returns a quote personalised with the optional age data.
func (h *Handler) AIQuote(c *gin.Context) {
	var req aiQuoteRequest
	if !bindJSON(c, &req, true) {
		return
	}
	quote := sanitizeQuote(h.content.Quote(c.Request.Context(), ageContextFrom(req.AgeData)))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   quote,
		"source":  quote.Source,
	})
}

// RandomFact returns a fun fact.
func (h *Handler) RandomFact(c *gin.Context) {
	c.JSON(http.StatusOK, sanitizeFact(h.content.FunFact(c.Request.Context(), enrichment.AgeContext{})))
}

type compareRequest struct {
	Persons json.RawMessage `json:"persons"`
}

// Compare computes ages for several people at once. Malformed entries are
// skipped rather than failing the request.
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if !bindJSON(c, &req, false) {
		return
	}
	var entries []json.RawMessage
	if len(req.Persons) > 0 && string(req.Persons) != "null" {
		if err := json.Unmarshal(req.Persons, &entries); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, agecalc.CodeInvalidInput, "Invalid persons data or too many persons", err))
			return
		}
	}

	persons := make([]agecalc.PersonInput, 0, len(entries))
	for _, raw := range entries {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			persons = append(persons, agecalc.PersonInput{})
			continue
		}
		name, _ := fields["name"].(string)
		birth, _ := fields["birth_date"].(string)
		persons = append(persons, agecalc.PersonInput{
			Name:      sanitizeText(name, maxNameLength),
			BirthDate: sanitizeText(birth, maxDateLength),
		})
	}

	resp, err := h.ageSvc.Compare(c.Request.Context(), agecalc.CompareRequest{Persons: persons})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Milestones projects named ages onto calendar dates.
func (h *Handler) Milestones(c *gin.Context) {
	var req agecalc.MilestonesRequest
	if !bindJSON(c, &req, false) {
		return
	}
	req.BirthDate = sanitizeText(req.BirthDate, maxDateLength)

	resp, err := h.ageSvc.Milestones(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportError records a script error reported by the browser.
func (h *Handler) ReportError(c *gin.Context) {
	var req clienterror.ReportInput
	if !bindJSON(c, &req, false) {
		return
	}
	meta := clienterror.Metadata{
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
		RequestID: c.GetString(requestIDKey),
	}
	resp, err := h.reportsSvc.Submit(c.Request.Context(), req, meta)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports liveness and the AI provider state.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ai":     h.content.Status(),
	})
}

// bindJSON binds the body into dst. An empty body is accepted only when
// allowEmpty is set.
func bindJSON(c *gin.Context, dst any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", err))
		return false
	}
	abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "Invalid JSON payload", err))
	return false
}

// ageContextFrom reads the numeric fields of a loosely typed age payload.
func ageContextFrom(data map[string]any) *enrichment.AgeContext {
	if len(data) == 0 {
		return nil
	}
	years, okYears := data["years"].(float64)
	days, okDays := data["total_days"].(float64)
	if !okYears && !okDays {
		return nil
	}
	if years < 0 || years > agecalc.MaxAgeYears || days < 0 || days > agecalc.MaxTotalDays {
		return nil
	}
	return &enrichment.AgeContext{Years: int(years), TotalDays: int(days)}
}

func sanitizeQuote(q enrichment.Quote) enrichment.Quote {
	q.Text = sanitizeText(q.Text, maxQuoteLength)
	q.Author = sanitizeText(q.Author, maxAuthorLength)
	return q
}

func sanitizeFact(f enrichment.FunFact) enrichment.FunFact {
	f.Fact = sanitizeText(f.Fact, maxFactLength)
	return f
}
