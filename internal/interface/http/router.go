package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agemaster/internal/infra/config"
)

// Rate limited API routes.
const (
	RouteCalculate   = "/calculate"
	RouteQuoteRandom = "/api/quotes/random"
	RouteQuoteAI     = "/api/quotes/ai"
	RouteFactRandom  = "/api/facts/random"
	RouteCompare     = "/compare"
	RouteMilestones  = "/milestones"
	RouteErrors      = "/api/errors"
	RouteHealth      = "/api/health"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger := handler.logger

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		requestIDMiddleware(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
		gin.CustomRecovery(recoveryHandler(logger)),
		securityHeaders(),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)

	limits := newRouteLimits(cfg.HTTP.RateLimit, logger)
	jsonBody := requireJSON(cfg.HTTP.MaxBodyBytes)

	router.POST(RouteCalculate, limits.middleware(RouteCalculate), jsonBody, handler.Calculate)
	router.POST(RouteCompare, limits.middleware(RouteCompare), jsonBody, handler.Compare)
	router.POST(RouteMilestones, limits.middleware(RouteMilestones), jsonBody, handler.Milestones)

	router.GET(RouteQuoteRandom, limits.middleware(RouteQuoteRandom), handler.RandomQuote)
	router.POST(RouteQuoteAI, limits.middleware(RouteQuoteAI), jsonBody, handler.AIQuote)
	router.GET(RouteFactRandom, limits.middleware(RouteFactRandom), handler.RandomFact)
	router.POST(RouteErrors, limits.middleware(RouteErrors), jsonBody, handler.ReportError)
	router.GET(RouteHealth, handler.Health)

	if dir := strings.TrimSpace(cfg.HTTP.StaticDir); dir != "" {
		registerStatic(router, dir)
	}

	router.NoRoute(notFound)
	router.NoMethod(methodNotAllowed)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
