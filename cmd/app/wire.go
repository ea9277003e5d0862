//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/agemaster/internal/bootstrap"
	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/clienterror"
	"github.com/yanqian/agemaster/internal/domain/enrichment"
	"github.com/yanqian/agemaster/internal/infra/config"
	httpiface "github.com/yanqian/agemaster/internal/interface/http"
	"github.com/yanqian/agemaster/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideClock,
		provideTokenCounter,
		provideCalculatorConfig,
		provideClientErrorConfig,
		provideEnrichmentConfig,
		provideThrottle,
		provideContentSource,
		provideGenerator,
		provideQuoteCache,
		provideReportRepository,
		enrichment.NewGateway,
		agecalc.NewService,
		clienterror.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
