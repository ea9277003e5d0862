package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/enrichment"
	"github.com/yanqian/agemaster/internal/infra/content"
	"github.com/yanqian/agemaster/pkg/util"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	dataDir := os.Getenv("CONTENT_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	gateway := enrichment.NewGateway(enrichment.Config{}, content.NewFileSource(dataDir), nil, nil, nil, nil, logger)
	svc := agecalc.NewService(agecalc.Config{}, util.SystemClock{}, gateway, logger)

	if err := newRootCmd(svc).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
