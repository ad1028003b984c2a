package main

import (
	"errors"
	"flag"
	"log"
	"net/http"

	"go.uber.org/zap"

	"rematching/pkg/api"
	"rematching/pkg/config"
	"rematching/pkg/logger"
)

func main() {
	addr := flag.String("addr", "", "Listen address (overrides config)")
	cfgPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg := config.DefaultServer()
	if *cfgPath != "" {
		loaded, err := config.LoadServer(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFile)
	defer zl.Sync()

	handlers := api.NewHandlers(cfg, zl)
	srv := api.NewServer(cfg, zl, handlers)
	if err := api.ListenAndServe(srv, zl); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server failed", zap.Error(err))
	}
}
