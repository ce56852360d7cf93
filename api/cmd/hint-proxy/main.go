package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cipher-room/api/internal/config"
	"cipher-room/api/internal/game"
	"cipher-room/api/internal/handle"
	"cipher-room/api/internal/hint/gemini"
	"cipher-room/api/internal/httpserver"
	"cipher-room/api/internal/telemetry"
	"cipher-room/api/internal/util"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx, telemetry.Config{Endpoint: cfg.OTLPEndpoint, Component: "hint-proxy"})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	instr := cfg.SystemInstruction
	if s, err := util.LoadPrompt(cfg.SystemInstructionFile); err != nil {
		log.Fatalf("system instruction: %v", err)
	} else if s != "" {
		instr = s
	}

	catalog, err := game.LoadCatalog()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	svc := gemini.NewService(gemini.Options{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		Models:            cfg.Models,
		APIVersions:       cfg.APIVersions,
		SystemInstruction: instr,
		Temperature:       cfg.Temperature,
	})
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("hint client close: %v", err)
		}
	}()
	if !svc.Configured() {
		log.Printf("hint-proxy: GEMINI_API_KEY missing or malformed; hints will ask for configuration")
	}

	mux := http.NewServeMux()
	handle.New(svc, catalog, cfg.WSAllowedOrigins).Routes(mux)

	addr := ":" + cfg.Port
	if err := httpserver.Run(ctx, addr, mux); err != nil {
		log.Fatal(err)
	}
}
