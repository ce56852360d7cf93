package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cipher-room/api/internal/config"
	"cipher-room/api/internal/game"
	"cipher-room/api/internal/handle"
	"cipher-room/api/internal/hint/gemini"
	"cipher-room/api/internal/httpserver"
	"cipher-room/api/internal/telegram"
	"cipher-room/api/internal/telemetry"
	"cipher-room/api/internal/util"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx, telemetry.Config{Endpoint: cfg.OTLPEndpoint, Component: "bot"})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

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

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken())
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("bot authorised as @%s", bot.Self.UserName)

	r := telegram.NewRouter(bot, svc, catalog, cfg.HintRatePerMin)

	// ListenForWebhook registers on DefaultServeMux, so healthz lives there too.
	http.HandleFunc("/healthz", handle.Healthz)

	addr := "0.0.0.0:" + cfg.Port

	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL != "" {
		startWebhookMode(ctx, addr, bot, r, webhookURL)
	} else {
		startPollingMode(ctx, addr, bot, r)
	}
	r.Wait()
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal(err)
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Printf("webhook updates channel closed")
	}()

	log.Printf("webhook listening on %s%s", addr, path)
	if err := httpserver.Run(ctx, addr, nil); err != nil { // DefaultServeMux
		log.Fatal(err)
	}
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router) {
	// healthz only; polling does not need the listener
	go func() {
		if err := httpserver.Run(ctx, addr, nil); err != nil {
			log.Printf("health server: %v", err)
		}
	}()

	runPolling(ctx, bot, r.HandleUpdate)
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func clampDelay(d time.Duration) time.Duration {
	const (
		baseDelay = 1 * time.Second
		maxDelay  = 15 * time.Second
	)
	if d < baseDelay {
		return baseDelay
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	for {
		select {
		case <-ctx.Done():
			log.Printf("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := clampDelay(retryDelayFromError(err))
			log.Printf("polling error: %v; retry in %v", err, d)
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			sleep(ctx, 200*time.Millisecond)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// ---------------- Helpers -----------------

// shortHash is FNV-1a over the token; it only has to be stable and opaque.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
