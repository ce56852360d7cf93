package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	DefaultModels      = []string{"gemini-3-flash-preview", "gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"}
	DefaultAPIVersions = []string{"v1beta", "v1"}
)

type Config struct {
	Port string

	GeminiAPIKey      string
	GeminiBaseURL     string
	SystemInstruction string
	// File overriding SystemInstruction, read by util.LoadPrompt.
	SystemInstructionFile string
	Models                []string
	APIVersions           []string
	Temperature           float32

	TelegramBotToken string
	WebhookURL       string
	HintRatePerMin   int

	WSAllowedOrigins []string
	OTLPEndpoint     string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return append([]string(nil), def...)
	}
	out := SplitList(v)
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getFloat(k string, def float32) float32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Printf("config: bad %s=%q, using %v", k, v, def)
		return def
	}
	return float32(f)
}

func getInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: bad %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

// Load reads .env (if any) and the process environment. A missing API key
// is not fatal: the hint service answers with a configuration message.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env: %v", err)
	}

	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiBaseURL:         getEnv("GEMINI_BASE_URL", ""),
		SystemInstruction:     getEnv("HINT_SYSTEM_INSTRUCTION", ""),
		SystemInstructionFile: getEnv("HINT_SYSTEM_INSTRUCTION_FILE", ""),
		Models:                getList("HINT_MODELS", DefaultModels),
		APIVersions:           getList("HINT_API_VERSIONS", DefaultAPIVersions),
		Temperature:           getFloat("HINT_TEMPERATURE", 0.7),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		HintRatePerMin:   getInt("HINT_RATE_PER_MIN", 6),

		WSAllowedOrigins: SplitList(getEnv("WS_ALLOWED_ORIGINS", "")),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// BotToken is required only by the bot binary.
func (c *Config) BotToken() string {
	if c.TelegramBotToken == "" {
		c.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
	}
	return c.TelegramBotToken
}
