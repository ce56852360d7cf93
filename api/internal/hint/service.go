package hint

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var apiKeyRe = regexp.MustCompile(`^[A-Za-z0-9_\-]{30,}$`)

var placeholderKeys = []string{"placeholder", "your_api_key", "your-api-key", "changeme"}

// ValidAPIKey is a local format check; it never contacts the provider.
func ValidAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	if !apiKeyRe.MatchString(key) {
		return false
	}
	lk := strings.ToLower(key)
	for _, p := range placeholderKeys {
		if strings.Contains(lk, p) {
			return false
		}
	}
	return true
}

// Service is the hint client handed to the session layer. Construct it once at
// wiring time and share it; it is safe for concurrent use.
type Service struct {
	apiKey  string
	builder *Builder
	engine  *Engine
}

func NewService(apiKey string, builder *Builder, engine *Engine) *Service {
	if builder == nil {
		builder = NewBuilder("", 0)
	}
	return &Service{
		apiKey:  strings.TrimSpace(apiKey),
		builder: builder,
		engine:  engine,
	}
}

// Configured reports whether a plausible API key is set.
func (s *Service) Configured() bool { return ValidAPIKey(s.apiKey) }

// GetHint always returns non-empty display text.
func (s *Service) GetHint(ctx context.Context, req Request) string {
	text, _ := s.GetHintWithID(ctx, req)
	return text
}

// GetHintWithID is GetHint plus the request id used in the logs.
func (s *Service) GetHintWithID(ctx context.Context, req Request) (string, string) {
	id := uuid.New().String()
	if !s.Configured() {
		log.Printf("hint[%s]: api key not configured", id)
		return MsgNotConfigured, id
	}
	if s.engine == nil {
		return Offline(req.LevelContext, req.UserMessage), id
	}

	payload := s.builder.Build(req.LevelContext, req.UserMessage, req.History, req.IsLevelComplete)
	text, err := s.engine.Request(ctx, payload)
	if err == nil {
		return text, id
	}

	out := s.degrade(req, err)
	log.Printf("hint[%s]: %v", id, err)
	return out, id
}

// Close releases the provider client.
func (s *Service) Close() error {
	if s.engine == nil {
		return nil
	}
	return s.engine.Close()
}

func (s *Service) degrade(req Request, err error) string {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return Classify(err)
	}
	switch pe.Kind {
	case KindUnavailable, KindTransport:
		// nothing reached the provider
		return Offline(req.LevelContext, req.UserMessage)
	}
	return Classify(err)
}
