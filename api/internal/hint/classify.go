package hint

import (
	"errors"
	"net/http"
	"strings"
)

const (
	MsgNotConfigured = "API key not configured. Set GEMINI_API_KEY (or API_KEY) in the server environment to bring Cipher online."
	MsgAuth          = "ACCESS DENIED: the hint network rejected my credentials. Check that GEMINI_API_KEY holds a valid key from https://aistudio.google.com/app/apikey, then restart the server."
	MsgRateLimit     = "The hacker is flooding my channel (rate limit reached). Give it a minute and ask again, recruit."
	MsgNoSignal      = "I'm having trouble connecting to the network... try again, recruit."
	MsgBlocked       = "The hacker is blocking my signals! I can't provide a hint right now."
	msgConnPrefix    = "Connection to the hint network failed: "
	msgConnSuffix    = ". The hacker may be jamming the signal, try again shortly."
)

// Classify turns any failure into display text. It never returns "".
func Classify(err error) string {
	if err == nil {
		return MsgBlocked
	}
	kind, _ := kindOf(err)
	switch kind {
	case KindAuth:
		return MsgAuth
	case KindRateLimit:
		return MsgRateLimit
	case KindEmpty:
		return MsgNoSignal
	case KindTransport, KindProvider, KindNotFound:
		detail := strings.TrimSpace(rootMessage(err))
		if detail == "" {
			return MsgBlocked
		}
		return msgConnPrefix + detail + msgConnSuffix
	default:
		return MsgBlocked
	}
}

// kindOf maps a raw capability error to an ErrorKind and HTTP status (0 if none).
func kindOf(err error) (ErrorKind, int) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, pe.Status
	}
	switch {
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable, 0
	case errors.Is(err, ErrEmptyResponse):
		return KindEmpty, 0
	case errors.Is(err, ErrUnrecognizedShape):
		return KindProvider, 0
	}

	msg := strings.ToLower(err.Error())
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() > 0 {
		code := sc.StatusCode()
		switch {
		case code == http.StatusNotFound:
			return KindNotFound, code
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return KindAuth, code
		case code == http.StatusTooManyRequests:
			return KindRateLimit, code
		case code == http.StatusBadRequest && looksLikeAuth(msg):
			return KindAuth, code
		default:
			return KindProvider, code
		}
	}

	switch {
	case looksLikeAuth(msg):
		return KindAuth, 0
	case strings.Contains(msg, "not found"), strings.Contains(msg, "is not supported"):
		return KindNotFound, 0
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "too many requests"):
		return KindRateLimit, 0
	}
	return KindTransport, 0
}

func looksLikeAuth(msg string) bool {
	return strings.Contains(msg, "api key not valid") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "api_key_invalid") ||
		strings.Contains(msg, "permission_denied") ||
		strings.Contains(msg, "unauthenticated")
}

func rootMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
