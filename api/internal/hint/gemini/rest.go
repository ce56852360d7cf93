package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cipher-room/api/internal/hint"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultVersion = "v1beta"
)

// REST posts straight to generateContent. It is the transport-level fallback
// when the SDK client cannot be built, and the only capability that can walk
// several API versions.
type REST struct {
	APIKey  string
	BaseURL string
	httpc   *http.Client
}

func NewREST(apiKey, baseURL string, httpc *http.Client) *REST {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &REST{
		APIKey:  strings.TrimSpace(apiKey),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// NewRESTFactory wraps NewREST as a hint.Factory.
func NewRESTFactory(apiKey, baseURL string, httpc *http.Client) hint.Factory {
	return func(context.Context) (hint.Capability, error) {
		r := NewREST(apiKey, baseURL, httpc)
		if r.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is empty")
		}
		return r, nil
	}
}

func (r *REST) Name() string { return "gemini-rest" }

func (r *REST) SupportsVersion(string) bool { return true }

func (r *REST) Generate(ctx context.Context, ep hint.Endpoint, p hint.Payload) ([]byte, error) {
	version := strings.TrimSpace(ep.APIVersion)
	if version == "" {
		version = defaultVersion
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("gemini rest: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		r.BaseURL, url.PathEscape(version), url.PathEscape(strings.TrimSpace(ep.Model)), url.QueryEscape(r.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, redactKey(err, r.APIKey)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: errorMessage(body)}
	}
	return body, nil
}

// errorMessage pulls error.message out of a Google API error body.
func errorMessage(body []byte) string {
	var out struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error.Message != "" {
		if out.Error.Status != "" {
			return out.Error.Status + ": " + out.Error.Message
		}
		return out.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300] + "…"
	}
	return s
}

// url.Error carries the full URL including ?key=.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
