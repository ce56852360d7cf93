package hint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Known provider response shapes, checked in this order:
//
//	{"text": "..."}
//	{"response": {"text": "..."}}
//	{"candidates": [{"content": {"parts": [{"text": "..."}]}}]}
//	"..."
type envelope struct {
	Text     *string `json:"text"`
	Response *struct {
		Text *string `json:"text"`
	} `json:"response"`
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract returns the first non-blank text found in raw. A shape that is present
// but blank yields ErrEmptyResponse; no known shape yields ErrUnrecognizedShape.
func Extract(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", ErrEmptyResponse
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return nonBlank(s)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}

	matched := false
	if env.Text != nil {
		matched = true
		if t := strings.TrimSpace(*env.Text); t != "" {
			return t, nil
		}
	}
	if env.Response != nil && env.Response.Text != nil {
		matched = true
		if t := strings.TrimSpace(*env.Response.Text); t != "" {
			return t, nil
		}
	}
	for _, c := range env.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p.Text == nil {
				continue
			}
			matched = true
			if t := strings.TrimSpace(*p.Text); t != "" {
				return t, nil
			}
		}
	}
	if matched || env.Candidates != nil {
		return "", ErrEmptyResponse
	}
	return "", ErrUnrecognizedShape
}

func nonBlank(s string) (string, error) {
	if t := strings.TrimSpace(s); t != "" {
		return t, nil
	}
	return "", ErrEmptyResponse
}
