package hint

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// roleModel is the provider-side label for assistant turns.
const roleModel = "model"

// Message is one turn of the session history. The history is owned by the caller.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is what the session layer hands to GetHint.
type Request struct {
	LevelContext    string    `json:"level_context"`
	UserMessage     string    `json:"user_message"`
	History         []Message `json:"history,omitempty"`
	IsLevelComplete bool      `json:"is_level_complete,omitempty"`
}

// Endpoint is one model+version combination of the fallback sequence.
// An empty APIVersion means "whatever the capability uses by default".
type Endpoint struct {
	Model      string
	APIVersion string
}

func (e Endpoint) String() string {
	if e.APIVersion == "" {
		return e.Model
	}
	return e.APIVersion + "/" + e.Model
}

// Endpoints expands models × versions, models outer, preserving the configured order.
func Endpoints(models, versions []string) []Endpoint {
	if len(versions) == 0 {
		versions = []string{""}
	}
	out := make([]Endpoint, 0, len(models)*len(versions))
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		for _, v := range versions {
			out = append(out, Endpoint{Model: m, APIVersion: strings.TrimSpace(v)})
		}
	}
	return out
}

// Payload is the provider request body (generateContent).
type Payload struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature *float32 `json:"temperature,omitempty"`
}
