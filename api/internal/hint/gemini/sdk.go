package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"cipher-room/api/internal/hint"
)

// sdkVersion is the only API version the genai client talks to.
const sdkVersion = "v1beta"

// SDK is the capability backed by github.com/google/generative-ai-go.
type SDK struct {
	cl *genai.Client
}

// NewSDKFactory returns a factory that builds one shared genai client.
func NewSDKFactory(apiKey string, opts ...option.ClientOption) hint.Factory {
	return func(ctx context.Context) (hint.Capability, error) {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			return nil, errors.New("GEMINI_API_KEY is empty")
		}
		all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
		cl, err := genai.NewClient(ctx, all...)
		if err != nil {
			return nil, fmt.Errorf("gemini sdk: %w", err)
		}
		return &SDK{cl: cl}, nil
	}
}

func (s *SDK) Name() string { return "gemini-sdk" }

func (s *SDK) SupportsVersion(v string) bool {
	return v == "" || v == sdkVersion
}

func (s *SDK) Close() error { return s.cl.Close() }

func (s *SDK) Generate(ctx context.Context, ep hint.Endpoint, p hint.Payload) ([]byte, error) {
	if len(p.Contents) == 0 {
		return nil, errors.New("gemini sdk: empty contents")
	}
	m := s.cl.GenerativeModel(strings.TrimSpace(ep.Model))
	if p.GenerationConfig != nil && p.GenerationConfig.Temperature != nil {
		m.GenerationConfig = genai.GenerationConfig{
			Temperature: ptrFloat32(*p.GenerationConfig.Temperature),
		}
	}

	cs := m.StartChat()
	for _, c := range p.Contents[:len(p.Contents)-1] {
		cs.History = append(cs.History, toGenaiContent(c))
	}
	last := toGenaiContent(p.Contents[len(p.Contents)-1])

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, fmt.Errorf("%w: %v", hint.ErrEmptyResponse, err)
		}
		return nil, asStatusError(err)
	}
	return json.Marshal(toWire(resp))
}

func toGenaiContent(c hint.Content) *genai.Content {
	parts := make([]genai.Part, 0, len(c.Parts))
	for _, p := range c.Parts {
		parts = append(parts, genai.Text(p.Text))
	}
	return &genai.Content{Role: c.Role, Parts: parts}
}

type wirePart struct {
	Text string `json:"text"`
}

type wireCandidate struct {
	Content struct {
		Parts []wirePart `json:"parts"`
	} `json:"content"`
}

type wireResponse struct {
	Candidates []wireCandidate `json:"candidates"`
}

// toWire re-encodes the SDK response in the REST candidates shape so both
// capabilities feed the same normalizer.
func toWire(resp *genai.GenerateContentResponse) wireResponse {
	out := wireResponse{Candidates: []wireCandidate{}}
	if resp == nil {
		return out
	}
	for _, c := range resp.Candidates {
		var wc wireCandidate
		wc.Content.Parts = []wirePart{}
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					wc.Content.Parts = append(wc.Content.Parts, wirePart{Text: string(t)})
				}
			}
		}
		out.Candidates = append(out.Candidates, wc)
	}
	return out
}

func ptrFloat32(v float32) *float32 { return &v }
