package hint

import (
	"context"
	"errors"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cipher-room/hint")

// Engine walks the candidate endpoints in order until one yields usable text.
// It keeps no memory of which endpoint last worked.
type Engine struct {
	loader    *Loader
	endpoints []Endpoint
}

func NewEngine(loader *Loader, endpoints []Endpoint) *Engine {
	return &Engine{loader: loader, endpoints: endpoints}
}

func (e *Engine) Endpoints() []Endpoint {
	out := make([]Endpoint, len(e.endpoints))
	copy(out, e.endpoints)
	return out
}

func (e *Engine) Close() error { return e.loader.Close() }

// Request fails only with *ProviderError.
func (e *Engine) Request(ctx context.Context, p Payload) (string, error) {
	c := e.loader.Load(ctx)
	if _, ok := c.(Unavailable); ok {
		return "", &ProviderError{Kind: KindUnavailable, Err: ErrUnavailable}
	}
	if len(e.endpoints) == 0 {
		return "", &ProviderError{Kind: KindUnavailable, Err: errors.New("no candidate endpoints configured")}
	}

	var last *ProviderError
	for _, ep := range e.endpoints {
		if !c.SupportsVersion(ep.APIVersion) {
			continue
		}
		text, perr := e.attempt(ctx, c, ep, p)
		if perr == nil {
			return text, nil
		}
		last = perr

		switch perr.Kind {
		case KindAuth:
			log.Printf("hint: %s rejected credentials, aborting fallback", ep)
			return "", perr
		case KindUnavailable:
			return "", perr
		case KindNotFound:
			log.Printf("hint: %s not found, trying next candidate", ep)
		case KindEmpty:
			log.Printf("hint: %s returned empty text, trying next candidate", ep)
		default:
			log.Printf("hint: %s failed (%s): %v", ep, perr.Kind, perr.Err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if last == nil {
		return "", &ProviderError{Kind: KindNotFound, Err: errors.New("no candidate endpoint supported by " + c.Name())}
	}
	return "", last
}

func (e *Engine) attempt(ctx context.Context, c Capability, ep Endpoint, p Payload) (string, *ProviderError) {
	ctx, span := tracer.Start(ctx, "hint.dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("hint.capability", c.Name()),
		attribute.String("hint.model", ep.Model),
		attribute.String("hint.api_version", ep.APIVersion),
	)

	raw, err := c.Generate(ctx, ep, p)
	if err == nil {
		var text string
		text, err = Extract(raw)
		if err == nil {
			span.SetStatus(codes.Ok, "")
			return text, nil
		}
	}

	kind, status := kindOf(err)
	span.SetAttributes(attribute.String("hint.error_kind", kind.String()))
	span.SetStatus(codes.Error, err.Error())
	return "", &ProviderError{Kind: kind, Endpoint: ep, Status: status, Err: err}
}
