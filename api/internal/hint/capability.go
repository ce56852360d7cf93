package hint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Capability is a loaded provider client.
type Capability interface {
	Name() string
	// SupportsVersion reports whether the capability can address the given API version.
	SupportsVersion(version string) bool
	// Generate sends the payload and returns the raw response body.
	Generate(ctx context.Context, ep Endpoint, p Payload) ([]byte, error)
}

// Factory constructs a Capability. It may fail; the Loader turns failure into Unavailable.
type Factory func(ctx context.Context) (Capability, error)

// Unavailable is the null capability.
type Unavailable struct{}

func (Unavailable) Name() string                { return "unavailable" }
func (Unavailable) SupportsVersion(string) bool { return true }
func (Unavailable) Generate(context.Context, Endpoint, Payload) ([]byte, error) {
	return nil, ErrUnavailable
}

// AllAvailable returns a Factory that builds every factory and routes each
// API version to the first built capability that supports it.
func AllAvailable(factories ...Factory) Factory {
	return func(ctx context.Context) (Capability, error) {
		var (
			built Routed
			errs  []error
		)
		for _, f := range factories {
			if f == nil {
				continue
			}
			c, err := f(ctx)
			if err == nil && c != nil {
				built = append(built, c)
				continue
			}
			if err == nil {
				err = errors.New("factory returned nil capability")
			}
			errs = append(errs, err)
		}
		switch len(built) {
		case 0:
			if len(errs) == 0 {
				return nil, errors.New("no factories configured")
			}
			return nil, errors.Join(errs...)
		case 1:
			return built[0], nil
		}
		return built, nil
	}
}

// Routed sends each endpoint to the first member supporting its API version.
type Routed []Capability

func (r Routed) Name() string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name()
	}
	return strings.Join(names, "+")
}

func (r Routed) SupportsVersion(v string) bool {
	return r.route(v) != nil
}

func (r Routed) Generate(ctx context.Context, ep Endpoint, p Payload) ([]byte, error) {
	c := r.route(ep.APIVersion)
	if c == nil {
		return nil, fmt.Errorf("%s: no client for version %q", r.Name(), ep.APIVersion)
	}
	return c.Generate(ctx, ep, p)
}

// Close closes every member that holds resources.
func (r Routed) Close() error {
	var errs []error
	for _, c := range r {
		errs = append(errs, closeCapability(c))
	}
	return errors.Join(errs...)
}

func (r Routed) route(v string) Capability {
	for _, c := range r {
		if c.SupportsVersion(v) {
			return c
		}
	}
	return nil
}

// Loader resolves the capability at most once. Concurrent first callers share
// one resolution.
type Loader struct {
	factory Factory
	group   singleflight.Group

	mu     sync.Mutex
	cap    Capability
	closed bool
}

func NewLoader(f Factory) *Loader {
	return &Loader{factory: f}
}

// Load never fails: a failed resolution is cached as Unavailable.
func (l *Loader) Load(ctx context.Context) Capability {
	l.mu.Lock()
	c := l.cap
	l.mu.Unlock()
	if c != nil {
		return c
	}

	v, _, _ := l.group.Do("load", func() (any, error) {
		l.mu.Lock()
		if l.cap != nil {
			c := l.cap
			l.mu.Unlock()
			return c, nil
		}
		l.mu.Unlock()

		c, err := l.resolve(ctx)
		if err != nil {
			log.Printf("hint: provider client unavailable, using offline hints: %v", err)
			c = Unavailable{}
		} else {
			log.Printf("hint: provider client loaded: %s", c.Name())
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			_ = closeCapability(c)
			c = Unavailable{}
		}
		l.cap = c
		return c, nil
	})
	return v.(Capability)
}

func (l *Loader) resolve(ctx context.Context) (c Capability, err error) {
	if l.factory == nil {
		return nil, errors.New("no factory")
	}
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("factory panic: %v", r)
		}
	}()
	c, err = l.factory(ctx)
	if err == nil && c == nil {
		err = errors.New("factory returned nil capability")
	}
	return c, err
}

// Close releases the loaded capability. Later loads see Unavailable.
func (l *Loader) Close() error {
	l.mu.Lock()
	c := l.cap
	l.cap = Unavailable{}
	l.closed = true
	l.mu.Unlock()
	return closeCapability(c)
}

func closeCapability(c Capability) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
