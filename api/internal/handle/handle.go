package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/hint"
)

// Hinter is the part of hint.Service the handlers need.
type Hinter interface {
	GetHintWithID(ctx context.Context, req hint.Request) (string, string)
}

type Handle struct {
	hints   Hinter
	catalog *game.Catalog
	origins map[string]bool
}

func New(hints Hinter, catalog *game.Catalog, allowedOrigins []string) *Handle {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handle{
		hints:   hints,
		catalog: catalog,
		origins: origins,
	}
}

// Routes mounts every endpoint on mux.
func (h *Handle) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", Healthz)
	mux.HandleFunc("/v1/hint", h.Hint)
	mux.HandleFunc("/v1/hint/ws", h.HintWS)
	mux.HandleFunc("/v1/catalog", h.Catalog)
	mux.HandleFunc("/v1/answer", h.Answer)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
