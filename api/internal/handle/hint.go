package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cipher-room/api/internal/hint"
)

// The engine may walk every model/version pair before giving up.
const hintTimeout = 70 * time.Second

type HintResponse struct {
	Hint      string `json:"hint"`
	RequestID string `json:"request_id"`
}

func (h *Handle) Hint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req hint.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		http.Error(w, "user_message is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), hintTimeout)
	defer cancel()

	text, id := h.hints.GetHintWithID(ctx, req)
	writeJSON(w, http.StatusOK, HintResponse{Hint: text, RequestID: id})
}
