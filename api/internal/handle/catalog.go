package handle

import (
	"encoding/json"
	"net/http"
	"strings"

	"cipher-room/api/internal/game"
)

// Catalog lists categories and levels. Answers and feedback are tagged
// json:"-" on game.Level and never leave the server.
func (h *Handle) Catalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.catalog)
}

type answerReq struct {
	Category string `json:"category"`
	Level    int    `json:"level"`
	Answer   string `json:"answer"`
}

type AnswerResponse struct {
	Correct  bool   `json:"correct"`
	Message  string `json:"message"`
	Feedback string `json:"feedback,omitempty"`
}

const (
	MsgGranted = "ACCESS GRANTED. DECRYPTING..."
	MsgDenied  = "ACCESS DENIED. TRY AGAIN."
)

func (h *Handle) Answer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		http.Error(w, "answer is required", http.StatusBadRequest)
		return
	}
	l := h.catalog.Level(req.Category, req.Level)
	if l == nil {
		http.Error(w, "unknown level", http.StatusNotFound)
		return
	}

	if !game.CheckAnswer(l, req.Answer) {
		writeJSON(w, http.StatusOK, AnswerResponse{Message: MsgDenied})
		return
	}
	writeJSON(w, http.StatusOK, AnswerResponse{Correct: true, Message: MsgGranted, Feedback: l.Feedback})
}
