package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cipher-room/api/internal/hint"
)

type wsFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	// Echoed from the request so clients can match replies.
	Ref  string `json:"ref,omitempty"`
	Hint string `json:"hint,omitempty"`
	Text string `json:"text,omitempty"`
}

type wsRequest struct {
	Ref string `json:"ref"`
	hint.Request
}

func (h *Handle) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // non-browser client
	}
	return h.origins[origin]
}

// HintWS answers every JSON frame with a hint frame. Frames are handled
// concurrently; replies may arrive out of order.
func (h *Handle) HintWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	var wmu sync.Mutex
	send := func(f wsFrame) {
		wmu.Lock()
		defer wmu.Unlock()
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("ws[%s]: write: %v", sessionID, err)
		}
	}
	send(wsFrame{Type: "connected", SessionID: sessionID})

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws[%s]: closed unexpectedly: %v", sessionID, err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			send(wsFrame{Type: "error", Text: "Invalid message format. Send JSON with a 'user_message' field."})
			continue
		}
		if strings.TrimSpace(req.UserMessage) == "" {
			send(wsFrame{Type: "error", Ref: req.Ref, Text: "user_message is required"})
			continue
		}

		wg.Add(1)
		go func(req wsRequest) {
			defer wg.Done()
			rctx, rcancel := context.WithTimeout(ctx, hintTimeout)
			defer rcancel()
			text, id := h.hints.GetHintWithID(rctx, req.Request)
			send(wsFrame{Type: "hint", Ref: req.Ref, RequestID: id, Hint: text})
		}(req)
	}
}
