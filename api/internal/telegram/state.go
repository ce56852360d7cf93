package telegram

import (
	"sync"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/hint"
)

// session is one chat's game state. mu guards every field; the hint
// goroutine and the update loop both touch it.
type session struct {
	mu       sync.Mutex
	progress *game.Progress
	// playing is true once the knowledge card's Start button was pressed.
	playing bool
	history []hint.Message
	loading bool
}

func (r *Router) session(chatID int64) *session {
	if v, ok := r.sessions.Load(chatID); ok {
		return v.(*session)
	}
	s := &session{progress: game.NewProgress(r.Catalog)}
	v, _ := r.sessions.LoadOrStore(chatID, s)
	return v.(*session)
}

func (r *Router) resetSession(chatID int64) *session {
	s := &session{progress: game.NewProgress(r.Catalog)}
	r.sessions.Store(chatID, s)
	return s
}

// levelContext returns the open level's description, or "".
func (s *session) levelContext() string {
	if l := s.progress.Current(); l != nil {
		return l.Context()
	}
	return ""
}
