package telegram

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiter is a per-chat token bucket for hint requests.
type limiter struct {
	mu     sync.Mutex
	perMin int
	chats  map[int64]*rate.Limiter
}

// newLimiter allows perMin hint requests per chat per minute. Zero or
// less disables limiting.
func newLimiter(perMin int) *limiter {
	return &limiter{perMin: perMin, chats: make(map[int64]*rate.Limiter)}
}

func (l *limiter) Allow(chatID int64) bool {
	if l == nil || l.perMin <= 0 {
		return true
	}
	l.mu.Lock()
	rl, ok := l.chats[chatID]
	if !ok {
		rl = rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)
		l.chats[chatID] = rl
	}
	l.mu.Unlock()
	return rl.Allow()
}
