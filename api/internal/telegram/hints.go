package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/hint"
	"cipher-room/api/internal/util"
)

const (
	hintTimeout = 70 * time.Second

	msgHintUsage = "Ask me something: /hint <question> or ?question"
	msgBusy      = "Still decrypting your last question, recruit. Hold on."
	msgSlowDown  = "Easy, recruit. Too many requests on this channel. Try again in a minute."
	msgPickLevel = "No challenge open. Pick a track with /start."
)

// requestHint asks Cipher in the background; one request per chat at a time.
func (r *Router) requestHint(chatID int64, question string) {
	if question == "" {
		r.send(chatID, msgHintUsage)
		return
	}
	s := r.session(chatID)
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		r.send(chatID, msgBusy)
		return
	}
	if !r.limit.Allow(chatID) {
		s.mu.Unlock()
		r.send(chatID, msgSlowDown)
		return
	}
	req := hint.Request{
		LevelContext: s.levelContext(),
		UserMessage:  question,
		History:      append([]hint.Message(nil), s.history...),
	}
	s.loading = true
	s.mu.Unlock()

	r.dispatch(chatID, s, req)
}

func (r *Router) dispatch(chatID int64, s *session, req hint.Request) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

		ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
		defer cancel()
		reply := r.Hints.GetHint(ctx, req)

		s.mu.Lock()
		s.history = append(s.history,
			hint.Message{Role: hint.RoleUser, Content: req.UserMessage},
			hint.Message{Role: hint.RoleAssistant, Content: reply},
		)
		s.loading = false
		s.mu.Unlock()

		r.send(chatID, hintText(reply))
	}()
}

func (r *Router) attemptAnswer(chatID int64, answer string) {
	s := r.session(chatID)
	s.mu.Lock()
	l := s.progress.Current()
	if l == nil || !s.playing {
		s.mu.Unlock()
		r.send(chatID, msgPickLevel)
		return
	}
	if !game.CheckAnswer(l, answer) {
		s.mu.Unlock()
		r.send(chatID, "❌ ACCESS DENIED. TRY AGAIN.")
		return
	}

	s.progress.Complete()
	s.playing = false
	hasNext := r.Catalog.Level(s.progress.Category, l.Number+1) != nil
	congrats := hint.Request{
		LevelContext:    l.Context(),
		UserMessage:     "I solved it! The answer was: " + answer,
		History:         append([]hint.Message(nil), s.history...),
		IsLevelComplete: true,
	}
	startHint := !s.loading
	if startHint {
		s.loading = true
	}
	s.mu.Unlock()

	kb := makeCompletionKeyboard(hasNext)
	r.sendMarkdown(chatID, "✅ ACCESS GRANTED. DECRYPTING...\n\n"+util.EscapeMarkdown(l.Feedback)+"\n\n★★★", &kb)
	if startHint {
		r.dispatch(chatID, s, congrats)
	}
}
