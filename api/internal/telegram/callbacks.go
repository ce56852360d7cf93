package telegram

import (
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID
	kind, arg := parseCallback(cb.Data)

	ack := ""
	switch kind {
	case cbCategory:
		ack = r.onCategory(cid, arg)
	case cbLevel:
		n, _ := strconv.Atoi(arg)
		ack = r.onLevel(cid, n)
	case cbPlay:
		r.onPlay(cid)
	case cbNext:
		ack = r.onNext(cid)
	case cbBack:
		r.goBack(cid)
	default:
		log.Printf("telegram: unknown callback %q", cb.Data)
	}

	if _, err := r.Bot.Request(tgbotapi.NewCallback(cb.ID, ack)); err != nil {
		log.Printf("telegram: callback ack: %v", err)
	}
}

func (r *Router) onCategory(chatID int64, id string) string {
	s := r.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.progress.SelectCategory(id); err != nil {
		return "Unknown track"
	}
	s.playing = false
	r.showCategory(chatID, s)
	return ""
}

func (r *Router) onLevel(chatID int64, n int) string {
	s := r.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.Category != "" && !s.progress.IsUnlocked(s.progress.Category, n) {
		return "🔒 Locked. Finish the previous level first."
	}
	l, err := s.progress.SelectLevel(n)
	if err != nil {
		return "Pick a track first"
	}
	s.playing = false
	s.history = nil
	kb := makeStartKeyboard()
	r.sendMarkdown(chatID, knowledgeCard(l), &kb)
	return ""
}

func (r *Router) onPlay(chatID int64) {
	s := r.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.progress.Current()
	if l == nil {
		r.showIntro(chatID)
		return
	}
	s.playing = true
	r.sendMarkdown(chatID, challengeText(l), nil)
}

func (r *Router) onNext(chatID int64) string {
	s := r.session(chatID)
	s.mu.Lock()
	next := s.progress.Level + 1
	s.mu.Unlock()
	return r.onLevel(chatID, next)
}
