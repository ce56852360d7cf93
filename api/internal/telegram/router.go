package telegram

import (
	"context"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/hint"
	"cipher-room/api/internal/util"
)

// Sender is the subset of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Hinter is the part of hint.Service the bot needs.
type Hinter interface {
	GetHint(ctx context.Context, req hint.Request) string
}

type Router struct {
	Bot     Sender
	Hints   Hinter
	Catalog *game.Catalog

	sessions sync.Map // chatID -> *session
	limit    *limiter
	pending  sync.WaitGroup
}

func NewRouter(bot Sender, hints Hinter, catalog *game.Catalog, hintsPerMin int) *Router {
	return &Router{
		Bot:     bot,
		Hints:   hints,
		Catalog: catalog,
		limit:   newLimiter(hintsPerMin),
	}
}

// Wait blocks until in-flight hint requests have replied.
func (r *Router) Wait() { r.pending.Wait() }

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}

	cid := upd.Message.Chat.ID
	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}
	if q, ok := strings.CutPrefix(text, "?"); ok {
		r.requestHint(cid, strings.TrimSpace(q))
		return
	}
	r.attemptAnswer(cid, text)
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.resetSession(cid)
		r.showIntro(cid)
	case "hint":
		r.requestHint(cid, strings.TrimSpace(upd.Message.CommandArguments()))
	case "back":
		r.goBack(cid)
	case "progress":
		s := r.session(cid)
		s.mu.Lock()
		txt := progressText(r.Catalog, s.progress)
		s.mu.Unlock()
		r.send(cid, txt)
	default:
		r.send(cid, "Unknown command. Try /start, /hint <question>, /back or /progress.")
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram: send to %d: %v", chatID, err)
	}
}

func (r *Router) sendMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram: send to %d: %v", chatID, err)
	}
}

func (r *Router) showIntro(chatID int64) {
	kb := makeCategoryKeyboard(r.Catalog)
	r.sendMarkdown(chatID, introText(), &kb)
}

func (r *Router) showCategory(chatID int64, s *session) {
	cat := r.Catalog.Category(s.progress.Category)
	if cat == nil {
		r.showIntro(chatID)
		return
	}
	kb := makeLevelKeyboard(cat, s.progress)
	r.sendMarkdown(chatID, "*"+util.EscapeMarkdown(cat.Name)+"*\n"+util.EscapeMarkdown(cat.Description)+"\n\nChoose a level:", &kb)
}

func (r *Router) goBack(chatID int64) {
	s := r.session(chatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playing = false
	switch s.progress.Back() {
	case game.ScreenCategory:
		r.showCategory(chatID, s)
	default:
		r.showIntro(chatID)
	}
}
