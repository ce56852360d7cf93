package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/hint"
)

type fakeBot struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	acks []tgbotapi.CallbackConfig
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		b.acks = append(b.acks, cb)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return ""
	}
	return b.sent[len(b.sent)-1].Text
}

func (b *fakeBot) lastAck() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.acks) == 0 {
		return ""
	}
	return b.acks[len(b.acks)-1].Text
}

type fakeHints struct {
	mu    sync.Mutex
	reqs  []hint.Request
	block chan struct{}
}

func (f *fakeHints) GetHint(_ context.Context, req hint.Request) string {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return "think about the shift"
}

const chatID = int64(42)

func newTestRouter(t *testing.T, perMin int) (*Router, *fakeBot, *fakeHints) {
	t.Helper()
	cat, err := game.LoadCatalog()
	require.NoError(t, err)
	bot, hints := &fakeBot{}, &fakeHints{}
	return NewRouter(bot, hints, cat, perMin), bot, hints
}

func command(text string) tgbotapi.Update {
	name, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func text(s string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: s}}
}

func press(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func openLevel(r *Router, category string, n int) {
	r.HandleUpdate(command("/start"))
	r.HandleUpdate(press(callbackData(cbCategory, category)))
	r.HandleUpdate(press(callbackData(cbLevel, strconv.Itoa(n))))
	r.HandleUpdate(press(cbPlay))
}

func TestStartShowsCategories(t *testing.T) {
	r, bot, _ := newTestRouter(t, 0)
	r.HandleUpdate(command("/start"))

	require.Len(t, bot.sent, 1)
	kb, ok := bot.sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "cat:encryption-decryption", *kb.InlineKeyboard[0][0].CallbackData)
}

func TestLockedLevelRefused(t *testing.T) {
	r, bot, _ := newTestRouter(t, 0)
	r.HandleUpdate(command("/start"))
	r.HandleUpdate(press("cat:caesar-cipher"))
	n := len(bot.sent)

	r.HandleUpdate(press("lvl:2"))
	assert.Contains(t, bot.lastAck(), "Locked")
	assert.Len(t, bot.sent, n)
}

func TestPlayAndSolve(t *testing.T) {
	r, bot, hints := newTestRouter(t, 0)
	openLevel(r, "caesar-cipher", 1)
	assert.Contains(t, bot.last(), "WKLV LV D VHFUHW")

	r.HandleUpdate(text("this is not it"))
	assert.Contains(t, bot.last(), "ACCESS DENIED")

	r.HandleUpdate(text("  this is a secret "))
	r.Wait()

	s := r.session(chatID)
	assert.True(t, s.progress.IsCompleted("caesar-cipher", 1))
	assert.Equal(t, 2, s.progress.Unlocked("caesar-cipher"))

	require.Len(t, hints.reqs, 1)
	assert.True(t, hints.reqs[0].IsLevelComplete)
	assert.Equal(t, "Learn the original Caesar cipher", hints.reqs[0].LevelContext)
	assert.Contains(t, bot.last(), "think about the shift")

	r.HandleUpdate(press(cbNext))
	assert.Contains(t, bot.last(), "Shift Direction")
}

func TestHintCarriesHistory(t *testing.T) {
	r, bot, hints := newTestRouter(t, 0)
	openLevel(r, "caesar-cipher", 1)

	r.HandleUpdate(command("/hint how do I start?"))
	r.Wait()
	r.HandleUpdate(text("?and then"))
	r.Wait()

	require.Len(t, hints.reqs, 2)
	assert.Equal(t, "how do I start?", hints.reqs[0].UserMessage)
	assert.Empty(t, hints.reqs[0].History)
	assert.Equal(t, "and then", hints.reqs[1].UserMessage)
	assert.Equal(t, []hint.Message{
		{Role: hint.RoleUser, Content: "how do I start?"},
		{Role: hint.RoleAssistant, Content: "think about the shift"},
	}, hints.reqs[1].History)
	assert.True(t, strings.HasPrefix(bot.last(), "🕶 Cipher: "))
}

func TestHintWhileLoading(t *testing.T) {
	r, bot, hints := newTestRouter(t, 0)
	hints.block = make(chan struct{})
	openLevel(r, "man-in-the-middle", 1)

	r.HandleUpdate(text("?first"))
	r.HandleUpdate(text("?second"))
	assert.Equal(t, msgBusy, bot.last())

	close(hints.block)
	r.Wait()
	assert.Len(t, hints.reqs, 1)
}

func TestHintRateLimited(t *testing.T) {
	r, bot, _ := newTestRouter(t, 1)

	r.HandleUpdate(text("?one"))
	r.Wait()
	r.HandleUpdate(text("?two"))
	assert.Equal(t, msgSlowDown, bot.last())
}

func TestHintUsageAndNoLevel(t *testing.T) {
	r, bot, hints := newTestRouter(t, 0)
	r.HandleUpdate(command("/hint"))
	assert.Equal(t, msgHintUsage, bot.last())

	r.HandleUpdate(text("some answer"))
	assert.Equal(t, msgPickLevel, bot.last())

	// hints work outside a level with an empty context
	r.HandleUpdate(text("?what is encryption"))
	r.Wait()
	require.Len(t, hints.reqs, 1)
	assert.Empty(t, hints.reqs[0].LevelContext)
}

func TestBackNavigation(t *testing.T) {
	r, bot, _ := newTestRouter(t, 0)
	openLevel(r, "encryption-decryption", 1)

	r.HandleUpdate(command("/back"))
	assert.Contains(t, bot.last(), "Choose a level")
	r.HandleUpdate(press(cbBack))
	assert.Contains(t, bot.last(), "CIPHER ROOM")

	r.HandleUpdate(text("encryption"))
	assert.Equal(t, msgPickLevel, bot.last())
}

func TestProgressCommand(t *testing.T) {
	r, bot, _ := newTestRouter(t, 0)
	openLevel(r, "encryption-decryption", 1)
	r.HandleUpdate(text("Encryption"))
	r.Wait()

	r.HandleUpdate(command("/progress"))
	assert.Contains(t, bot.last(), "Encryption & Decryption: 1/10 done, level 2 unlocked")
}

func TestLimiter(t *testing.T) {
	l := newLimiter(2)
	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2))

	assert.True(t, newLimiter(0).Allow(1))
}

func TestParseCallback(t *testing.T) {
	k, a := parseCallback("cat:caesar-cipher")
	assert.Equal(t, cbCategory, k)
	assert.Equal(t, "caesar-cipher", a)

	k, a = parseCallback(cbPlay)
	assert.Equal(t, cbPlay, k)
	assert.Empty(t, a)
}
