package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cipher-room/api/internal/game"
	"cipher-room/api/internal/util"
)

// Callback data. Category and level callbacks carry an argument after ':'.
const (
	cbCategory = "cat"
	cbLevel    = "lvl"
	cbPlay     = "play"
	cbBack     = "back"
	cbNext     = "next"
)

func callbackData(kind string, arg string) string {
	if arg == "" {
		return kind
	}
	return kind + ":" + arg
}

func parseCallback(data string) (kind, arg string) {
	kind, arg, _ = strings.Cut(data, ":")
	return kind, arg
}

func backButton() tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData("⬅ Back", cbBack)
}

func makeCategoryKeyboard(c *game.Catalog) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.Categories))
	for _, cat := range c.Categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(cat.Name, callbackData(cbCategory, cat.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Locked levels get a padlock and stay pressable; the router refuses them.
func makeLevelKeyboard(cat *game.Category, p *game.Progress) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range cat.Levels {
		label := fmt.Sprintf("%d. %s", l.Number, l.Title)
		switch {
		case p.IsCompleted(cat.ID, l.Number):
			label += " " + strings.Repeat("★", p.Stars(cat.ID, l.Number))
		case !p.IsUnlocked(cat.ID, l.Number):
			label = "🔒 " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbLevel, strconv.Itoa(l.Number))),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(backButton()))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func makeStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶ Start", cbPlay),
		backButton(),
	))
}

func makeCompletionKeyboard(hasNext bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{backButton()}
	if hasNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next level ➡", cbNext))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func introText() string {
	return "🕶 *CIPHER ROOM*\n\n" +
		"I'm Cipher. The hacker has locked down the network and I need a recruit.\n" +
		"Pick a training track. Answer in plain text; ask me with /hint <question> or start a line with ?\n\n" +
		"Commands: /back, /progress, /start"
}

func knowledgeCard(l *game.Level) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📂 *Level %d: %s*\n", l.Number, util.EscapeMarkdown(l.Title))
	fmt.Fprintf(&b, "_%s_\n\n", util.EscapeMarkdown(l.Concept))
	b.WriteString(util.EscapeMarkdown(l.Knowledge))
	return b.String()
}

func challengeText(l *game.Level) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🖥 *TERMINAL* level %d\n\n", l.Number)
	if l.Encrypted != "" {
		fmt.Fprintf(&b, "```\n%s\n```\n", l.Encrypted)
	}
	b.WriteString(util.EscapeMarkdown(l.Instruction))
	b.WriteString("\n\nType your answer. Stuck? /hint <question>")
	return b.String()
}

func progressText(c *game.Catalog, p *game.Progress) string {
	var b strings.Builder
	b.WriteString("📊 Progress\n")
	for _, cat := range c.Categories {
		done := 0
		for _, l := range cat.Levels {
			if p.IsCompleted(cat.ID, l.Number) {
				done++
			}
		}
		fmt.Fprintf(&b, "%s: %d/%d done, level %d unlocked\n", cat.Name, done, cat.MaxLevel(), p.Unlocked(cat.ID))
	}
	return b.String()
}

// hintText strips stray fences and fits the reply into one message.
func hintText(s string) string {
	return "🕶 Cipher: " + util.Truncate(util.StripCodeFences(s), util.MaxMessageLen)
}
