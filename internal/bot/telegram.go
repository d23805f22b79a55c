package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/nbastats/internal/service"
)

// Telegram rejects messages longer than this.
const maxMessageLen = 4096

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, statsService *service.StatsService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(statsService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			slog.Info("Handling command",
				"command", update.Message.Command(),
				"chat_id", update.Message.Chat.ID,
			)
			msg := t.handler.HandleCommand(update)
			if err := t.send(msg.ChatID, msg.Text); err != nil {
				slog.Error("Error sending message", "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts text to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}
	return t.send(t.chatID, text)
}

func (t *TelegramBot) send(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = "Markdown"
		if _, err := t.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

const codeFence = "```"

// splitMessage breaks text on line boundaries into pieces of at most limit
// bytes. A line longer than limit is cut on a rune boundary. A code block
// that spans pieces is closed at the end of one and reopened in the next.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		buf    strings.Builder
		body   int
		inCode bool
	)
	reserve := func() int {
		if inCode {
			return len(codeFence) + 1
		}
		return 0
	}
	flush := func() {
		if body == 0 {
			return
		}
		if inCode {
			if !strings.HasSuffix(buf.String(), "\n") {
				buf.WriteByte('\n')
			}
			buf.WriteString(codeFence)
		}
		chunks = append(chunks, buf.String())
		buf.Reset()
		body = 0
		if inCode {
			buf.WriteString(codeFence + "\n")
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for buf.Len()+len(line)+reserve() > limit {
			if body > 0 {
				flush()
				continue
			}
			n := cutIndex(line, limit-buf.Len()-reserve())
			buf.WriteString(line[:n])
			body += n
			line = line[n:]
			flush()
		}
		buf.WriteString(line)
		body += len(line)
		if strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			inCode = !inCode
		}
	}
	if body > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

// cutIndex returns the largest rune boundary in s at or below limit, and at
// least one rune.
func cutIndex(s string, limit int) int {
	if limit >= len(s) {
		return len(s)
	}
	n := max(limit, 0)
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return n
}
