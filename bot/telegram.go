package bot

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tidalbot/config"
	"tidalbot/log"
)

// maxMessageLength is Telegram's limit for a single text message
const maxMessageLength = 4096

var logger = log.GetLogger("bot")

// Handlers are the callbacks invoked for bot commands
type Handlers struct {
	Sync func() // /sync: trigger a playlist sync
	List func() // /list: report the synced playlists
}

// Bot is the Telegram frontend: it announces sync results to the
// configured chat and accepts commands from allowed users.
type Bot struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	allowed  map[int64]struct{}
	handlers Handlers

	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates the bot from the global configuration
func New(handlers Handlers) (*Bot, error) {
	cfg := config.Get()

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	allowed := make(map[int64]struct{}, len(cfg.TelegramAllowedUsers))
	for _, id := range cfg.TelegramAllowedUsers {
		allowed[id] = struct{}{}
	}

	return &Bot{
		api:      api,
		chatID:   cfg.TelegramChatID,
		allowed:  allowed,
		handlers: handlers,
	}, nil
}

// Start begins long polling for commands
func (b *Bot) Start() {
	logger.Info().Str("username", b.api.Self.UserName).Msg("starting Telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for update := range updates {
			b.handleUpdate(update)
		}
	}()

	logger.Info().Msg("Telegram bot started")
}

// Stop shuts down long polling and waits for the update loop to drain
func (b *Bot) Stop() {
	logger.Info().Msg("stopping Telegram bot")
	b.stopOnce.Do(b.api.StopReceivingUpdates)
	b.wg.Wait()
	logger.Info().Msg("Telegram bot stopped")
}

// SendMessage sends a MarkdownV2 message to the configured chat,
// splitting it when it exceeds Telegram's message length limit.
func (b *Bot) SendMessage(text string) {
	for _, chunk := range SplitMessage(text, maxMessageLength) {
		msg := tgbotapi.NewMessage(b.chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := b.api.Send(msg); err != nil {
			logger.Error().Err(err).Msg("failed to send Telegram message")
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	if !b.isCommandAllowed(msg) {
		logger.Debug().Str("command", msg.Command()).Msg("ignoring command from unauthorized sender")
		return
	}

	logger.Info().Str("command", msg.Command()).Int64("user", msg.From.ID).Msg("handling command")

	switch msg.Command() {
	case "sync":
		if b.handlers.Sync != nil {
			b.handlers.Sync()
		}
	case "list":
		if b.handlers.List != nil {
			b.handlers.List()
		}
	case "good":
		b.replyGood(msg)
	}
}

// isCommandAllowed accepts commands only from allowed users in the
// configured chat.
func (b *Bot) isCommandAllowed(msg *tgbotapi.Message) bool {
	if msg.From == nil {
		return false
	}
	if _, ok := b.allowed[msg.From.ID]; !ok {
		return false
	}
	return msg.Chat != nil && msg.Chat.ID == b.chatID
}

var thankYous = []string{
	"Thank you %s!",
	"Dziękuję %s!",
	"Merci %s!",
	"Grazie %s!",
	"Danke schön %s!",
	"ありがとう %s!",
	"😊😊😊",
	"XD",
}

func (b *Bot) replyGood(msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)

	answer := thankYous[rand.IntN(len(thankYous))]
	if strings.Contains(answer, "%s") {
		answer = fmt.Sprintf(answer, name)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, answer)
	reply.ReplyToMessageID = msg.MessageID

	if _, err := b.api.Send(reply); err != nil {
		logger.Error().Err(err).Msg("failed to send Telegram reply")
	}
}
