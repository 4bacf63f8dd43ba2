package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/config"
)

// Sender is the part of tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts festival events to the ops chat. A Notifier without a
// Sender is disabled and drops every message.
type Notifier struct {
	api     Sender
	chatID  int64
	baseURL string
	log     zerolog.Logger
}

func New(cfg *config.Config, log zerolog.Logger) (*Notifier, error) {
	if !cfg.TelegramEnabled() {
		log.Info().Msg("telegram notifier disabled")
		return &Notifier{log: log}, nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	api.Debug = false
	log.Info().Str("bot", api.Self.UserName).Int64("chat_id", cfg.TelegramChatID).Msg("telegram notifier ready")
	return NewWithSender(api, cfg.TelegramChatID, cfg.PublicBaseURL, log), nil
}

func NewWithSender(api Sender, chatID int64, baseURL string, log zerolog.Logger) *Notifier {
	return &Notifier{api: api, chatID: chatID, baseURL: baseURL, log: log}
}

func (n *Notifier) Enabled() bool { return n != nil && n.api != nil }

func (n *Notifier) SendMessage(text string) error {
	if !n.Enabled() {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}
