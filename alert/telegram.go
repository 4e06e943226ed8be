package alert

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/status-im/market-rates/config"
	"github.com/status-im/market-rates/interfaces"
	tele "gopkg.in/telebot.v3"
)

// maxMessageLength is the Telegram limit for a text message
const maxMessageLength = 4096

// chatRecipient accepts numeric chat ids as well as @channel names
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// TelegramSender posts alerts to a Telegram chat. It never returns an error,
// delivery problems are reported in the AlertResult.
type TelegramSender struct {
	cfg config.AlertingConfig
	bot *tele.Bot
	err error
}

var _ interfaces.IAlertSender = (*TelegramSender)(nil)

func NewTelegramSender(cfg *config.Config) *TelegramSender {
	s := &TelegramSender{cfg: cfg.Alerting}
	if !s.cfg.Enabled || s.cfg.BotToken == "" || s.cfg.ChatID == "" {
		return s
	}

	s.bot, s.err = tele.NewBot(tele.Settings{
		URL:     strings.TrimRight(s.cfg.APIURL, "/"),
		Token:   s.cfg.BotToken,
		Client:  &http.Client{Timeout: cfg.HTTP.Timeout},
		Offline: true,
	})
	if s.err != nil {
		log.Printf("Alert: failed to create Telegram bot: %v", s.err)
	}
	return s
}

func (s *TelegramSender) SendAlert(ctx context.Context, text string) interfaces.AlertResult {
	switch {
	case !s.cfg.Enabled:
		log.Printf("Alert: alerting disabled, not sending: %s", text)
		return interfaces.AlertResult{Reason: interfaces.AlertReasonDisabled}
	case s.cfg.BotToken == "" || s.cfg.ChatID == "":
		log.Printf("Alert: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID missing, not sending: %s", text)
		return interfaces.AlertResult{Reason: interfaces.AlertReasonMissingCreds}
	case s.err != nil:
		return failed(fmt.Errorf("telegram bot unavailable: %w", s.err))
	}

	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	if _, err := s.bot.Send(chatRecipient(s.cfg.ChatID), truncate(text, maxMessageLength)); err != nil {
		log.Printf("Alert: failed to send Telegram alert: %v", err)
		return failed(err)
	}
	return interfaces.AlertResult{OK: true}
}

func failed(err error) interfaces.AlertResult {
	return interfaces.AlertResult{Reason: interfaces.AlertReasonFailed, Error: err.Error()}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
