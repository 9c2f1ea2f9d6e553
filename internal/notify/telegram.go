package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmallek/domainwatch/internal/config"
	"github.com/rs/zerolog"
)

// ErrNotConfigured signals that notification credentials are missing. The
// run is still valid; the caller logs a skip.
var ErrNotConfigured = errors.New("telegram credentials not set")

const telegramAPIBase = "https://api.telegram.org"

// Telegram sends the report through the Bot API's sendMessage call with
// HTML parsing enabled.
type Telegram struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
	chatID     string
	logger     zerolog.Logger
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewTelegram(cfg *config.TelegramConfig, logger zerolog.Logger) *Telegram {
	return &Telegram{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    telegramAPIBase,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		logger:     logger,
	}
}

func (t *Telegram) Send(ctx context.Context, message string) error {
	if t.botToken == "" || t.chatID == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      message,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("encode telegram request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var decoded sendMessageResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil || !decoded.OK {
		if decoded.Description != "" {
			return fmt.Errorf("telegram API rejected message: %s", decoded.Description)
		}
		return fmt.Errorf("telegram API returned HTTP %d", resp.StatusCode)
	}

	t.logger.Info().Str("chat_id", t.chatID).Msg("Notification sent")
	return nil
}
