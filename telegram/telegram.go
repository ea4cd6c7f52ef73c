// Package telegram implements the human-in-the-loop approval bot.
// Generated posts are sent to a reviewer with approve/reject buttons;
// button presses come back through the webhook as callback queries.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ai "github.com/spetersoncode/postpilot"
)

const defaultBaseURL = "https://api.telegram.org"

// Approval actions carried in callback data.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Bot is a minimal Telegram Bot API client for the approval flow.
type Bot struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
}

// Option configures a Bot.
type Option func(*Bot)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Bot) { b.httpClient = hc }
}

// WithBaseURL overrides the Bot API base URL.
func WithBaseURL(u string) Option {
	return func(b *Bot) { b.baseURL = u }
}

// WithLogger sets the logger for bot events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

// New creates a bot client for the given bot token.
func New(token string, opts ...Option) *Bot {
	b := &Bot{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		baseURL:    defaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Update is an incoming Bot API update, delivered via webhook.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is an incoming or sent chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// Chat identifies a Telegram conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// CallbackQuery is a button press on an inline keyboard.
type CallbackQuery struct {
	ID      string   `json:"id"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data"`
}

// Decision is a parsed approve/reject button press.
type Decision struct {
	Action    string
	ContentID string
	ChatID    int64
	QueryID   string
}

// Approved reports whether the reviewer accepted the content.
func (d Decision) Approved() bool { return d.Action == ActionApprove }

// ParseUpdate decodes a webhook request body into an Update.
func ParseUpdate(body []byte) (*Update, error) {
	var u Update
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("telegram: decoding update: %w", err)
	}
	return &u, nil
}

// ParseDecision extracts the approval decision from an update's
// callback query. Returns nil when the update is not a decision.
func ParseDecision(u *Update) *Decision {
	if u == nil || u.CallbackQuery == nil {
		return nil
	}
	action, contentID, ok := strings.Cut(u.CallbackQuery.Data, ":")
	if !ok || (action != ActionApprove && action != ActionReject) {
		return nil
	}
	d := &Decision{
		Action:    action,
		ContentID: contentID,
		QueryID:   u.CallbackQuery.ID,
	}
	if u.CallbackQuery.Message != nil {
		d.ChatID = u.CallbackQuery.Message.Chat.ID
	}
	return d
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// SendApprovalRequest sends a content preview to the reviewer with
// approve/reject buttons. The content id rides in the callback data, so
// it must stay short; Telegram caps callback data at 64 bytes.
func (b *Bot) SendApprovalRequest(ctx context.Context, chatID int64, contentID, topic, content string) (*Message, error) {
	text := fmt.Sprintf("<b>Content ready for approval</b>\n<b>Topic:</b> %s\n\n%s",
		escapeHTML(topic), RenderPreview(content))

	req := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
		ReplyMarkup: &inlineKeyboardMarkup{
			InlineKeyboard: [][]inlineKeyboardButton{{
				{Text: "✅ Approve", CallbackData: ActionApprove + ":" + contentID},
				{Text: "❌ Reject", CallbackData: ActionReject + ":" + contentID},
			}},
		},
	}

	msg, err := b.sendMessage(ctx, req)
	if err != nil {
		return nil, err
	}
	b.logger.Info("approval request sent", "chat_id", chatID, "content_id", contentID)
	return msg, nil
}

// SendMessage sends a plain notification message.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) (*Message, error) {
	return b.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text})
}

func (b *Bot) sendMessage(ctx context.Context, req sendMessageRequest) (*Message, error) {
	var msg Message
	if err := b.call(ctx, "sendMessage", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AnswerCallback acknowledges a button press so the client stops
// showing its loading state.
func (b *Bot) AnswerCallback(ctx context.Context, queryID, text string) error {
	req := map[string]string{"callback_query_id": queryID}
	if text != "" {
		req["text"] = text
	}
	return b.call(ctx, "answerCallbackQuery", req, nil)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

func (b *Bot) call(ctx context.Context, method string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", b.baseURL, b.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return ai.NewTransientError("telegram: request failed", 0, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("telegram: decoding %s response: %w", method, err)
	}
	if !api.OK {
		msg := fmt.Sprintf("telegram: %s failed: %s", method, api.Description)
		if api.ErrorCode == http.StatusTooManyRequests || api.ErrorCode >= 500 {
			return ai.NewTransientError(msg, api.ErrorCode, nil)
		}
		return ai.NewPermanentError(msg, api.ErrorCode, nil)
	}

	if out != nil && len(api.Result) > 0 {
		if err := json.Unmarshal(api.Result, out); err != nil {
			return fmt.Errorf("telegram: decoding %s result: %w", method, err)
		}
	}
	return nil
}
