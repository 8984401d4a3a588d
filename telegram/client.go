// Telegram Bot API client: the channel gateway used for message deletion,
// sender restriction, and the inbound update stream.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/groupguard/bouncer/moderation/engine"
)

var DefaultAPIHost = "https://api.telegram.org"

// Client talks to the Bot API over HTTPS. Outbound calls share a rate limiter;
// transport retries live inside the HTTP client.
type Client struct {
	Host       string
	Token      string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Logger     *slog.Logger
}

var _ engine.Gateway = (*Client)(nil)

func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		Host:       DefaultAPIHost,
		Token:      token,
		HTTPClient: robustHTTPClient(logger),
		// Bot API global limit is 30 requests/sec; stay under it
		Limiter: rate.NewLimiter(rate.Limit(25), 5),
		Logger:  logger,
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding %s params: %w", method, err)
	}
	u := fmt.Sprintf("%s/bot%s/%s", c.Host, c.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if !apiResp.OK {
		return &APIError{Code: apiResp.ErrorCode, Description: apiResp.Description}
	}
	if out != nil {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

type deleteMessageParams struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return c.call(ctx, "deleteMessage", deleteMessageParams{ChatID: chatID, MessageID: messageID}, nil)
}

type restrictChatMemberParams struct {
	ChatID      int64           `json:"chat_id"`
	UserID      int64           `json:"user_id"`
	UntilDate   int64           `json:"until_date"`
	Permissions ChatPermissions `json:"permissions"`
}

func (c *Client) RestrictSender(ctx context.Context, chatID, senderID int64, until time.Time, perms engine.PermissionSet) error {
	return c.call(ctx, "restrictChatMember", restrictChatMemberParams{
		ChatID:      chatID,
		UserID:      senderID,
		UntilDate:   until.Unix(),
		Permissions: permissionsFromSet(perms),
	}, nil)
}

type getUpdatesParams struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int64    `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates long-polls for new updates starting at the given offset. The poll
// timeout must stay under the HTTP client timeout.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	var updates []Update
	err := c.call(ctx, "getUpdates", getUpdatesParams{
		Offset:         offset,
		Timeout:        int64(timeout / time.Second),
		AllowedUpdates: []string{"message"},
	}, &updates)
	if err != nil {
		return nil, err
	}
	return updates, nil
}
