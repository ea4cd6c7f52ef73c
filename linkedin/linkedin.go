// Package linkedin publishes approved posts through the LinkedIn UGC API.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ai "github.com/spetersoncode/postpilot"
)

const defaultBaseURL = "https://api.linkedin.com/v2"

// Client talks to the LinkedIn REST API on behalf of one member.
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	baseURL     string
	accessToken string

	// personURN caches the authenticated member's URN after the first
	// profile lookup. Guarded by mu: one Client is shared across
	// concurrent publishes.
	mu        sync.Mutex
	personURN string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLogger sets the logger for publish events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a LinkedIn client authenticated with the given OAuth
// access token.
func New(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      slog.Default(),
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post is the created share returned by the UGC API.
type Post struct {
	ID string `json:"id"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

type shareMedia struct {
	Status      string          `json:"status"`
	Description shareCommentary `json:"description"`
	Media       string          `json:"media"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
	Media              []shareMedia    `json:"media,omitempty"`
}

type ugcPost struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

func newUGCPost(author, content string) ugcPost {
	return ugcPost{
		Author:         author,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    shareCommentary{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
}

// PostText publishes a text-only share for the authenticated member.
func (c *Client) PostText(ctx context.Context, content string) (*Post, error) {
	author, err := c.PersonURN(ctx)
	if err != nil {
		return nil, err
	}
	return c.createPost(ctx, newUGCPost(author, content))
}

// PostImage publishes a share with one previously uploaded image asset.
func (c *Client) PostImage(ctx context.Context, content, assetURN string) (*Post, error) {
	author, err := c.PersonURN(ctx)
	if err != nil {
		return nil, err
	}

	post := newUGCPost(author, content)
	sc := post.SpecificContent["com.linkedin.ugc.ShareContent"]
	sc.ShareMediaCategory = "IMAGE"
	sc.Media = []shareMedia{{
		Status:      "READY",
		Description: shareCommentary{Text: "Professional business image"},
		Media:       assetURN,
	}}
	post.SpecificContent["com.linkedin.ugc.ShareContent"] = sc

	return c.createPost(ctx, post)
}

func (c *Client) createPost(ctx context.Context, post ugcPost) (*Post, error) {
	var created Post
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/ugcPosts", post, &created); err != nil {
		return nil, err
	}
	c.logger.Info("post published", "post_id", created.ID)
	return &created, nil
}

// PersonURN resolves and caches the authenticated member's URN.
func (c *Client) PersonURN(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.personURN != "" {
		return c.personURN, nil
	}

	var profile struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/me", nil, &profile); err != nil {
		return "", fmt.Errorf("linkedin: fetching profile: %w", err)
	}
	if profile.ID == "" {
		return "", ai.NewPermanentError("linkedin: profile response missing id", http.StatusBadGateway, nil)
	}

	c.personURN = "urn:li:person:" + profile.ID
	return c.personURN, nil
}

// UploadImage registers an upload with the assets API, sends the image
// bytes to the returned upload URL, and returns the asset URN for use
// in an image share.
func (c *Client) UploadImage(ctx context.Context, image []byte) (string, error) {
	owner, err := c.PersonURN(ctx)
	if err != nil {
		return "", err
	}

	register := map[string]any{
		"registerUploadRequest": map[string]any{
			"recipes": []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			"owner":   owner,
			"serviceRelationships": []map[string]string{{
				"relationshipType": "OWNER",
				"identifier":       "urn:li:userGeneratedContent",
			}},
		},
	}

	var registered struct {
		Value struct {
			Asset           string `json:"asset"`
			UploadMechanism map[string]struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"uploadMechanism"`
		} `json:"value"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/assets?action=registerUpload", register, &registered); err != nil {
		return "", fmt.Errorf("linkedin: registering upload: %w", err)
	}

	mechanism, ok := registered.Value.UploadMechanism["com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"]
	if !ok || mechanism.UploadURL == "" {
		return "", ai.NewPermanentError("linkedin: register response missing upload URL", http.StatusBadGateway, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, mechanism.UploadURL, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ai.NewTransientError("linkedin: image upload failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError(resp.StatusCode, "image upload")
	}

	c.logger.Info("image uploaded", "asset", registered.Value.Asset)
	return registered.Value.Asset, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ai.NewTransientError("linkedin: request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, method+" "+url)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("linkedin: decoding response: %w", err)
		}
	}
	return nil
}

// statusError maps HTTP failures onto the error taxonomy: 429 and 5xx
// are retryable, everything else is permanent.
func statusError(code int, op string) error {
	msg := fmt.Sprintf("linkedin: %s returned status %d", op, code)
	if code == http.StatusTooManyRequests || code >= 500 {
		return ai.NewTransientError(msg, code, nil)
	}
	return ai.NewPermanentError(msg, code, nil)
}
