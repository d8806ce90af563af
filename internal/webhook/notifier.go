package webhook

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/comment-moderation-api/internal/config"
	"github.com/comment-moderation-api/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Notifier defines the interface for moderation-bot notification
type Notifier interface {
	// NotifyNewComment queues a moderation callback for a freshly created
	// comment. It never blocks the caller and never returns an error;
	// delivery problems are logged, not surfaced.
	NotifyNewComment(comment models.Comment)
}

// CommentPayload carries the essential fields of a comment needing moderation
type CommentPayload struct {
	ID        string `json:"id"`
	ArticleID string `json:"articleId"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	Date      string `json:"date"`
}

// NotificationBody is the outbound webhook request body
type NotificationBody struct {
	Comment CommentPayload `json:"comment"`
}

// BotNotifier is the concrete implementation of Notifier. Deliveries run on
// a background worker decoupled from the request cycle, with bounded
// retries; a notification that exhausts its retries is dead-lettered to the
// log so a pending comment can still be moderated by other means.
type BotNotifier struct {
	cfg    *config.WebhookConfig
	client *resty.Client
	log    zerolog.Logger

	queue   chan NotificationBody
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// Verify interface compliance
var _ Notifier = (*BotNotifier)(nil)

// NewNotifier creates a moderation-bot notifier. When the webhook is not
// configured, queued notifications are dropped silently.
func NewNotifier(cfg *config.WebhookConfig, log zerolog.Logger) *BotNotifier {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetAuthToken(cfg.BotSharedSecret).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &BotNotifier{
		cfg:    cfg,
		client: client,
		log:    log.With().Str("component", "webhook").Logger(),
		queue:  make(chan NotificationBody, cfg.QueueSize),
	}
}

// Start launches the delivery worker
func (n *BotNotifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return
	}
	n.running = true
	n.ctx, n.cancel = context.WithCancel(ctx)

	n.wg.Add(1)
	go n.run()

	if n.cfg.Enabled() {
		n.log.Info().Str("endpoint", n.cfg.BotEndpointURL).Msg("Webhook notifier started")
	} else {
		n.log.Info().Msg("Webhook notifier started (no endpoint configured, notifications disabled)")
	}
}

// Stop drains the worker and waits for in-flight deliveries
func (n *BotNotifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.running {
		return
	}
	n.cancel()
	n.wg.Wait()
	n.running = false
	n.log.Info().Msg("Webhook notifier stopped")
}

// NotifyNewComment queues a moderation callback, dropping on overflow
func (n *BotNotifier) NotifyNewComment(comment models.Comment) {
	if !n.cfg.Enabled() {
		return
	}

	body := NotificationBody{
		Comment: CommentPayload{
			ID:        comment.ID,
			ArticleID: comment.ArticleID,
			Author:    comment.Author,
			Content:   comment.Content,
			Email:     comment.Email,
			Website:   comment.Website,
			Date:      comment.Date.Format(time.RFC3339),
		},
	}

	select {
	case n.queue <- body:
	default:
		n.log.Error().
			Str("comment_id", comment.ID).
			Str("article_id", comment.ArticleID).
			Msg("Webhook queue full, dropping moderation notification")
	}
}

// run delivers queued notifications until the context is cancelled
func (n *BotNotifier) run() {
	defer n.wg.Done()

	for {
		select {
		case <-n.ctx.Done():
			return
		case body := <-n.queue:
			n.deliver(body)
		}
	}
}

// deliver posts one notification, relying on the client's retry policy.
// Final failures are dead-lettered to the log with the full payload.
func (n *BotNotifier) deliver(body NotificationBody) {
	url := strings.TrimRight(n.cfg.BotEndpointURL, "/") + "/moderation/new"

	resp, err := n.client.R().
		SetContext(n.ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)

	if err != nil {
		n.deadLetter(body, err.Error())
		return
	}
	if resp.IsError() {
		n.deadLetter(body, resp.Status())
		return
	}

	n.log.Info().
		Str("comment_id", body.Comment.ID).
		Str("article_id", body.Comment.ArticleID).
		Msg("Moderation notification delivered")
}

func (n *BotNotifier) deadLetter(body NotificationBody, reason string) {
	n.log.Error().
		Str("reason", reason).
		Interface("payload", body).
		Msg("Moderation notification failed after retries, dead-lettered")
}
