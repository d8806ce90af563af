package realtime

import (
	"github.com/comment-moderation-api/internal/models"
)

// Event names pushed to connected clients
const (
	EventNewComment = "newComment"
	EventNewReply   = "newReply"
)

// Event is the envelope written to WebSocket clients
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NewCommentData is the payload of a newComment event
type NewCommentData struct {
	ArticleID string         `json:"articleId"`
	Comment   models.Comment `json:"comment"`
}

// NewReplyData is the payload of a newReply event
type NewReplyData struct {
	ArticleID string       `json:"articleId"`
	CommentID string       `json:"commentId"`
	Reply     models.Reply `json:"reply"`
}

// NewCommentEvent builds the event announcing an approved comment
func NewCommentEvent(articleID string, comment models.Comment) Event {
	return Event{
		Event: EventNewComment,
		Data:  NewCommentData{ArticleID: articleID, Comment: comment},
	}
}

// NewReplyEvent builds the event announcing a new reply
func NewReplyEvent(articleID, commentID string, reply models.Reply) Event {
	return Event{
		Event: EventNewReply,
		Data:  NewReplyData{ArticleID: articleID, CommentID: commentID, Reply: reply},
	}
}

// Broadcaster defines the interface for pushing events to viewers
type Broadcaster interface {
	// Broadcast delivers an event to clients subscribed to the article and
	// to clients with no article filter. Delivery is best-effort.
	Broadcast(articleID string, event Event)
}
