package models

import (
	"time"
)

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	StatusPending  CommentStatus = "pending"
	StatusApproved CommentStatus = "approved"
)

// Comment represents a top-level comment on an article
type Comment struct {
	ID         string        `json:"id"`
	ArticleID  string        `json:"articleId"`
	Author     string        `json:"author"`
	Email      string        `json:"email"`
	Website    string        `json:"website"`
	Content    string        `json:"content"`
	Date       time.Time     `json:"date"`
	Status     CommentStatus `json:"status"`
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
	Replies    []Reply       `json:"replies"`
}

// EffectiveStatus returns the comment's status, treating records persisted
// without one as approved (files written before moderation existed).
func (c *Comment) EffectiveStatus() CommentStatus {
	if c.Status == "" {
		return StatusApproved
	}
	return c.Status
}

// Reply represents a reply to a comment. Replies are never moderated and
// are visible as soon as they are created.
type Reply struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	Website string    `json:"website"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// MaxContentLength is the maximum allowed length of a comment or reply body
const MaxContentLength = 10000
