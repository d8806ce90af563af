package models

// ModerationAction represents the bot's decision for a pending comment
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionDecline ModerationAction = "decline"
)

// ValidActions defines allowed moderation actions
var ValidActions = map[ModerationAction]bool{
	ActionApprove: true,
	ActionDecline: true,
}

// Submission is the client-supplied body for new comments and replies
type Submission struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// ModerationRequest is the bot's approve/decline request
type ModerationRequest struct {
	ArticleID string           `json:"articleId"`
	ID        string           `json:"id"`
	Action    ModerationAction `json:"action"`
}

// PendingResponse is returned after a comment is accepted for moderation
type PendingResponse struct {
	Message string        `json:"message"`
	ID      string        `json:"id"`
	Status  CommentStatus `json:"status"`
}

// PendingMessage is the confirmation shown to submitters of new comments
const PendingMessage = "Your comment is awaiting verification and will not be posted until acceptance by staff."
