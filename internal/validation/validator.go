package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/comment-moderation-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmission validates a comment or reply submission. Author and
// content are required; email and website are checked only when supplied.
func ValidateSubmission(sub *models.Submission) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(sub.Author) == "" {
		errors = append(errors, ValidationError{Field: "author", Message: "author is required"})
	}
	if strings.TrimSpace(sub.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}
	if len(sub.Content) > models.MaxContentLength {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content exceeds maximum length of %d characters", models.MaxContentLength),
		})
	}
	if sub.Email != "" && !emailRegex.MatchString(sub.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format"})
	}
	if sub.Website != "" && !isHTTPURL(sub.Website) {
		errors = append(errors, ValidationError{Field: "website", Message: "website must be an http(s) URL"})
	}

	return errors
}

// ValidateModeration validates the bot's moderation payload
func ValidateModeration(req *models.ModerationRequest) []ValidationError {
	var errors []ValidationError

	if req.ArticleID == "" {
		errors = append(errors, ValidationError{Field: "articleId", Message: "articleId is required"})
	}
	if req.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	}
	if !models.ValidActions[req.Action] {
		errors = append(errors, ValidationError{Field: "action", Message: "action must be one of: approve, decline"})
	}

	return errors
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
