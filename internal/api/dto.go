package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateArticleRequest is the request body for creating a text item.
type CreateArticleRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// Validate enforces the create contract: title and content are required.
func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateArticleRequest is the request body for updating a text item. No
// field is strictly required beyond what the codec needs.
type UpdateArticleRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// ArticleResponse echoes a created item with its assigned id.
type ArticleResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Message  string `json:"message"`
}

// TapeResponse describes a created tape.
type TapeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
	HasAudio    bool   `json:"hasAudio"`
	Message     string `json:"message"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DeployStatusResponse is the static readiness descriptor.
type DeployStatusResponse struct {
	Ready  bool   `json:"ready"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// DeployFailureResponse reports a fatal pipeline failure with the steps
// that completed before it.
type DeployFailureResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Steps   []string `json:"steps,omitempty"`
}
