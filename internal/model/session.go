package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SessionStatus is the publication state of a session
type SessionStatus string

const (
	SessionStatusDraft     SessionStatus = "DRAFT"     // Visible to the owner only
	SessionStatusPublished SessionStatus = "PUBLISHED" // Listed publicly
)

// IsValid returns true if the status is a known session status
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusDraft, SessionStatusPublished:
		return true
	default:
		return false
	}
}

// Field bounds, mirrored by the relational schema
const (
	MaxSessionTitleLength       = 255
	MaxSessionTagsLength        = 255
	MaxSessionDescriptionLength = 1000
	MaxSessionURLLength         = 2048
)

// SessionOwner is the owner summary embedded in session responses
type SessionOwner struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Session is a shareable wellness session. The JSON file URL points at
// externally stored content and is never interpreted.
type Session struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Tags        string        `json:"tags"`
	JSONFileURL string        `json:"jsonFileUrl"`
	Description string        `json:"description"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Owner       SessionOwner  `json:"user"`
}

// IsPublished returns true once the session is publicly listed
func (s *Session) IsPublished() bool {
	return s.Status == SessionStatusPublished
}

// OwnedBy reports whether userID owns the session
func (s *Session) OwnedBy(userID int64) bool {
	return s.Owner.ID == userID
}

// SessionContent is the caller-editable part of a session
type SessionContent struct {
	Title       string
	Tags        string
	JSONFileURL string
	Description string
}

// SaveSessionRequest is the body of save-draft and update calls.
// ID is absent when save-draft should create a new session.
type SaveSessionRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Title       string `json:"title"`
	Tags        string `json:"tags"`
	JSONFileURL string `json:"jsonFileUrl"`
	Description string `json:"description"`
}

// Content returns the editable fields of the request
func (r *SaveSessionRequest) Content() SessionContent {
	return SessionContent{
		Title:       r.Title,
		Tags:        r.Tags,
		JSONFileURL: r.JSONFileURL,
		Description: r.Description,
	}
}

// Validate checks if the request is valid
func (r *SaveSessionRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(r.Title) > MaxSessionTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: fmt.Sprintf("title must be %d characters or less", MaxSessionTitleLength)})
	}
	if utf8.RuneCountInString(r.Tags) > MaxSessionTagsLength {
		errors = append(errors, FieldError{Field: "tags", Message: fmt.Sprintf("tags must be %d characters or less", MaxSessionTagsLength)})
	}
	if utf8.RuneCountInString(r.JSONFileURL) > MaxSessionURLLength {
		errors = append(errors, FieldError{Field: "jsonFileUrl", Message: fmt.Sprintf("jsonFileUrl must be %d characters or less", MaxSessionURLLength)})
	}
	if utf8.RuneCountInString(r.Description) > MaxSessionDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: fmt.Sprintf("description must be %d characters or less", MaxSessionDescriptionLength)})
	}
	if r.ID != nil && *r.ID <= 0 {
		errors = append(errors, FieldError{Field: "id", Message: "id must be a positive integer"})
	}

	return errors
}
