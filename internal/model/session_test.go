package model

import (
	"strings"
	"testing"
)

// ============================================================================
// SaveSessionRequest Tests
// ============================================================================

func TestSaveSessionRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &SaveSessionRequest{
		Title:       "Morning Breathwork",
		Tags:        "breath, calm",
		JSONFileURL: "https://cdn.example.com/sessions/breath.json",
		Description: "Ten minutes of box breathing",
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestSaveSessionRequest_Validate_TitleOnly(t *testing.T) {
	t.Parallel()

	req := &SaveSessionRequest{Title: "T"}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestSaveSessionRequest_Validate_MissingTitle(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   "} {
		req := &SaveSessionRequest{Title: title}
		errors := req.Validate()
		if len(errors) != 1 || errors[0].Field != "title" {
			t.Errorf("title %q: expected title error, got %v", title, errors)
		}
	}
}

func TestSaveSessionRequest_Validate_DescriptionBoundary(t *testing.T) {
	t.Parallel()

	atLimit := &SaveSessionRequest{Title: "T", Description: strings.Repeat("a", MaxSessionDescriptionLength)}
	if errors := atLimit.Validate(); len(errors) > 0 {
		t.Errorf("expected description at limit to pass, got %v", errors)
	}

	overLimit := &SaveSessionRequest{Title: "T", Description: strings.Repeat("a", MaxSessionDescriptionLength+1)}
	errors := overLimit.Validate()
	if len(errors) != 1 || errors[0].Field != "description" {
		t.Errorf("expected description error, got %v", errors)
	}
}

func TestSaveSessionRequest_Validate_CountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	// 1000 three-byte runes are still 1000 characters
	req := &SaveSessionRequest{Title: "T", Description: strings.Repeat("é", MaxSessionDescriptionLength)}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestSaveSessionRequest_Validate_MultipleErrors(t *testing.T) {
	t.Parallel()

	badID := int64(0)
	req := &SaveSessionRequest{
		ID:          &badID,
		Title:       strings.Repeat("t", MaxSessionTitleLength+1),
		Tags:        strings.Repeat("x", MaxSessionTagsLength+1),
		JSONFileURL: strings.Repeat("u", MaxSessionURLLength+1),
	}

	errors := req.Validate()

	fields := map[string]bool{}
	for _, e := range errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"id", "title", "tags", "jsonFileUrl"} {
		if !fields[want] {
			t.Errorf("expected %s error, got %v", want, errors)
		}
	}
}

func TestSaveSessionRequest_Content(t *testing.T) {
	t.Parallel()

	req := &SaveSessionRequest{Title: "T", Tags: "a", JSONFileURL: "u", Description: "d"}

	got := req.Content()

	want := SessionContent{Title: "T", Tags: "a", JSONFileURL: "u", Description: "d"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

// ============================================================================
// Session / Status Tests
// ============================================================================

func TestSessionStatus_IsValid(t *testing.T) {
	t.Parallel()

	if !SessionStatusDraft.IsValid() || !SessionStatusPublished.IsValid() {
		t.Error("expected DRAFT and PUBLISHED to be valid")
	}
	if SessionStatus("ARCHIVED").IsValid() {
		t.Error("expected ARCHIVED to be invalid")
	}
}

func TestSession_OwnedBy(t *testing.T) {
	t.Parallel()

	s := &Session{Owner: SessionOwner{ID: 1, Email: "a@x.com"}}

	if !s.OwnedBy(1) {
		t.Error("expected owner 1 to own the session")
	}
	if s.OwnedBy(2) {
		t.Error("expected user 2 not to own the session")
	}
}

func TestUser_Owner(t *testing.T) {
	t.Parallel()

	u := &User{ID: 5, Email: "five@x.com", PasswordHash: "secret"}

	if got := u.Owner(); got != (SessionOwner{ID: 5, Email: "five@x.com"}) {
		t.Errorf("unexpected owner summary %+v", got)
	}
}
