// Package models defines the client-side view of cocreate API resources.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Kind names a generation endpoint.
type Kind string

const (
	KindVideoScript Kind = "video-script"
	KindContentIdea Kind = "content-idea"
	KindNewsletter  Kind = "newsletter"
	KindThread      Kind = "thread"
)

// ParseKind accepts endpoint names and their snake_case storage tags.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	switch k {
	case KindVideoScript, KindContentIdea, KindNewsletter, KindThread:
		return k, true
	}
	return "", false
}

// Setting names a preference endpoint under /settings.
type Setting string

const (
	SettingContentType       Setting = "content-type"
	SettingTargetAudience    Setting = "target"
	SettingAdditionalContext Setting = "additional-context"
)

// Field is the JSON body field the setting endpoint expects.
func (s Setting) Field() string {
	switch s {
	case SettingContentType:
		return "content_type"
	case SettingTargetAudience:
		return "target_audience"
	default:
		return "additional_context"
	}
}

type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type Profile struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	ContentType         string    `json:"content_type"`
	TargetAudience      string    `json:"target_audience"`
	AdditionalContext   string    `json:"additional_context"`
	CreatedAt           time.Time `json:"created_at"`
	Generations         []int64   `json:"generations"`
	FavoriteGenerations []int64   `json:"favorite_generations"`
}

type Generation struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateResult is the answer of a /generate call. Message is text for
// scripts and ideas, an object for newsletters and a list for threads.
type GenerateResult struct {
	ID      int64           `json:"generation_id"`
	Message json.RawMessage `json:"message"`
}

type Newsletter struct {
	Subject string   `json:"subject"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type Upload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}
