package models

import "time"

// GenerationType tags what kind of artifact a generation holds.
type GenerationType string

const (
	GenerationVideoScript GenerationType = "video_script"
	GenerationContentIdea GenerationType = "content_idea"
	GenerationNewsletter  GenerationType = "newsletter"
	GenerationThread      GenerationType = "thread"
	GenerationUnknown     GenerationType = "unknown"
)

// ParseGenerationType maps stored tags to a known type; anything else is
// GenerationUnknown.
func ParseGenerationType(s string) GenerationType {
	switch t := GenerationType(s); t {
	case GenerationVideoScript, GenerationContentIdea, GenerationNewsletter, GenerationThread:
		return t
	default:
		return GenerationUnknown
	}
}

// Generation is an immutable AI-produced artifact. Ownership is not stored
// here; a generation belongs to whichever user's ledger references it.
type Generation struct {
	ID        int64          `json:"id"`
	Type      GenerationType `json:"type"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}
