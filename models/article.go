package models

// Article is what an article source knows about a page before any questions exist.
type Article struct {
	Title         string   `json:"title"`
	SourceURL     string   `json:"url"`
	Summary       string   `json:"summary"`
	Sections      []string `json:"sections"`
	Entities      []string `json:"entities"`
	RelatedTopics []string `json:"related_topics"`
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationFailure NotificationKind = "failure"
)

type Notification struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Kind        NotificationKind `json:"kind"`
}
