package volatility

import "strings"

// Category classifies a feedback entry.
type Category string

const (
	CategoryBug     Category = "bug"
	CategoryFeature Category = "feature"
	CategoryOther   Category = "other"
)

// FeedbackEntry is a free-text feedback submission ready to persist.
type FeedbackEntry struct {
	Category  Category
	Message   string
	Contact   string
	UserAgent string
	PagePath  string
}

// BuildFeedbackEntry validates and packages a feedback submission.
func BuildFeedbackEntry(category Category, message, contact, userAgent, pagePath string) (FeedbackEntry, error) {
	switch category {
	case CategoryBug, CategoryFeature, CategoryOther:
	default:
		return FeedbackEntry{}, &ValidationError{Field: "category", Reason: "must be one of bug, feature, other"}
	}

	if strings.TrimSpace(message) == "" {
		return FeedbackEntry{}, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	return FeedbackEntry{
		Category:  category,
		Message:   message,
		Contact:   strings.TrimSpace(contact),
		UserAgent: userAgent,
		PagePath:  pagePath,
	}, nil
}
