package volatility

import "testing"

func TestBuildFeedbackEntry(t *testing.T) {
	entry, err := BuildFeedbackEntry(CategoryFeature, "longer VIX history please", " a@b.com ", "volwatch-test/1.0", "/contact")
	if err != nil {
		t.Fatalf("BuildFeedbackEntry: %v", err)
	}
	if entry.Category != CategoryFeature {
		t.Fatalf("unexpected category %s", entry.Category)
	}
	if entry.Message != "longer VIX history please" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	if entry.Contact != "a@b.com" {
		t.Fatalf("contact should be trimmed, got %q", entry.Contact)
	}
	if entry.UserAgent != "volwatch-test/1.0" || entry.PagePath != "/contact" {
		t.Fatalf("metadata not carried: %+v", entry)
	}
}

func TestBuildFeedbackEntryBlankMessage(t *testing.T) {
	for _, message := range []string{"", "   ", "\n"} {
		if _, err := BuildFeedbackEntry(CategoryBug, message, "", "", ""); !IsValidation(err) {
			t.Fatalf("message %q: expected validation error, got %v", message, err)
		}
	}
}

func TestBuildFeedbackEntryUnknownCategory(t *testing.T) {
	if _, err := BuildFeedbackEntry("praise", "nice dashboard", "", "", ""); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}
