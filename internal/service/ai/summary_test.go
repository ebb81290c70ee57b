package ai

import (
	"reflect"
	"testing"
)

func TestParseSummaryWithMarkers(t *testing.T) {
	raw := "SUMMARY: User needed a password reset.\nNEXT_ACTIONS:\n- Send reset link\n- Confirm login\n- Close ticket\n- Extra action"
	got := parseSummary(raw)

	if got.Summary != "User needed a password reset." {
		t.Fatalf("summary %q", got.Summary)
	}
	want := []string{"Send reset link", "Confirm login", "Close ticket"}
	if !reflect.DeepEqual(got.NextActions, want) {
		t.Fatalf("actions %q, want %q (capped at three)", got.NextActions, want)
	}
}

func TestParseSummaryInlineMarkers(t *testing.T) {
	got := parseSummary("Summary: all good NEXT_ACTIONS: - follow up")

	if got.Summary != "all good" {
		t.Fatalf("summary %q", got.Summary)
	}
	if !reflect.DeepEqual(got.NextActions, []string{"follow up"}) {
		t.Fatalf("actions %q", got.NextActions)
	}
}

func TestParseSummaryWithoutMarkers(t *testing.T) {
	got := parseSummary("The user asked about billing.\nCheck invoice\nEmail finance")

	if got.Summary != "The user asked about billing." {
		t.Fatalf("summary %q", got.Summary)
	}
	if !reflect.DeepEqual(got.NextActions, []string{"Check invoice", "Email finance"}) {
		t.Fatalf("actions %q", got.NextActions)
	}
}

func TestParseSummaryEmpty(t *testing.T) {
	got := parseSummary("")

	if got.Summary != noSummary {
		t.Fatalf("summary %q, want %q", got.Summary, noSummary)
	}
	if len(got.NextActions) != 0 {
		t.Fatalf("actions %q, want none", got.NextActions)
	}
	if got.NextActions == nil {
		t.Fatal("actions must be an empty slice, not nil, so the JSON field stays an array")
	}
}
