package publish

import (
	"strings"
	"testing"
)

func TestNextTitleEmptySpace(t *testing.T) {
	if got := NextTitle(nil); got != "New Generated Document 001" {
		t.Fatalf("NextTitle() = %q", got)
	}
}

func TestNextTitleIncrementsMax(t *testing.T) {
	titles := []string{
		"New Generated Document 001",
		"New Generated Document 002",
		"New Generated Document 003",
		"Unrelated Page",
	}
	if got := NextTitle(titles); got != "New Generated Document 004" {
		t.Fatalf("NextTitle() = %q", got)
	}
}

func TestNextTitleGapsDoNotMatter(t *testing.T) {
	titles := []string{
		"New Generated Document 002",
		"New Generated Document 017",
	}
	if got := NextTitle(titles); got != "New Generated Document 018" {
		t.Fatalf("NextTitle() = %q", got)
	}
}

func TestNextTitleBareBaseTitle(t *testing.T) {
	if got := NextTitle([]string{"New Generated Document"}); got != "New Generated Document 001" {
		t.Fatalf("NextTitle() = %q", got)
	}
}

func TestGenerateTitleUsesSpaceListing(t *testing.T) {
	f := newFakeWiki()
	f.titles = []string{"New Generated Document 007"}
	p, _, _ := newTestPipeline(t, f)

	if got := p.GenerateTitle("DBT"); got != "New Generated Document 008" {
		t.Fatalf("GenerateTitle() = %q", got)
	}
}

func TestGenerateTitleFallsBackOnListingError(t *testing.T) {
	f := newFakeWiki()
	f.failSearch = true
	p, stderr, _ := newTestPipeline(t, f)

	got := p.GenerateTitle("DBT")
	if !strings.HasPrefix(got, "New Generated Document ") {
		t.Fatalf("GenerateTitle() = %q", got)
	}
	if got == "New Generated Document 001" {
		t.Fatal("expected timestamp fallback, not sequential title")
	}
	if !strings.Contains(stderr.String(), "Warning") {
		t.Fatal("expected warning on stderr")
	}
}
