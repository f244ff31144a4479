package gemini

import (
	"strings"
	"testing"
)

func TestMergePromptIncludesBothBodies(t *testing.T) {
	prompt := MergePrompt("<h1>Template</h1>", "## Section\ncontent")
	if !strings.Contains(prompt, "<h1>Template</h1>") {
		t.Fatal("prompt missing template body")
	}
	if !strings.Contains(prompt, "## Section") {
		t.Fatal("prompt missing markdown content")
	}
}

func TestStripFences(t *testing.T) {
	got := StripFences("```html\n<p>hi</p>\n```")
	if got != "<p>hi</p>" {
		t.Fatalf("StripFences() = %q", got)
	}
}

func TestTruncatedShortOutput(t *testing.T) {
	rendered := strings.Repeat("<p>content</p>\n", 50)
	if !Truncated("<p>tiny</p>", "content", rendered) {
		t.Fatal("expected short output to be flagged as truncated")
	}
}

func TestTruncatedMissingLastSection(t *testing.T) {
	src := "## Intro\n\ntext\n\n## How to Use\n\nmore text\n"
	merged := "<h2>Intro</h2><p>text</p>"
	if !Truncated(merged, src, merged) {
		t.Fatal("expected output missing the last section to be flagged")
	}
}

func TestTruncatedUnclosedTag(t *testing.T) {
	merged := "<h2>Intro</h2><p>text</p><h2"
	if !Truncated(merged, "## Intro\n", merged) {
		t.Fatal("expected output ending mid-tag to be flagged")
	}
}

func TestTruncatedCompleteOutput(t *testing.T) {
	src := "## Intro\n\ntext\n\n## How to Use\n\nmore\n"
	merged := "<h2>Intro</h2><p>text</p><h2>How to Use</h2><p>more</p>"
	if Truncated(merged, src, merged) {
		t.Fatal("complete output flagged as truncated")
	}
}
