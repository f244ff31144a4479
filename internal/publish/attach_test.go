package publish

import (
	"strings"
	"testing"
)

func TestEnsureAttachmentLinksAppendsMissing(t *testing.T) {
	body, changed := EnsureAttachmentLinks("<p>body</p>", []string{"a.txt", "b.png"})
	if !changed {
		t.Fatal("expected body to change")
	}
	if !strings.Contains(body, "<h2>Attachments</h2>") {
		t.Fatalf("missing attachments section:\n%s", body)
	}
	for _, name := range []string{"a.txt", "b.png"} {
		if !strings.Contains(body, `<ac:link><ri:attachment ri:filename="`+name+`" /></ac:link>`) {
			t.Fatalf("missing link for %s:\n%s", name, body)
		}
	}
}

func TestEnsureAttachmentLinksSkipsAlreadyReferenced(t *testing.T) {
	body := `<p>see <ac:link><ri:attachment ri:filename="a.txt" /></ac:link></p>`
	got, changed := EnsureAttachmentLinks(body, []string{"a.txt"})
	if changed {
		t.Fatal("expected no change when all files already referenced")
	}
	if got != body {
		t.Fatalf("body modified: %q", got)
	}
}

func TestEnsureAttachmentLinksOnlyAppendsUnreferenced(t *testing.T) {
	body := `<p><ac:link><ri:attachment ri:filename="a.txt" /></ac:link></p>`
	got, changed := EnsureAttachmentLinks(body, []string{"a.txt", "b.png"})
	if !changed {
		t.Fatal("expected body to change for the unreferenced file")
	}
	if strings.Count(got, `ri:filename="a.txt"`) != 1 {
		t.Fatal("already-referenced file linked twice")
	}
	if !strings.Contains(got, `ri:filename="b.png"`) {
		t.Fatal("missing link for b.png")
	}
}
