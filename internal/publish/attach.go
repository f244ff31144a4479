package publish

import (
	"fmt"
	"strings"

	"github.com/dt-pm-tools/confluence-md/internal/confluence"
)

// UploadAttachments uploads each local file to the page and makes sure the
// page body links every uploaded file. One file failing is reported and
// skipped; the page and the other attachments stand.
func (p *Pipeline) UploadAttachments(page *confluence.Page, body string, files []string) error {
	var uploaded []string
	for _, path := range files {
		filename, err := p.wiki.AttachFile(page.ID, path)
		if err != nil {
			fmt.Fprintf(p.stderr, "Error attaching %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(p.stderr, "Successfully attached %s\n", filename)
		uploaded = append(uploaded, filename)
	}

	if len(uploaded) == 0 {
		return nil
	}

	linked, changed := EnsureAttachmentLinks(body, uploaded)
	if !changed {
		return nil
	}

	_, err := p.wiki.UpdatePage(page.ID, confluence.UpdatePayload{
		Type:    "page",
		Title:   page.Title,
		Version: confluence.PageVersion{Number: page.Version.Number + 1},
		Body:    confluence.StorageValue(linked),
	})
	if err != nil {
		return fmt.Errorf("adding attachment links: %w", err)
	}
	fmt.Fprintf(p.stderr, "Added attachment links to page %q\n", page.Title)
	return nil
}

// EnsureAttachmentLinks appends an Attachments section linking every file
// not already referenced in the body. Reports whether the body changed.
func EnsureAttachmentLinks(body string, filenames []string) (string, bool) {
	var missing []string
	for _, name := range filenames {
		if !strings.Contains(body, fmt.Sprintf("ri:filename=%q", name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return body, false
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n<h2>Attachments</h2>\n<ul>")
	for _, name := range missing {
		// Confluence storage format links attachments via the ri:attachment macro.
		b.WriteString(fmt.Sprintf("\n<li><ac:link><ri:attachment ri:filename=%q /></ac:link></li>", name))
	}
	b.WriteString("\n</ul>")
	return b.String(), true
}
