package publish

import (
	"fmt"
	"io"
	"os"

	"github.com/dt-pm-tools/confluence-md/internal/confluence"
	"github.com/dt-pm-tools/confluence-md/internal/gemini"
	"github.com/dt-pm-tools/confluence-md/internal/markdown"
)

// Options describes a single publish run.
type Options struct {
	MarkdownFile string
	TemplateName string
	NoTemplate   bool
	SpaceKey     string
	Title        string
	ParentPage   string
	Attachments  []string
}

// PageSpec is the complete description needed to create or update a page.
// It is built incrementally across the pipeline and handed to Upsert once.
type PageSpec struct {
	SpaceKey string
	Title    string
	ParentID string
	Body     string
}

// Pipeline runs the markdown-to-Confluence publish sequence: load, render,
// optional template merge, optional title generation, optional parent
// lookup, page upsert, attachments. Each optional step returns an explicit
// skip instead of nesting conditionals in the orchestrator.
type Pipeline struct {
	wiki   *confluence.Client
	ai     *gemini.Client
	stderr io.Writer
}

// New creates a pipeline. ai may be nil when no template merge will run.
func New(wiki *confluence.Client, ai *gemini.Client, stderr io.Writer) *Pipeline {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Pipeline{wiki: wiki, ai: ai, stderr: stderr}
}

// Run executes the full pipeline for one markdown file.
func (p *Pipeline) Run(opts Options) error {
	source, err := os.ReadFile(opts.MarkdownFile)
	if err != nil {
		return fmt.Errorf("reading markdown file: %w", err)
	}

	rendered, err := markdown.Render(source)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	body := rendered
	if opts.TemplateName != "" && !opts.NoTemplate {
		tmpl, err := p.ResolveTemplate(opts.SpaceKey, opts.TemplateName)
		if err != nil {
			return fmt.Errorf("resolving template: %w", err)
		}
		if tmpl == nil {
			fmt.Fprintf(p.stderr, "Template %q not found. Using direct markdown conversion.\n", opts.TemplateName)
		} else {
			fmt.Fprintf(p.stderr, "Filling template %q with content from %s\n", opts.TemplateName, opts.MarkdownFile)
			body, err = p.Merge(templateBody(tmpl), string(source), rendered)
			if err != nil {
				return fmt.Errorf("merging content: %w", err)
			}
		}
	} else {
		fmt.Fprintf(p.stderr, "Using direct markdown conversion for %s\n", opts.MarkdownFile)
	}

	title := opts.Title
	if title == "" {
		title = p.GenerateTitle(opts.SpaceKey)
		fmt.Fprintf(p.stderr, "Using generated title: %s\n", title)
	}

	parentID := ""
	if opts.ParentPage != "" {
		parentID, err = p.ResolveParent(opts.SpaceKey, opts.ParentPage)
		if err != nil {
			return fmt.Errorf("resolving parent page: %w", err)
		}
	}

	page, err := p.Upsert(PageSpec{
		SpaceKey: opts.SpaceKey,
		Title:    title,
		ParentID: parentID,
		Body:     body,
	})
	if err != nil {
		return fmt.Errorf("publishing page: %w", err)
	}

	if len(opts.Attachments) > 0 {
		if err := p.UploadAttachments(page, body, opts.Attachments); err != nil {
			return fmt.Errorf("uploading attachments: %w", err)
		}
	}

	return nil
}

// ResolveTemplate finds a template by exact, case-sensitive name match in
// the space. Returns (nil, nil) when no template with that name exists, so
// the pipeline can fall back to direct conversion.
func (p *Pipeline) ResolveTemplate(spaceKey, name string) (*confluence.Template, error) {
	templates, err := p.wiki.GetTemplates(spaceKey)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	fmt.Fprintf(p.stderr, "Available templates: %v\n", names)

	for i := range templates {
		if templates[i].Name == name {
			return &templates[i], nil
		}
	}
	return nil, nil
}

// Merge sends the rendered markdown and template body to Gemini and
// validates the result for truncation. A truncated result gets the full
// rendered markdown appended beneath it so no content is silently dropped.
// A failed request is fatal; falling back to an unmerged body here would
// publish a structure the user did not ask for.
func (p *Pipeline) Merge(templateBody, markdownSource, rendered string) (string, error) {
	reply, err := p.ai.GenerateContent(gemini.MergePrompt(templateBody, markdownSource))
	if err != nil {
		return "", err
	}

	merged := gemini.StripFences(reply)
	if gemini.Truncated(merged, markdownSource, rendered) {
		fmt.Fprintln(p.stderr, "Warning: merged content appears truncated. Appending direct conversion.")
		merged = fmt.Sprintf("%s\n<hr/>\n<h2>Additional Content:</h2>\n%s", merged, rendered)
	}
	return merged, nil
}

// ResolveParent looks up a parent page by exact title. A missing parent is
// an error so the page is never created under the wrong hierarchy.
func (p *Pipeline) ResolveParent(spaceKey, parentTitle string) (string, error) {
	parent, err := p.wiki.GetPageByTitle(spaceKey, parentTitle)
	if err != nil {
		return "", err
	}
	if parent == nil {
		return "", fmt.Errorf("parent page %q not found in space %q", parentTitle, spaceKey)
	}
	fmt.Fprintf(p.stderr, "Found parent page: %s with ID: %s\n", parentTitle, parent.ID)
	return parent.ID, nil
}

// Upsert creates or updates the page keyed by (space, title) and returns
// the resulting page with its current version.
func (p *Pipeline) Upsert(spec PageSpec) (*confluence.Page, error) {
	existing, err := p.wiki.GetPageByTitle(spec.SpaceKey, spec.Title)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updated, err := p.wiki.UpdatePage(existing.ID, confluence.UpdatePayload{
			Type:    "page",
			Title:   spec.Title,
			Version: confluence.PageVersion{Number: existing.Version.Number + 1},
			Body:    confluence.StorageValue(spec.Body),
		})
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(p.stderr, "Page %q updated successfully.\n", spec.Title)
		return updated, nil
	}

	payload := confluence.CreatePayload{
		Type:  "page",
		Title: spec.Title,
		Space: confluence.SpaceRef{Key: spec.SpaceKey},
		Body:  confluence.StorageValue(spec.Body),
	}
	if spec.ParentID != "" {
		payload.Ancestors = []confluence.Ancestor{{ID: spec.ParentID}}
	}

	created, err := p.wiki.CreatePage(payload)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.stderr, "Page %q created successfully with ID: %s\n", spec.Title, created.ID)
	return created, nil
}

func templateBody(t *confluence.Template) string {
	if t.Body.Storage == nil {
		return ""
	}
	return t.Body.Storage.Value
}
