package gemini

import (
	"fmt"
	"regexp"
	"strings"
)

// truncationRatio flags a merge result as suspect when it comes back shorter
// than this fraction of the rendered markdown it was supposed to contain.
const truncationRatio = 0.5

// MergePrompt builds the fixed instruction for mapping markdown content into
// a Confluence template's structure.
func MergePrompt(templateBody, markdownContent string) string {
	return fmt.Sprintf(`I need to convert markdown content into Confluence storage-format HTML and merge it with a template.

CONFLUENCE TEMPLATE:
%s

MARKDOWN CONTENT:
%s

Please:
1. Convert ALL of the markdown content to proper Confluence HTML format
2. Merge it with the template structure, preserving the template's section headers
3. Ensure ALL sections of the markdown are included
4. Format inline code as <code> elements and code blocks as Confluence code markup
5. Preserve all headings, lists, tables and other formatting
6. DO NOT truncate or drop any content from the markdown

Return ONLY the final HTML content without any markdown or code block markers.`, templateBody, markdownContent)
}

// StripFences removes stray markdown code-fence markers the model sometimes
// wraps around its reply.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

var sectionHeadingRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// Truncated reports whether a merge result looks incomplete. A result is
// suspect when it is shorter than half the rendered markdown, when the last
// "##" section heading of the source markdown is missing from it, or when it
// ends inside an unclosed tag.
func Truncated(merged, markdownSource, rendered string) bool {
	if len(merged) < int(float64(len(rendered))*truncationRatio) {
		return true
	}

	if headings := sectionHeadingRe.FindAllStringSubmatch(markdownSource, -1); len(headings) > 0 {
		last := strings.TrimSpace(headings[len(headings)-1][1])
		if last != "" && !strings.Contains(merged, last) {
			return true
		}
	}

	if strings.LastIndex(merged, "<") > strings.LastIndex(merged, ">") {
		return true
	}

	return false
}
