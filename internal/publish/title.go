package publish

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// baseTitle is the stem for auto-generated page titles.
const baseTitle = "New Generated Document"

var titleNumberRe = regexp.MustCompile(`^` + baseTitle + `(?: (\d+))?`)

// GenerateTitle produces the next unused sequential title in the space:
// "New Generated Document NNN" with NNN zero-padded to three digits. An
// empty space starts at 001. A failed title listing falls back to a
// timestamp-based title so the run still makes progress.
func (p *Pipeline) GenerateTitle(spaceKey string) string {
	titles, err := p.wiki.SearchTitles(spaceKey, baseTitle, 100)
	if err != nil {
		fmt.Fprintf(p.stderr, "Warning: listing titles in space %q failed (%v), using timestamp title\n", spaceKey, err)
		return fmt.Sprintf("%s %s", baseTitle, time.Now().UTC().Format("20060102-150405"))
	}

	return NextTitle(titles)
}

// NextTitle computes the next sequential title from existing page titles.
// A bare "New Generated Document" counts as number zero.
func NextTitle(titles []string) string {
	max := 0
	found := false
	for _, title := range titles {
		m := titleNumberRe.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		found = true
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}

	next := 1
	if found {
		next = max + 1
	}
	return fmt.Sprintf("%s %03d", baseTitle, next)
}
