package tui

import (
	"strings"

	"github.com/thunderx/thunder/internal/page"
	"github.com/thunderx/thunder/internal/reveal"
)

// RenderPlain renders the whole page of a settled session for a non-interactive
// output. Nothing scrolls there, so every section is shown.
func RenderPlain(s *page.Session, priorityLabel string, width int) string {
	all := make(reveal.Map, len(page.Regions))
	for _, region := range page.Regions {
		all[region] = true
	}

	r := RenderPage(PageData{
		State:         s.State(),
		Split:         s.Partition(),
		Reveals:       all,
		PriorityLabel: priorityLabel,
		Width:         width,
	})
	return RenderHeader(width) + "\n" + strings.Join(r.Lines, "\n") + "\n"
}
