package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/thunderx/thunder/internal/catalog"
	"github.com/thunderx/thunder/internal/domain"
	"github.com/thunderx/thunder/internal/page"
	"github.com/thunderx/thunder/internal/reveal"
	"github.com/thunderx/thunder/internal/tui/styles"
)

const (
	minPageWidth = 40
	maxPageWidth = 100
	cardIndent   = "  "
)

// PageData is the core state the page view renders from
type PageData struct {
	State         domain.LoadState
	Split         catalog.Partition
	Reveals       reveal.Map
	Query         string
	PriorityLabel string
	Width         int
	SpinnerFrame  int
}

// Rendered is the page as document rows plus the row span of each region
type Rendered struct {
	Lines   []string
	Regions map[string]reveal.Bounds
}

// RenderPage lays out the whole page. It has no side effects: the same data
// always yields the same rows. A region that has not been revealed keeps its
// height but renders blank, so revealing it never shifts the layout.
func RenderPage(d PageData) Rendered {
	width := min(max(d.Width, minPageWidth), maxPageWidth)

	sections := []struct {
		region string
		lines  []string
	}{
		{page.RegionHero, heroLines(width)},
		{page.RegionProducts, productLines(d, width)},
		{page.RegionTestimonials, testimonialLines(d, width)},
		{page.RegionCTA, ctaLines(width)},
	}

	out := Rendered{Regions: make(map[string]reveal.Bounds, len(sections))}
	for _, s := range sections {
		lines := s.lines
		if !d.Reveals.Revealed(s.region) {
			lines = make([]string, len(s.lines))
		}
		out.Regions[s.region] = reveal.Bounds{Top: len(out.Lines), Height: len(lines)}
		out.Lines = append(out.Lines, lines...)
		out.Lines = append(out.Lines, "")
	}
	return out
}

// RenderHeader renders the fixed top bar
func RenderHeader(width int) string {
	brand := styles.TitleStyle.Render("⚡ THUNDER SERVICES")
	button := styles.PrimaryButtonStyle.Render("JOIN CHANNEL [t]")
	gap := width - lipgloss.Width(brand) - lipgloss.Width(button) - 2
	if gap < 1 {
		return " " + brand
	}
	return " " + brand + strings.Repeat(" ", gap) + button + " "
}

func heroLines(width int) []string {
	buttons := styles.PrimaryButtonStyle.Render("JOIN OUR TELEGRAM [t]") + "  " +
		styles.SecondaryButtonStyle.Render("@THUNDERXSERVICES [i]")
	trust := styles.SuccessStyle.Render("✔") + " 100% Authentic   " +
		styles.SuccessStyle.Render("✔") + " Fast Delivery   " +
		styles.SuccessStyle.Render("✔") + " Exclusive Deals"

	lines := []string{
		"",
		styles.Center(styles.TitleStyle.Render("THUNDER"), width),
		styles.Center(styles.SectionTitleStyle.Render("SERVICES"), width),
		styles.Center(styles.Rule(12), width),
		"",
	}
	lines = append(lines, centered(wrap("The best in sneakers, clothing, and watches.", width), width)...)
	lines = append(lines,
		styles.Center("Quality and deals that "+styles.AccentStyle.Render("hit hard")+".", width),
		"",
		styles.Center(buttons, width),
		"",
		styles.Center(trust, width),
		"",
	)
	return lines
}

func sectionHeading(first, second, subtitle string, width int) []string {
	return []string{
		styles.Center(styles.SectionAccentStyle.Render(first)+" "+styles.SectionTitleStyle.Render(second), width),
		styles.Center(styles.Rule(8), width),
		styles.Center(styles.SubtitleStyle.Render(subtitle), width),
		"",
	}
}

func productLines(d PageData, width int) []string {
	lines := sectionHeading("PREMIUM", "COLLECTION", "Curated selection of the hottest drops", width)

	switch {
	case d.State.Pending():
		lines = append(lines, cardIndent+RenderSpinner(d.SpinnerFrame)+styles.DimStyle.Render(" Loading products..."))
		lines = append(lines, skeletonCards(3, 2, width)...)
		return lines
	case d.State.Failed():
		return append(lines, cardIndent+styles.NoticeStyle.Render("Products are unavailable right now. Press r to reload."))
	}

	query := strings.TrimSpace(d.Query)
	if query != "" {
		lines = append(lines, cardIndent+styles.FilterPromptStyle.Render("/")+query+
			styles.DimStyle.Render(fmt.Sprintf("  %d of %d", d.Split.Len(), len(d.State.Items()))), "")
	}

	if d.Split.Len() == 0 {
		if query != "" {
			return append(lines, cardIndent+styles.DimStyle.Render(fmt.Sprintf("No products match %q.", query)))
		}
		return append(lines, cardIndent+styles.DimStyle.Render("No products yet. Check back soon."))
	}

	if len(d.Split.Priority) > 0 {
		label := d.PriorityLabel
		if label == "" {
			label = "FEATURED"
		}
		lines = append(lines, cardIndent+styles.SectionAccentStyle.Render(label), "")
		for _, item := range d.Split.Priority {
			lines = append(lines, itemCard(item, query, width)...)
		}
	}
	if len(d.Split.Remainder) > 0 {
		lines = append(lines, cardIndent+styles.SectionAccentStyle.Render("MORE DROPS"), "")
		for _, item := range d.Split.Remainder {
			lines = append(lines, itemCard(item, query, width)...)
		}
	}
	return lines
}

func itemCard(item domain.Item, query string, width int) []string {
	var badges []string
	if label := item.Category.Label(); label != "" {
		badges = append(badges, styles.BadgeStyle.Render(label))
	}
	if item.Featured {
		badges = append(badges, styles.FeaturedStyle.Render("FEATURED"))
	}
	badgeText := strings.Join(badges, " ")

	nameWidth := width - len(cardIndent) - lipgloss.Width(badgeText) - 2
	name := highlight(styles.Truncate(item.Name, max(nameWidth, 10)), query)
	first := cardIndent + styles.TextStyle.Bold(true).Render("▸ ") + name
	if badgeText != "" {
		first += "  " + badgeText
	}

	var details []string
	if item.HasPrice() {
		details = append(details, styles.PriceStyle.Render(item.Price))
	}
	if item.Image != "" {
		details = append(details, styles.DimStyle.Render("▣ photo"))
	}

	lines := []string{first}
	if len(details) > 0 {
		lines = append(lines, cardIndent+"  "+strings.Join(details, styles.DimStyle.Render(" · ")))
	}
	return append(lines, "")
}

func testimonialLines(d PageData, width int) []string {
	lines := sectionHeading("CUSTOMER", "LOVE", "See what our community is saying", width)

	switch {
	case d.State.Pending():
		lines = append(lines, cardIndent+RenderSpinner(d.SpinnerFrame)+styles.DimStyle.Render(" Loading reviews..."))
		lines = append(lines, skeletonCards(2, 3, width)...)
		return lines
	case d.State.Failed():
		return append(lines, cardIndent+styles.NoticeStyle.Render("Reviews are unavailable right now. Press r to reload."))
	}

	endorsements := d.State.Endorsements()
	if len(endorsements) == 0 {
		return append(lines, cardIndent+styles.DimStyle.Render("No reviews yet."))
	}
	for _, e := range endorsements {
		lines = append(lines, endorsementCard(e, width)...)
	}
	return lines
}

func endorsementCard(e domain.Endorsement, width int) []string {
	head := cardIndent + styles.AvatarStyle.Render(e.DisplayInitials()) + " " +
		styles.TextStyle.Bold(true).Render(e.AuthorName) + "  " + RenderStars(e.Rating)

	lines := []string{head}
	if e.ReviewText != "" {
		for _, l := range wrap(`"`+e.ReviewText+`"`, width-len(cardIndent)-4) {
			lines = append(lines, cardIndent+"    "+styles.QuoteStyle.Render(l))
		}
	}
	if e.ReviewImage != "" {
		lines = append(lines, cardIndent+"    "+styles.DimStyle.Render("▣ photo review"))
	}
	return append(lines, "")
}

func ctaLines(width int) []string {
	buttons := styles.PrimaryButtonStyle.Render("JOIN OUR TELEGRAM [t]") + "  " +
		styles.SecondaryButtonStyle.Render("FOLLOW ON INSTAGRAM [i]")

	lines := []string{
		"",
		styles.Center(styles.SectionTitleStyle.Render("READY TO"), width),
		styles.Center(styles.SectionAccentStyle.Render("UPGRADE?"), width),
		"",
	}
	lines = append(lines, centered(wrap("Join the channel for new drops, restocks and members-only deals.", width), width)...)
	lines = append(lines,
		"",
		styles.Center(buttons, width),
		"",
		styles.Center(styles.DimStyle.Render("© 2025 Thunder Services. Premium streetwear, authentic products."), width),
	)
	return lines
}

func skeletonCards(count, height, width int) []string {
	bar := styles.SkeletonStyle.Render(strings.Repeat("░", max(width/2, 10)))
	short := styles.SkeletonStyle.Render(strings.Repeat("░", max(width/4, 5)))
	var lines []string
	for i := 0; i < count; i++ {
		lines = append(lines, cardIndent+bar)
		for j := 0; j < height-1; j++ {
			lines = append(lines, cardIndent+"  "+short)
		}
		lines = append(lines, "")
	}
	return lines
}

// RenderStars renders a five star rating with rating stars filled
func RenderStars(rating int) string {
	filled := min(max(rating, 0), domain.MaxRating)
	return styles.StarStyle.Render(strings.Repeat("★", filled)) +
		styles.StarEmptyStyle.Render(strings.Repeat("☆", domain.MaxRating-filled))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// highlight marks the runes of s matched by the words of query
func highlight(s, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return s
	}
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		return s
	}

	marked := make(map[int]bool)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		for _, m := range fuzzy.Find(token, []string{lower}) {
			for _, idx := range m.MatchedIndexes {
				marked[idx] = true
			}
		}
	}
	if len(marked) == 0 {
		return s
	}

	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	rendered := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func centered(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styles.Center(l, width)
	}
	return out
}
