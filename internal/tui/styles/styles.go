package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ThunderYellow = lipgloss.Color("#FACC15")
	ThunderRed    = lipgloss.Color("#DC2626")
	SlateDark     = lipgloss.Color("#111827")
	SlateLight    = lipgloss.Color("#374151")
	DimGray       = lipgloss.Color("#6B7280")
	LightGray     = lipgloss.Color("#9CA3AF")
	White         = lipgloss.Color("#F9FAFB")
	Green         = lipgloss.Color("#10B981")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ThunderRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	TextStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Section styles
var (
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true)

	SectionAccentStyle = lipgloss.NewStyle().
				Foreground(ThunderYellow).
				Bold(true)

	RuleStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ThunderRed).
			Italic(true)

	SkeletonStyle = lipgloss.NewStyle().
			Foreground(SlateLight)
)

// Card element styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(ThunderYellow).
			Bold(true).
			Padding(0, 1)

	FeaturedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(ThunderRed).
			Bold(true).
			Padding(0, 1)

	PriceStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow).
			Bold(true)

	AvatarStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(ThunderYellow).
			Bold(true).
			Padding(0, 1)

	StarStyle      = lipgloss.NewStyle().Foreground(ThunderYellow)
	StarEmptyStyle = lipgloss.NewStyle().Foreground(SlateLight)

	QuoteStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)
)

// Call-to-action styles
var (
	PrimaryButtonStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(ThunderYellow).
				Bold(true).
				Padding(0, 2)

	SecondaryButtonStyle = lipgloss.NewStyle().
				Foreground(ThunderYellow).
				Background(SlateDark).
				Bold(true).
				Padding(0, 2)
)

// Chrome styles
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ThunderYellow).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(ThunderYellow).
				Underline(true).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ThunderYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Truncate shortens s to width cells, adding an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Center pads s on the left so it sits in the middle of width cells
func Center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Rule returns a horizontal accent line of the given width
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return RuleStyle.Render(strings.Repeat("━", width))
}
