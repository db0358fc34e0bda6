package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thunderx/thunder/internal/page"
	"github.com/thunderx/thunder/internal/service"
)

// Command factories for async operations

// LoadCatalogCmd runs the catalog load of a page session. The session's
// context is cancelled on unmount, so no deadline is set here.
func LoadCatalogCmd(s *page.Session) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{SessionID: s.ID(), Result: s.Load()}
	}
}

// EngageCmd reports a Telegram click and then opens the channel
func EngageCmd(b *service.Beacon) tea.Cmd {
	return func() tea.Msg {
		if err := b.Engage(context.Background()); err != nil {
			return ErrMsg{Err: err, Context: "opening Telegram"}
		}
		return EngagedMsg{Target: b.Target()}
	}
}

// OpenLinkCmd opens a secondary link without reporting it
func OpenLinkCmd(o Opener, url string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := service.Navigate(o, url, logger); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return LinkOpenedMsg{Target: url}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
