package tui

import "github.com/thunderx/thunder/internal/service"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg carries the settled catalog load of one page session
type CatalogLoadedMsg struct {
	SessionID string
	Result    service.LoadResult
}

// EngagedMsg signals that a Telegram activation opened the channel
type EngagedMsg struct {
	Target string
}

// LinkOpenedMsg signals that a secondary link was opened
type LinkOpenedMsg struct {
	Target string
}

// TickMsg is sent periodically to animate the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
