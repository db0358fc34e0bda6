package launcher

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens URLs in an external browser or app
type Launcher struct {
	command string   // configured open command, empty for system default
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// start runs the prepared command without waiting for it
	start func(cmd *exec.Cmd) error
}

// New creates a Launcher. command may carry arguments ("firefox --new-tab").
func New(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	fields := strings.Fields(command)
	l := &Launcher{
		logger: logger,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	if len(fields) > 0 {
		l.command = fields[0]
		l.args = fields[1:]
	}
	return l
}

// Open launches target with the configured command or the system default
// handler. Only absolute http(s) and tg URLs are accepted.
func (l *Launcher) Open(target string) error {
	if err := validate(target); err != nil {
		return err
	}

	cmd := l.buildCommand(target)
	l.logger.Info("opening url", "command", cmd.Path, "args", cmd.Args[1:], "os", runtime.GOOS)

	if err := l.start(cmd); err != nil {
		l.logger.Error("failed to open url", "url", target, "error", err)
		return err
	}
	return nil
}

// buildCommand prepares the process that opens target
func (l *Launcher) buildCommand(target string) *exec.Cmd {
	if l.command != "" {
		args := append(append([]string{}, l.args...), target)
		return exec.Command(l.command, args...)
	}
	return defaultCommand(runtime.GOOS, target)
}

// defaultCommand returns the system default handler for goos
func defaultCommand(goos, target string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", target)
	}
}

func validate(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", target, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("invalid url %q: missing host", target)
		}
	case "tg":
	default:
		return fmt.Errorf("refusing to open %q: unsupported scheme %q", target, u.Scheme)
	}
	return nil
}
