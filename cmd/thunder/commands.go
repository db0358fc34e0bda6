package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thunderx/thunder/internal/api"
	"github.com/thunderx/thunder/internal/catalog"
	"github.com/thunderx/thunder/internal/config"
	"github.com/thunderx/thunder/internal/domain"
	"github.com/thunderx/thunder/internal/launcher"
	"github.com/thunderx/thunder/internal/log"
	"github.com/thunderx/thunder/internal/page"
	"github.com/thunderx/thunder/internal/service"
	"github.com/thunderx/thunder/internal/tui"
)

const (
	plainWidth   = 80
	checkTimeout = 10 * time.Second
)

var (
	configFile string
	plain      bool
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "thunder",
		Short:         "Thunder Services storefront in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/thunder/config.yaml)")
	root.Flags().BoolVar(&plain, "plain", false, "print the page once instead of starting the interactive view")

	root.AddCommand(versionCmd(), checkCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "thunder %s\n", Version)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the Thunder API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()
			return checkHealth(ctx, newClient(cfg, logger), cfg.API.BaseURL, cmd.OutOrStdout())
		},
	}
}

// checkHealth probes the API and prints its status line
func checkHealth(ctx context.Context, hc domain.HealthChecker, baseURL string, w io.Writer) error {
	msg, err := hc.Health(ctx)
	if err != nil {
		return fmt.Errorf("api at %s: %w", baseURL, err)
	}
	fmt.Fprintf(w, "✓ %s: %s\n", baseURL, msg)
	return nil
}

// setup loads the configuration and installs the file logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func userAgent(cfg *config.Config) string {
	if cfg.API.UserAgent != "" {
		return cfg.API.UserAgent
	}
	return fmt.Sprintf("Thunder/%s (%s)", Version, runtime.GOOS)
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, userAgent(cfg), cfg.API.Timeout, logger)
}

func run() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	logger.Info("starting thunder", "version", Version, "api", cfg.API.BaseURL)

	client := newClient(cfg, logger)
	loader := service.NewCatalogLoader(client, logger)
	controller := page.NewController(
		loader,
		catalog.InCategories(cfg.Catalog.PriorityCategories...),
		cfg.Reveal.Threshold,
		logger,
	)
	defer controller.Close()

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlain(controller, cfg)
	}

	opener := launcher.New(cfg.Channel.OpenCommand, logger)
	beacon := service.NewBeacon(client, opener, cfg.Channel.TelegramURL, domain.Click{
		UserAgent: userAgent(cfg),
		Referrer:  cfg.Channel.Referrer,
	}, logger)

	model := tui.NewModel(tui.Options{
		Controller:    controller,
		Beacon:        beacon,
		Opener:        opener,
		InstagramURL:  cfg.Channel.InstagramURL,
		PriorityLabel: cfg.Catalog.PriorityLabel,
		Logger:        logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPlain loads the catalog once and prints the whole page
func runPlain(controller *page.Controller, cfg *config.Config) error {
	s := controller.Mount()
	s.Apply(s.Load())

	width := plainWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Print(tui.RenderPlain(s, cfg.Catalog.PriorityLabel, width))
	return nil
}
