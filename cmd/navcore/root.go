package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vidyasagar/navcore/internal/app"
	"github.com/vidyasagar/navcore/internal/browser"
	"github.com/vidyasagar/navcore/internal/config"
	"github.com/vidyasagar/navcore/internal/logging"
	"github.com/vidyasagar/navcore/internal/theme"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("navcore needs a terminal; use 'navcore resolve' or 'navcore probe' in scripts")

// isTerminal reports whether the shell can take over stdout.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "navcore [address]",
	Short: "navcore is a terminal browser shell with back, forward, home and bookmarks",
	Long: `navcore opens an interactive shell around a navigation core: session history
with back/forward, a home address and named bookmarks. Addresses may be absolute,
relative to the current page, or a bare host.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default: $XDG_CONFIG_HOME/navcore/config.json)")
	rootCmd.PersistentFlags().String("theme", "", fmt.Sprintf("Color theme (%s)", strings.Join(theme.List(), ", ")))
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

func runShell(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNotTerminal
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !theme.Set(cfg.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(theme.List(), ", "))
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closer, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Debug("config loaded", "path", cfg.Path(), "theme", cfg.Theme)

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	start := cfg.StartPage
	if len(args) > 0 {
		start = args[0]
	}

	m := app.New(app.Options{
		Loader:    loader,
		Logger:    logger,
		StartPage: start,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if name, _ := cmd.Flags().GetString("theme"); name != "" {
		cfg.Theme = name
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoader(cfg *config.Config) (*browser.Loader, error) {
	opts := []browser.FetcherOption{browser.WithTimeout(cfg.ProbeTimeout)}
	if cfg.UserAgent != "" {
		opts = append(opts, browser.WithUserAgent(cfg.UserAgent))
	}
	return browser.NewLoader(browser.NewFetcher(opts...), cfg.PageCacheSize)
}
