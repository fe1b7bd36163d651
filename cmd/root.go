package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/snooze/internal/app"
	"github.com/zhubert/snooze/internal/config"
	"github.com/zhubert/snooze/internal/logger"
	"github.com/zhubert/snooze/internal/news/local"
	"github.com/zhubert/snooze/internal/session"
)

var (
	debugMode             bool
	quietMode             bool
	dataDir               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "snooze",
	Short: "Terminal client for a small link-sharing news site",
	Long: `Snooze is a TUI for reading and sharing links. Browse the story list,
keep favorites, and post your own stories. Accounts and stories live in a
local data directory (~/.snooze by default).`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for config, session and stories (default ~/.snooze)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("snooze %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("snooze %s\n", version)
}

// environment holds what every command needs
type environment struct {
	cfg     *config.Config
	backend *local.Backend
	store   *session.Store
}

// openEnvironment loads the config and opens the backend and session store
// from the data directory.
func openEnvironment() (*environment, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	backend, err := local.Open(cfg.BackendPath())
	if err != nil {
		return nil, fmt.Errorf("error opening stories: %w", err)
	}

	return &environment{
		cfg:     cfg,
		backend: backend,
		store:   session.NewStore(cfg.SessionPath()),
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	logger.WithComponent("main").Info("starting", "version", version, "dataDir", env.cfg.DataDir())

	// Create and run the app
	m := app.New(env.cfg, env.backend, env.store, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
