package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tagsearch/internal/app"
	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/flags"
	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/mode"
	"github.com/zjrosen/tagsearch/internal/mode/shared"
	"github.com/zjrosen/tagsearch/internal/ui/markdown"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".tagsearch/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:     "tagsearch",
	Short:   "Save, share and open tagged searches",
	Long:    `A terminal user interface for keeping named search queries, opening their results in the browser and sharing them.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
	RunE:         runApp,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.tagsearch/config.yaml or ~/.config/tagsearch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also TAGSEARCH_DEBUG); enables the ctrl+x log overlay")
	rootCmd.PersistentFlags().String("store", "",
		"store backend: sqlite, bolt or toml")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading the list when another process changes the store")

	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return localConfigPath
	}
	return filepath.Join(home, ".config", "tagsearch", "config.yaml")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("store.backend", defaults.Store.Backend)
	viper.SetDefault("search.url", defaults.Search.URL)
	viper.SetDefault("search.share_subject", defaults.Search.ShareSubject)
	viper.SetDefault("search.share_message", defaults.Search.ShareMessage)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	viper.SetDefault("ui.show_preview", defaults.UI.ShowPreview)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.confirm_delete", defaults.UI.ConfirmDelete)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	viper.SetEnvPrefix("TAGSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .tagsearch/config.yaml (current directory)
		// 2. ~/.config/tagsearch/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(filepath.Dir(userConfigPath()))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := userConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = defaults
	_ = viper.Unmarshal(&cfg)
}

// configPath is the file `config set` edits and the TUI reports.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return userConfigPath()
}

func setupLogging() error {
	if logCleanup != nil {
		return nil
	}
	if os.Getenv("TAGSEARCH_DEBUG") == "" && !debugFlag {
		return nil
	}
	logPath := os.Getenv("TAGSEARCH_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "tagsearch starting", "version", version, "config", configPath())
	return nil
}

func runApp(cmd *cobra.Command, args []string) error {
	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(context.Background()) }()

	services := mode.Services{
		Registry:   sess.reg,
		Config:     &cfg,
		ConfigPath: configPath(),
		Clipboard:  shared.SystemClipboard{},
		Opener:     shared.SystemOpener{},
	}
	if cfg.UI.ShowPreview || sess.flags.Enabled(flags.FlagPreview) {
		cfg.UI.ShowPreview = true
		services.Previewer = markdown.NewPreviewer(cfg.UI.MarkdownStyle, false)
	}
	if !shared.ClipboardAvailable() {
		log.Warn(log.CatUI, "No clipboard available; share will fail")
	}

	storePath := sess.opened.Path
	if cfg.AutoRefresh && !sess.opened.Watchable() {
		log.Info(log.CatWatcher, "Auto-refresh disabled: store is locked while open", "backend", sess.opened.Backend)
		storePath = ""
	}

	zone.NewGlobal()
	model := app.New(services, app.Options{
		StorePath: storePath,
		DebugMode: logCleanup != nil,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
