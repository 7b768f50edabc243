package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"ini-lite/internal/config"
	"ini-lite/internal/config/inistore"
	"ini-lite/internal/log"

	"github.com/spf13/cobra"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	ConfigPath string
	JSONOutput bool
	LogLevel   string
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a mock/test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		JSONOutput: app.JSON,
		Out:        app.Out,
		Err:        app.Err,
	}
}

// init resolves preferences in order of increasing precedence: defaults,
// the preferences file, environment variables, then command-line flags.
func (p *AppProvider) init() (*App, error) {
	paths, err := config.ResolvePaths(p.ConfigPath)
	if err != nil {
		return nil, err
	}

	store, err := inistore.New(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults(store)
	config.ApplyEnvOverrides(store)
	if p.JSONOutput {
		store.SetInMemory(config.KeyOutputJSON, "true")
	}
	if p.LogLevel != "" {
		store.SetInMemory(config.KeyLogLevel, p.LogLevel)
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	app := &App{
		ConfigStore: store,
		ConfigFile:  paths.ConfigFile,
		Out:         out,
		Err:         errOut,
	}
	jsonOut, _ := store.Get(config.KeyOutputJSON)
	app.JSON = strings.EqualFold(jsonOut, "true")
	app.Color, _ = store.Get(config.KeyOutputColor)

	level, _ := store.Get(config.KeyLogLevel)
	format, _ := store.Get(config.KeyLogFormat)
	app.Log, err = log.New(log.Config{
		Level:  level,
		Output: errOut,
		JSON:   format == "json",
		Color:  app.colorEnabled(errOut),
	})
	if err != nil {
		return nil, err
	}
	app.Log.Debug().Str("path", paths.ConfigFile).Msg("loaded preferences")
	return app, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(provider)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "inictl",
		Short: "Read and edit INI files without losing comments",
		Long: `inictl reads and edits INI configuration files.

Every edit changes only the lines it has to: comments, blank lines and the
order of keys and sections are kept. Entries can be disabled by commenting
them out and restored later.

Use "-" as the section argument for keys above the first [section] header.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.ConfigPath, "config", "", "Path to the inictl preferences file (default: $XDG_CONFIG_HOME/inictl/config.ini)")
	rootCmd.PersistentFlags().StringVar(&provider.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	// Register all commands
	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newEnableCmd(provider))
	rootCmd.AddCommand(newDisableCmd(provider))
	rootCmd.AddCommand(newCommentCmd(provider))
	rootCmd.AddCommand(newUncommentCmd(provider))
	rootCmd.AddCommand(newSectionsCmd(provider))
	rootCmd.AddCommand(newShowCmd(provider))
	rootCmd.AddCommand(newExportCmd(provider))
	rootCmd.AddCommand(newImportCmd(provider))
	rootCmd.AddCommand(newWatchCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
