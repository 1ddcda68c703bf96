package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/quire/internal/config"
	"github.com/MikeBiancalana/quire/internal/engine"
	"github.com/MikeBiancalana/quire/internal/logger"
	"github.com/MikeBiancalana/quire/internal/notes"
	"github.com/MikeBiancalana/quire/internal/perf"
	"github.com/MikeBiancalana/quire/internal/sync"
	"github.com/MikeBiancalana/quire/internal/telemetry"
	"github.com/MikeBiancalana/quire/internal/tui"
)

// slowCommand is the latency above which a layout command counts as slow.
const slowCommand = 5 * time.Millisecond

var (
	configFlag string
	quietFlag  bool

	settings = config.DefaultSettings()
)

// RootCmd is the root command for the CLI
var RootCmd = &cobra.Command{
	Use:   "qr [note]",
	Short: "Quire - a tiled workspace for notes and conversations",
	Long: `A terminal workspace that tiles notes and conversations into split panes.

Run without arguments to open the workspace. A note slug or id opens that
note in the first pane.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runWorkspace,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.quire/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress informational output")

	RootCmd.AddCommand(GetNotesCommand())
	RootCmd.AddCommand(GetLayoutCommand())
}

// loadSettings reads the settings file and points the logger at stderr
// with the configured level, unless the environment overrides it.
func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings(configFlag)
	if err != nil {
		return err
	}
	settings = s
	return logger.InitializeWithConfig(logConfig(false))
}

func logConfig(tuiMode bool) logger.Config {
	cfg := logger.ConfigFromEnv()
	if cfg.Level == "" {
		cfg.Level = settings.Log.Level
	}
	if cfg.Format == "" {
		cfg.Format = settings.Log.Format
	}
	cfg.TUIMode = tuiMode
	return cfg
}

// initNotesService opens the index and the notes directory. The returned
// func closes the database.
func initNotesService() (*notes.Service, func(), error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database path: %w", err)
	}
	notesDir, err := config.NotesDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get notes directory: %w", err)
	}

	db, err := notes.OpenDatabase(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc := notes.NewService(notes.NewRepository(db), notes.NewFileStore(notesDir))
	return svc, func() { _ = db.Close() }, nil
}

// runWorkspace launches the TUI.
func runWorkspace(cmd *cobra.Command, args []string) error {
	// stderr belongs to the terminal UI from here on
	if err := logger.InitializeWithConfig(logConfig(true)); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logger.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	svc, closeDB, err := initNotesService()
	if err != nil {
		return err
	}
	defer closeDB()

	initial := ""
	if len(args) > 0 {
		c, err := svc.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", args[0], err)
		}
		initial = c.Note.ID
	}

	opts := []tui.Option{tui.WithNotes(svc), tui.WithContext(ctx)}
	watcher, err := sync.NewWatcher(svc, svc.Files().Root(), sync.DefaultDebounce)
	if err != nil {
		logger.Warn("live reload disabled", "error", err)
	} else {
		defer watcher.Stop()
		opts = append(opts, tui.WithWatcher(watcher))
	}

	stats := perf.NewRegistry(slowCommand)
	store := engine.NewStore(engine.New(initial),
		engine.WithStats(stats),
		engine.WithValidation(logger.GetLevel() <= slog.LevelDebug),
	)

	model, err := tui.NewModel(store, settings, opts...)
	if err != nil {
		return err
	}

	logger.Info("workspace started", "notes_dir", svc.Files().Root(), "initial", initial)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	stats.LogStats(logger.GetLogger(), slog.LevelInfo)
	return err
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
