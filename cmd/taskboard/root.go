package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/update"
)

type rootFlags struct {
	backend string
	path    string
	config  string
}

// session is an opened board plus the resources backing it.
type session struct {
	cfg    update.RuntimeConfig
	board  *board.Board
	logger *slog.Logger
	kv     storage.KV
	logOut io.Closer
}

func (s *session) Close() error {
	err := s.kv.Close()
	if s.logOut != nil {
		_ = s.logOut.Close()
	}
	return err
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Categorized task board",
		Long:          "A task board with Work, Personal, School and Others categories.\nWithout a subcommand it starts the interactive board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer s.Close()

			m := update.NewModelWithConfig(s.board, update.ExecDesktopNotifier{}, s.logger, s.cfg)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: sqlite, file or memory")
	root.PersistentFlags().StringVar(&flags.path, "path", "", "data file path")
	root.PersistentFlags().StringVar(&flags.config, "config", "taskboard.yaml", "YAML config file")

	root.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newDoneCmd(flags),
		newRemoveCmd(flags),
		newEditCmd(flags),
		newCategoriesCmd(),
	)
	return root
}

// loadConfig layers the YAML file, then TASKBOARD_* env, then flags.
func loadConfig(flags *rootFlags) (update.RuntimeConfig, error) {
	cfg, err := update.LoadConfigFile(update.DefaultRuntimeConfig(), flags.config)
	if err != nil {
		return cfg, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)
	if flags.backend != "" {
		cfg.Backend = storage.Backend(flags.backend)
	}
	if flags.path != "" {
		cfg.Path = flags.path
	}
	return cfg.Validate()
}

func openSession(ctx context.Context, flags *rootFlags) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	logger, logOut, err := openLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	kv, err := storage.Open(cfg.Backend, cfg.Path)
	if err != nil {
		closeQuietly(logOut)
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	st, err := store.New(kv, store.Options{
		Key:        cfg.StorageKey,
		TimeLayout: cfg.TimeLayout,
		Logger:     logger,
	})
	if err == nil {
		err = st.Load(ctx)
	}
	if err != nil {
		_ = kv.Close()
		closeQuietly(logOut)
		return nil, err
	}
	logger.Debug("board opened", "backend", cfg.Backend, "path", cfg.Path, "tasks", st.Len())
	return &session{cfg: cfg, board: board.New(st), logger: logger, kv: kv, logOut: logOut}, nil
}

func openLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
