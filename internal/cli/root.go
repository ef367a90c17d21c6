package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkc/taskquad/internal/config"
	"github.com/tkc/taskquad/internal/prompt"
	"github.com/tkc/taskquad/internal/session"
	"github.com/tkc/taskquad/internal/store"
)

var (
	cfg      *config.Config
	logger   *slog.Logger
	verbose  bool
	dataFile string
	noColor  bool
)

// rootCmd はルートコマンド
var rootCmd = &cobra.Command{
	Use:   "taskquad",
	Short: "Two-quadrant task tracker with due-date urgency",
	Long: `taskquad keeps tasks in two quadrants (Urgent and Important,
Not Urgent and Important) and always lists them most urgent first.

Urgency is derived from the due date every time tasks are shown:
  Critical  due in under 2 days (or overdue)
  High      due in under a week
  Medium    due in under 30 days
  Low       due in 30 days or more`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.LoadWithPrecedence()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// フラグは設定ファイル・環境変数より優先
		if cmd.Flags().Changed("file") {
			cfg.DataFile = dataFile
		}
		if cmd.Flags().Changed("no-color") {
			cfg.NoColor = noColor
		}
		logger.Debug("config loaded", "data_file", cfg.DataFile, "no_color", cfg.NoColor)
		return nil
	},
}

// Execute はCLIを実行する
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession は保存ファイルを読み込んでSessionを作成する
func openSession(cmd *cobra.Command) (*session.Session, error) {
	st := store.New(cfg.DataFile)
	board, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	logger.Debug("tasks loaded", "path", cfg.DataFile, "active", board.Len(), "completed", len(board.Completed))

	out := cmd.OutOrStdout()
	return session.New(board, st, out,
		session.WithPrompter(prompt.New(cmd.InOrStdin(), out)),
		session.WithColor(!cfg.NoColor),
		session.WithCelebrationURL(cfg.CelebrationURL),
		session.WithLogger(logger),
	), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "task file (default ~/.taskquad/tasks.json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(completedCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(githubCmd)
}
