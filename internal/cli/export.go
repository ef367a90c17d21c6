package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkc/taskquad/internal/domain"
	"github.com/tkc/taskquad/internal/github"
)

var (
	exportCategory string
	exportDryRun   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Create a draft issue in the selected project for each active task",
	Long: `Create one draft issue per active task in the selected GitHub Project.

Titles look like "[Critical] file taxes". If the project has fields named
Urgency (single select), Due (date) or Completion (number) they are filled too.

Examples:
  taskquad github export                      # all active tasks
  taskquad github export --category urgent    # one quadrant
  taskquad github export --dry-run            # preview only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := domain.Categories
		if exportCategory != "" {
			c, err := domain.ParseCategory(exportCategory)
			if err != nil {
				return err
			}
			categories = []domain.Category{c}
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.Refresh()

		var tasks []*domain.Task
		for _, c := range categories {
			tasks = append(tasks, s.Board().Tasks(c)...)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks to export")
			return nil
		}

		if exportDryRun {
			fmt.Fprintln(out, "[DRY RUN] Would create:")
			for _, t := range tasks {
				fmt.Fprintf(out, "  %s\n", github.DraftTitle(t))
			}
			return nil
		}

		if err := cfg.ValidateGitHub(); err != nil {
			return err
		}

		client := github.NewClient(cfg.GitHubToken, cfg.ProjectOwner)
		exporter := github.NewExporter(client, cfg.ProjectNumber)
		if err := exporter.Initialize(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		fmt.Fprintf(out, "📤 Exporting %d task(s) to %s #%d...\n", len(tasks), cfg.ProjectOwner, cfg.ProjectNumber)
		items, err := exporter.Export(cmd.Context(), tasks)
		for _, item := range items {
			fmt.Fprintf(out, "   ✓ %s\n", github.DraftTitle(item.Task))
		}
		if err != nil {
			return err
		}
		logger.Debug("export finished", "items", len(items))

		fmt.Fprintln(out)
		fmt.Fprintln(out, "🎉 Done!")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "only export one quadrant (urgent, not-urgent)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "preview without creating items")
}
