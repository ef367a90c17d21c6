package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tkc/taskquad/internal/config"
	"github.com/tkc/taskquad/internal/github"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Choose the GitHub Project to export to",
}

var projectListCmd = &cobra.Command{
	Use:   "list [owner]",
	Short: "List projects for a user or organization",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GitHubToken == "" {
			return fmt.Errorf("not logged in. Run: taskquad github login")
		}

		var owner string
		if len(args) > 0 {
			owner = args[0]
		} else if cfg.ProjectOwner != "" {
			owner = cfg.ProjectOwner
		} else {
			return fmt.Errorf("owner is required. Usage: taskquad github project list <owner>")
		}
		client := github.NewClient(cfg.GitHubToken, owner)

		projects, err := client.GetProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get projects: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintf(out, "No projects found for %s\n", owner)
			return nil
		}

		fmt.Fprintf(out, "Projects for %s:\n\n", owner)
		for _, p := range projects {
			fmt.Fprintf(out, "  #%-4d %s\n", p.Number, p.Title)
			fmt.Fprintf(out, "        %s\n\n", p.URL)
		}

		fmt.Fprintln(out, "To select a project, run:")
		fmt.Fprintf(out, "  taskquad github project select %s <number>\n", owner)
		return nil
	},
}

var projectSelectCmd = &cobra.Command{
	Use:   "select <owner> <number>",
	Short: "Select the project to export to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GitHubToken == "" {
			return fmt.Errorf("not logged in. Run: taskquad github login")
		}

		owner := args[0]
		number, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid project number: %s", args[1])
		}

		// プロジェクトが存在するか確認
		client := github.NewClient(cfg.GitHubToken, owner)
		project, err := client.GetProjectByNumber(cmd.Context(), number)
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}

		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.ProjectOwner = owner
		fileCfg.ProjectNumber = number
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Selected project: %s (#%d)\n", project.Title, project.Number)
		fmt.Fprintf(out, "  URL: %s\n", project.URL)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next step: taskquad github export")
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected project and the fields taskquad fills",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateGitHub(); err != nil {
			return err
		}

		client := github.NewClient(cfg.GitHubToken, cfg.ProjectOwner)
		project, err := client.GetProjectByNumber(cmd.Context(), cfg.ProjectNumber)
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}

		exporter := github.NewExporter(client, cfg.ProjectNumber)
		if err := exporter.Initialize(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current Project:\n")
		fmt.Fprintf(out, "  Title:  %s\n", project.Title)
		fmt.Fprintf(out, "  Number: #%d\n", project.Number)
		fmt.Fprintf(out, "  Owner:  %s\n", cfg.ProjectOwner)
		fmt.Fprintf(out, "  URL:    %s\n", project.URL)
		fmt.Fprintln(out)

		printFields(cmd, exporter.Fields())
		return nil
	},
}

func printFields(cmd *cobra.Command, fields map[string]github.ProjectField) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Fields filled on export:")
	for _, name := range []string{github.FieldUrgency, github.FieldDue, github.FieldCompletion} {
		mark := "✗ missing"
		if _, ok := fields[name]; ok {
			mark = "✓"
		}
		fmt.Fprintf(out, "  • %-10s %s\n", name, mark)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "All project fields:")
	for _, name := range names {
		field := fields[name]
		if len(field.Options) > 0 {
			fmt.Fprintf(out, "  • %s (Single Select)\n", name)
			for _, opt := range field.Options {
				fmt.Fprintf(out, "      - %s\n", opt.Name)
			}
		} else {
			fmt.Fprintf(out, "  • %s\n", name)
		}
	}
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSelectCmd)
	projectCmd.AddCommand(projectShowCmd)
}
