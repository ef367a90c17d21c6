package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkc/taskquad/internal/domain"
)

var (
	addDue          string
	addHours        float64
	updateCompleted int
	updateHours     float64
)

const categoryHelp = `<category> is "urgent" or "not-urgent" (the full quadrant name also works).
<ref> is the task number shown by "taskquad list", an ID prefix, or the exact description.`

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active tasks, most urgent first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.List()
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <category> <ref>",
	Short: "Show task details",
	Long:  categoryHelp,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := domain.ParseCategory(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		return s.Show(c, args[1])
	},
}

var completedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.ListCompleted()
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <category> <description>",
	Short: "Add a task",
	Long: categoryHelp + `

Examples:
  taskquad add urgent "file taxes" --due 2024-04-15 --hours 3
  taskquad add not-urgent read chapter 4 --due 2024-05-01`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := domain.ParseCategory(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		task, err := s.Add(c, domain.NewTaskInput{
			Description:    strings.Join(args[1:], " "),
			DueDate:        addDue,
			HoursRemaining: addHours,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Task added to %s: %s (%s, id %s)\n", c, task.Description, task.Urgency, task.ShortID())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <category> <ref>",
	Aliases: []string{"rm"},
	Short:   "Remove a task",
	Long:    categoryHelp,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := domain.ParseCategory(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		task, err := s.Remove(c, args[1])
		if errors.Is(err, domain.ErrEmptyCategory) {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks: there are currently no tasks in this category.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Task removed from %s: %s\n", c, task.Description)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <category> <ref>",
	Short: "Update completion and hours remaining",
	Long: categoryHelp + `

A task that reaches 100% moves to the completed list.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := domain.ParseCategory(args[0])
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		res, err := s.Update(c, args[1], domain.ProgressInput{
			Completion:     updateCompleted,
			HoursRemaining: updateHours,
		})
		if errors.Is(err, domain.ErrEmptyCategory) {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks: there are currently no tasks in this category.")
			return nil
		}
		if err != nil {
			return err
		}

		if res.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "🎉 Task completed: %s\n", res.Task.Description)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task progress updated for %s: %s (%d%%)\n", c, res.Task.Description, res.Task.Completion)
		}
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Pick one random task from each quadrant for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		s.Today()
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().Float64Var(&addHours, "hours", 0, "estimated hours remaining")
	_ = addCmd.MarkFlagRequired("due")

	updateCmd.Flags().IntVarP(&updateCompleted, "completion", "c", 0, "completion percentage (0-100)")
	updateCmd.Flags().Float64Var(&updateHours, "hours", 0, "estimated hours remaining")
	_ = updateCmd.MarkFlagRequired("completion")
	_ = updateCmd.MarkFlagRequired("hours")
}
