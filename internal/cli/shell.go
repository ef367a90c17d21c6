package cli

import (
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu for adding, removing and updating tasks",
	Long: `Start an interactive menu.

Choices are made by number; an empty answer cancels the current step.
Tasks are saved after every change and again on exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		return s.Run()
	},
}
