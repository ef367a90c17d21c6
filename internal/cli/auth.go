package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkc/taskquad/internal/config"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Export tasks to a GitHub Project",
}

var githubLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a GitHub token for exporting",
	Long: `Store a GitHub personal access token.

For Classic tokens (https://github.com/settings/tokens):
  Required scopes:
    - project (Full control of projects)
    - read:org (for organization projects)

For Fine-grained tokens (https://github.com/settings/tokens?type=beta):
  Account permissions:
    - Projects: Read and write

The token can also be provided with TASKQUAD_GITHUB_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Enter a GitHub Personal Access Token")
		fmt.Fprintln(out, "(required scopes: project, read:org)")
		fmt.Fprintln(out)
		fmt.Fprint(out, "Token: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		token, err := reader.ReadString('\n')
		if err != nil && token == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(token)

		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		// 環境変数の値を書き込まないよう設定ファイルだけを読み直す
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.GitHubToken = token
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintln(out, "✓ Token saved successfully")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next step: taskquad github project select <owner> <number>")
		return nil
	},
}

var githubStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show GitHub authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.GitHubToken == "" {
			fmt.Fprintln(out, "✗ Not logged in")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run: taskquad github login")
			return nil
		}

		fmt.Fprintf(out, "✓ Logged in (token: %s)\n", maskToken(cfg.GitHubToken))
		if cfg.ProjectOwner != "" {
			fmt.Fprintf(out, "  Project: %s #%d\n", cfg.ProjectOwner, cfg.ProjectNumber)
		}
		return nil
	},
}

var githubLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.GitHubToken = ""
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out successfully")
		return nil
	},
}

// maskToken はトークンの一部だけを表示する
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func init() {
	githubCmd.AddCommand(githubLoginCmd)
	githubCmd.AddCommand(githubStatusCmd)
	githubCmd.AddCommand(githubLogoutCmd)
	githubCmd.AddCommand(projectCmd)
	githubCmd.AddCommand(exportCmd)
}
