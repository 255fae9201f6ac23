package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/back1ash/IssueBell/internal/githubapi"
	"github.com/back1ash/IssueBell/internal/repoid"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagRemote = "remote"

type checkResult struct {
	Input      string                `json:"input"`
	Repo       string                `json:"repo,omitempty"`
	Validity   repoid.Validity       `json:"validity"`
	Repository *githubapi.Repository `json:"repository,omitempty"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <repo>",
		Short: "Validate and normalize a repository reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := cmd.Flags().GetBool(flagRemote)
			if err != nil {
				return err
			}

			result := checkResult{Input: args[0], Validity: repoid.Validate(args[0])}
			if full, ok := repoid.Parse(args[0]); ok {
				result.Repo = full
			}

			if remote && result.Repo != "" {
				owner, repo, err := repoid.Split(result.Repo)
				if err != nil {
					return err
				}
				gh, err := newGitHubClient()
				if err != nil {
					return err
				}
				found, err := gh.GetRepository(cmd.Context(), owner, repo)
				if err != nil {
					return fmt.Errorf("repository %s could not be verified: %w", result.Repo, err)
				}
				result.Repository = &found
			}

			if viper.GetBool(flagJSON) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result); err != nil {
					return err
				}
			} else {
				printCheckResult(cmd.OutOrStdout(), result)
			}

			if result.Validity != repoid.Valid {
				return fmt.Errorf("%q is not a GitHub repository reference", args[0])
			}
			return nil
		},
	}

	cmd.Flags().Bool(flagRemote, false, "Verify that the repository exists on GitHub")
	return cmd
}

func printCheckResult(w io.Writer, result checkResult) {
	switch result.Validity {
	case repoid.Valid:
		color.New(color.FgGreen).Fprintf(w, "✓ %s\n", result.Repo)
	case repoid.Invalid:
		color.New(color.FgRed).Fprintf(w, "✗ %s\n", result.Input)
	default:
		fmt.Fprintln(w, "(empty)")
	}

	if r := result.Repository; r != nil {
		fmt.Fprintf(w, "  GitHub: %s\n", r.FullName)
		if !r.HasIssues {
			color.New(color.FgYellow).Fprintln(w, "  Issues are disabled on this repository")
		}
		if r.Archived {
			color.New(color.FgYellow).Fprintln(w, "  Repository is archived")
		}
	}
}
