package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/back1ash/IssueBell/internal/repoid"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels <repo>",
		Short: "List a repository's GitHub labels to use as presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, ok := repoid.Parse(args[0])
			if !ok {
				return fmt.Errorf("%q is not a GitHub repository reference", args[0])
			}
			owner, repo, err := repoid.Split(full)
			if err != nil {
				return err
			}

			gh, err := newGitHubClient()
			if err != nil {
				return err
			}
			labels, err := gh.ListLabels(cmd.Context(), owner, repo)
			if err != nil {
				return fmt.Errorf("failed to list labels for %s: %w", full, err)
			}

			if viper.GetBool(flagJSON) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(labels)
			}

			out := cmd.OutOrStdout()
			tp := tableprinter.New(out, isTerminalWriter(out), 120)
			tp.AddHeader([]string{"Name", "Color", "Description"})
			for _, l := range labels {
				tp.AddField(l.Name)
				tp.AddField("#" + l.Color)
				tp.AddField(l.Description)
				tp.EndRow()
			}
			if len(labels) == 0 {
				tp.AddField("(no labels)")
				tp.EndRow()
			}
			if err := tp.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}
			return nil
		},
	}
	return cmd
}
