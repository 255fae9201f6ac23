package cmd

import (
	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show your subscriptions grouped by repository",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newBackendClient()
			if err != nil {
				return err
			}

			board := dashboard.NewBoard()
			ctrl := dashboard.New(client, board, nil)
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			return renderBoard(cmd.OutOrStdout(), board.Snapshot())
		},
	}
	return cmd
}
