package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const flagYes = "yes"

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove subscriptions by ID",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			yes, err := cmd.Flags().GetBool(flagYes)
			if err != nil {
				return err
			}

			terminal := term.FromEnv()
			var confirm dashboard.Confirmer = dashboard.AlwaysConfirm
			if !yes {
				if !terminal.IsTerminalOutput() {
					return fmt.Errorf("--%s is required when not running interactively", flagYes)
				}
				confirm = promptConfirmer{p: newPrompter()}
			}

			client, err := newBackendClient()
			if err != nil {
				return err
			}
			page := newTerminalPage(cmd.ErrOrStderr(), terminal.IsTerminalOutput())
			ctrl := dashboard.New(client, page, confirm)

			if err := ctrl.Load(ctx); err != nil {
				slog.Warn("could not load existing subscriptions", slog.String("error", err.Error()))
			}

			if len(ids) == 1 {
				if _, err := ctrl.DeleteSub(ctx, ids[0]); err != nil {
					return err
				}
			} else {
				approved, err := confirmEach(confirm, page.Board, ids)
				if err != nil {
					return err
				}
				if err := removeAll(ctx, ctrl, approved, viper.GetInt(flagThreads)); err != nil {
					return err
				}
			}

			return renderBoard(cmd.OutOrStdout(), page.Snapshot())
		},
	}

	cmd.Flags().BoolP(flagYes, "y", false, "Skip the confirmation prompt")
	return cmd
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	seen := make(map[int64]bool, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid subscription ID %q", arg)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// confirmEach asks about every id up front so removals can then run in
// parallel without interleaving prompts.
func confirmEach(confirm dashboard.Confirmer, board *dashboard.Board, ids []int64) ([]int64, error) {
	descriptions := describeEntries(board.Snapshot())
	approved := make([]int64, 0, len(ids))
	for _, id := range ids {
		prompt := fmt.Sprintf("%s #%d", dashboard.DeletePrompt, id)
		if desc, ok := descriptions[id]; ok {
			prompt = fmt.Sprintf("%s #%d %s", dashboard.DeletePrompt, id, desc)
		}
		ok, err := confirm.Confirm(prompt)
		if err != nil {
			return nil, err
		}
		if ok {
			approved = append(approved, id)
		}
	}
	return approved, nil
}

func describeEntries(snap dashboard.Snapshot) map[int64]string {
	out := make(map[int64]string)
	for _, g := range snap.Groups {
		for _, sub := range g.Entries {
			out[sub.ID] = fmt.Sprintf("(%s [%s])", g.Repo, sub.Label)
		}
	}
	return out
}

// removeAll deletes ids with at most threads requests in flight. Every id
// is attempted; failures are joined into the returned error.
func removeAll(ctx context.Context, ctrl *dashboard.Controller, ids []int64, threads int) error {
	if threads <= 0 {
		threads = 1
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	sem := semaphore.NewWeighted(int64(threads))
	var g errgroup.Group

	for _, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			if err := ctrl.Remove(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			slog.Debug("removed subscription", slog.Int64("id", id))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
