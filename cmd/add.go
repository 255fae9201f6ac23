package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/back1ash/IssueBell/internal/repoid"
	"github.com/cli/go-gh/v2/pkg/prompter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
)

const (
	flagLabel       = "label"
	flagInteractive = "interactive"
	flagPick        = "pick"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <repo>",
		Short: "Subscribe to one or more labels on a repository",
		Long: heredoc.Doc(`
			Create one subscription per label. Labels are submitted one at a time; a label that
			fails stays pending and is reported, the others are created.

			The repository may be OWNER/REPO, https://github.com/OWNER/REPO[.git][/...], or
			git@github.com:OWNER/REPO[.git]. Anything else is sent as typed and left for the
			server to reject.
		`),
		Example: heredoc.Doc(`
			$ issuebell add octocat/Hello-World --label bug --label "good first issue"
			$ issuebell add https://github.com/cli/cli.git --label "help wanted,docs"
			$ issuebell add git@github.com:cli/cli.git --pick
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rawLabels, err := cmd.Flags().GetStringArray(flagLabel)
			if err != nil {
				return err
			}
			labels := trimmedValues(rawLabels)
			interactive, err := cmd.Flags().GetBool(flagInteractive)
			if err != nil {
				return err
			}
			pick, err := cmd.Flags().GetBool(flagPick)
			if err != nil {
				return err
			}

			client, err := newBackendClient()
			if err != nil {
				return err
			}

			terminal := term.FromEnv()
			page := newTerminalPage(cmd.ErrOrStderr(), terminal.IsTerminalOutput())
			ctrl := dashboard.New(client, page, nil)

			if err := ctrl.Load(ctx); err != nil {
				slog.Warn("could not load existing subscriptions", slog.String("error", err.Error()))
			}

			ctrl.SetRepoInput(args[0])
			if repoid.Validate(args[0]) == repoid.Invalid {
				slog.Warn("repository is not in OWNER/REPO form; submitting it as typed", slog.String("repo", args[0]))
			}

			for _, l := range labels {
				ctrl.Type(l)
				ctrl.Blur()
			}

			if pick || interactive {
				if !terminal.IsTerminalOutput() {
					return fmt.Errorf("--%s and --%s require an interactive terminal", flagPick, flagInteractive)
				}
				p := newPrompter()
				if pick {
					if err := pickPresets(ctx, p, ctrl, args[0]); err != nil {
						return err
					}
				}
				if interactive {
					if err := promptLabels(p, ctrl); err != nil {
						return err
					}
				}
			}

			result, err := ctrl.Submit(ctx)
			if errors.Is(err, dashboard.ErrNoLabels) {
				return errors.New(dashboard.NoLabelsMessage)
			}
			if err != nil {
				return err
			}
			for _, sub := range result.Created {
				slog.Info("subscribed", slog.Int64("id", sub.ID), slog.String("repo", sub.RepoFullName), slog.String("label", sub.Label))
			}

			snap := page.Snapshot()
			if err := renderBoard(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
			renderPending(cmd.ErrOrStderr(), snap)
			return result.Err()
		},
	}

	cmd.Flags().StringArrayP(flagLabel, "l", nil, "Label to subscribe to (repeatable; commas separate labels)")
	cmd.Flags().BoolP(flagInteractive, "i", false, "Prompt for labels until an empty line is entered")
	cmd.Flags().Bool(flagPick, false, "Pick labels from the repository's existing GitHub labels")

	return cmd
}

// promptLabels reads label text line by line. A lone "-" removes the last
// pending label and an empty line finishes entry.
func promptLabels(p *prompter.Prompter, ctrl *dashboard.Controller) error {
	for {
		prompt := "Label (empty to finish)"
		if pending := ctrl.Pending(); len(pending) > 0 {
			prompt = fmt.Sprintf("Label [%s] (empty to finish, - to drop last)", strings.Join(pending, ", "))
		}
		text, err := p.Input(prompt, "")
		if err != nil {
			return fmt.Errorf("failed to read label: %w", err)
		}
		switch strings.TrimSpace(text) {
		case "":
			return nil
		case "-":
			ctrl.SetLabelInput("")
			ctrl.KeyDown(dashboard.KeyBackspace)
		default:
			ctrl.Type(text)
			ctrl.KeyDown(dashboard.KeyEnter)
		}
	}
}

// pickPresets offers the repository's GitHub labels as presets.
func pickPresets(ctx context.Context, p *prompter.Prompter, ctrl *dashboard.Controller, raw string) error {
	full, ok := repoid.Parse(raw)
	if !ok {
		return fmt.Errorf("cannot look up labels for %q: not a GitHub repository reference", raw)
	}
	owner, repo, err := repoid.Split(full)
	if err != nil {
		return err
	}

	gh, err := newGitHubClient()
	if err != nil {
		return err
	}
	labels, err := gh.ListLabels(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to list labels for %s: %w", full, err)
	}
	if len(labels) == 0 {
		slog.Warn("repository has no labels to pick from", slog.String("repo", full))
		return nil
	}

	pending := ctrl.Pending()
	options := make([]string, 0, len(labels))
	var defaults []string
	for _, l := range labels {
		options = append(options, l.Name)
		if slices.Contains(pending, l.Name) {
			defaults = append(defaults, l.Name)
		}
	}
	selected, err := p.MultiSelect("Labels to subscribe to", defaults, options)
	if err != nil {
		return fmt.Errorf("label selection failed: %w", err)
	}
	for _, i := range selected {
		ctrl.PickPreset(options[i])
	}
	return nil
}
