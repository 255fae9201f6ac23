package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/back1ash/IssueBell/internal/output"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
)

// renderBoard prints snap in the format selected by the output flags.
func renderBoard(w io.Writer, snap dashboard.Snapshot) error {
	if viper.GetBool(flagJSON) {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	}

	if csvPath := strings.TrimSpace(viper.GetString(flagCSV)); csvPath != "" {
		if err := writeCSV(snap.Groups, csvPath); err != nil {
			return err
		}
	}

	if viper.GetBool(flagMarkdown) {
		output.WriteBoardMarkdown(w, snap)
		return nil
	}

	if !isTerminalWriter(w) {
		tp := tableprinter.New(w, false, 120)
		output.WriteBoardTable(tp, snap)
		if err := tp.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	}

	terminal := term.FromEnv()
	renderColoredBoard(w, snap, terminal.IsColorEnabled())
	return nil
}

func writeCSV(groups []dashboard.Group, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	return output.WriteBoardCSV(file, groups)
}

func renderColoredBoard(w io.Writer, snap dashboard.Snapshot, colorEnabled bool) {
	if !colorEnabled {
		color.NoColor = true
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	titleColor.Fprintf(w, "🔔 Subscriptions (%s)\n", output.FormatBadge(snap.Badge))
	fmt.Fprintln(w)

	if snap.EmptyState {
		color.New(color.FgYellow).Fprintf(w, "🔕 %s\n", output.EmptyStateText)
		fmt.Fprintln(w)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Repository", "Labels", "IDs"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiWhiteColor},
		tablewriter.Colors{tablewriter.FgGreenColor},
		tablewriter.Colors{tablewriter.FgHiBlackColor},
	)

	for _, g := range snap.Groups {
		labels := make([]string, 0, len(g.Entries))
		ids := make([]string, 0, len(g.Entries))
		for _, sub := range g.Entries {
			labels = append(labels, sub.Label)
			ids = append(ids, fmt.Sprintf("#%d", sub.ID))
		}
		table.Append([]string{g.Repo, output.FormatChips(labels), strings.Join(ids, " ")})
	}

	table.Render()
	fmt.Fprintln(w)
}

// renderPending reports labels left over after a submit.
func renderPending(w io.Writer, snap dashboard.Snapshot) {
	if len(snap.Chips) == 0 {
		return
	}
	color.New(color.FgYellow).Fprintf(w, "Pending labels: %s\n", output.FormatChips(snap.Chips))
}
