// Package output renders the subscription board for terminals and files.
package output

import (
	"strconv"

	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
)

// EmptyStateText is printed in place of the list when there are no
// subscriptions.
const EmptyStateText = "No subscriptions yet. Add one to start receiving notifications."

// WriteBoardTable renders every subscription as a row, grouped by repo.
func WriteBoardTable(tp tableprinter.TablePrinter, snap dashboard.Snapshot) {
	tp.AddHeader([]string{"Repository", "ID", "Label", "Created"})

	for _, g := range snap.Groups {
		for _, sub := range g.Entries {
			addRow(tp,
				g.Repo,
				strconv.FormatInt(sub.ID, 10),
				sub.Label,
				FormatCreated(sub.CreatedAt.Time),
			)
		}
	}

	if snap.EmptyState {
		addRow(tp, "(no subscriptions)")
	}
}

func addRow(tp tableprinter.TablePrinter, fields ...string) {
	for _, field := range fields {
		tp.AddField(field)
	}
	tp.EndRow()
}
