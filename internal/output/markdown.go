package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/back1ash/IssueBell/internal/dashboard"
)

// WriteBoardMarkdown renders the board as markdown, one section per repo.
func WriteBoardMarkdown(w io.Writer, snap dashboard.Snapshot) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "# Subscriptions (%d)\n", snap.Badge)
	fmt.Fprintln(w)

	if snap.EmptyState {
		fmt.Fprintf(w, "_%s_\n", EmptyStateText)
		return
	}

	for _, g := range snap.Groups {
		fmt.Fprintf(w, "## [%s](%s)\n\n", g.Repo, RepoURL(g.Repo))
		labels := make([]string, 0, len(g.Entries))
		for _, sub := range g.Entries {
			labels = append(labels, fmt.Sprintf("`%s` (#%d)", sub.Label, sub.ID))
		}
		fmt.Fprintln(w, strings.Join(labels, " "))
		fmt.Fprintln(w)
	}
}
