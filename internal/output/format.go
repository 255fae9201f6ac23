package output

import (
	"fmt"
	"strings"
	"time"
)

// FormatChips renders labels as bracketed chips.
func FormatChips(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, "["+l+"]")
	}
	return strings.Join(parts, " ")
}

// FormatBadge formats the subscription counter.
func FormatBadge(n int) string {
	if n == 1 {
		return "1 subscription"
	}
	return fmt.Sprintf("%d subscriptions", n)
}

// FormatCreated formats a creation timestamp for display
func FormatCreated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// RepoURL returns the GitHub page for an OWNER/REPO identifier.
func RepoURL(repo string) string {
	return "https://github.com/" + repo
}
