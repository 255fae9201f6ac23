package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/back1ash/IssueBell/internal/dashboard"
)

// WriteBoardCSV writes one record per subscription.
func WriteBoardCSV(w io.Writer, groups []dashboard.Group) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "repo_full_name", "label", "created_at"}); err != nil {
		return err
	}

	for _, g := range groups {
		for _, sub := range g.Entries {
			created := ""
			if !sub.CreatedAt.IsZero() {
				created = FormatCreated(sub.CreatedAt.Time)
			}
			record := []string{
				strconv.FormatInt(sub.ID, 10),
				g.Repo,
				sub.Label,
				created,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
