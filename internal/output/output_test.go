package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/back1ash/IssueBell/internal/api"
	"github.com/back1ash/IssueBell/internal/dashboard"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
)

func sampleSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Badge: 3,
		Groups: []dashboard.Group{
			{Repo: "octocat/hello-world", Entries: []api.Subscription{
				{ID: 1, RepoFullName: "octocat/hello-world", Label: "bug", CreatedAt: api.Timestamp{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}},
				{ID: 2, RepoFullName: "octocat/hello-world", Label: "good.first.issue"},
			}},
			{Repo: "cli/cli", Entries: []api.Subscription{
				{ID: 3, RepoFullName: "cli/cli", Label: "help wanted"},
			}},
		},
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatChips(nil); got != "-" {
		t.Fatalf("expected '-' for no chips, got %s", got)
	}
	if got := FormatChips([]string{"bug", "docs"}); got != "[bug] [docs]" {
		t.Fatalf("unexpected chips: %s", got)
	}
	if got := FormatBadge(1); got != "1 subscription" {
		t.Fatalf("unexpected badge: %s", got)
	}
	if got := FormatBadge(0); got != "0 subscriptions" {
		t.Fatalf("unexpected badge: %s", got)
	}
	if got := FormatCreated(time.Time{}); got != "-" {
		t.Fatalf("unexpected created: %s", got)
	}
	if got := RepoURL("octocat/hello-world"); got != "https://github.com/octocat/hello-world" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestWriteBoardTable(t *testing.T) {
	buf := &bytes.Buffer{}
	tp := tableprinter.New(buf, false, 120)
	WriteBoardTable(tp, sampleSnapshot())
	if err := tp.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"octocat/hello-world", "good.first.issue", "cli/cli", "2025-01-02T03:04:05Z"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table output to contain %q, got %s", want, out)
		}
	}
}

func TestWriteBoardTableEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	tp := tableprinter.New(buf, false, 120)
	WriteBoardTable(tp, dashboard.Snapshot{EmptyState: true})
	if err := tp.Render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(no subscriptions)") {
		t.Fatalf("expected empty marker, got %s", buf.String())
	}
}

func TestWriteBoardCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBoardCSV(&buf, sampleSnapshot().Groups); err != nil {
		t.Fatalf("WriteBoardCSV failed: %v", err)
	}
	want := "id,repo_full_name,label,created_at\n" +
		"1,octocat/hello-world,bug,2025-01-02T03:04:05Z\n" +
		"2,octocat/hello-world,good.first.issue,\n" +
		"3,cli/cli,help wanted,\n"
	if buf.String() != want {
		t.Fatalf("csv mismatch:\nwant:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestWriteBoardMarkdown(t *testing.T) {
	var buf bytes.Buffer
	WriteBoardMarkdown(&buf, sampleSnapshot())
	got := strings.TrimSpace(buf.String())

	const want = "# Subscriptions (3)\n\n" +
		"## [octocat/hello-world](https://github.com/octocat/hello-world)\n\n" +
		"`bug` (#1) `good.first.issue` (#2)\n\n" +
		"## [cli/cli](https://github.com/cli/cli)\n\n" +
		"`help wanted` (#3)"

	if got != want {
		t.Fatalf("markdown mismatch:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestWriteBoardMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteBoardMarkdown(&buf, dashboard.Snapshot{EmptyState: true})
	if !strings.Contains(buf.String(), EmptyStateText) {
		t.Fatalf("expected empty state text, got %s", buf.String())
	}
}
