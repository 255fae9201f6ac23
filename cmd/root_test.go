package cmd

import (
	"log/slog"
	"slices"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Fatalf("parseLogLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestTrimmedValues(t *testing.T) {
	got := trimmedValues([]string{" bug ", "", "  ", "docs"})
	if !slices.Equal(got, []string{"bug", "docs"}) {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "1", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids, []int64{3, 1}) {
		t.Fatalf("unexpected ids %v", ids)
	}

	for _, bad := range []string{"abc", "0", "-2", "1.5"} {
		if _, err := parseIDs([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
