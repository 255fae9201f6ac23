package repoid

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]string{
		"octocat/Hello-World":                            "octocat/Hello-World",
		"  octocat/Hello-World  ":                        "octocat/Hello-World",
		"https://github.com/octocat/Hello-World":         "octocat/Hello-World",
		"https://github.com/octocat/Hello-World.git":     "octocat/Hello-World",
		"http://github.com/octocat/Hello-World":          "octocat/Hello-World",
		"https://github.com/octocat/Hello-World/issues":  "octocat/Hello-World",
		"https://github.com/octocat/Hello-World.git/x/y": "octocat/Hello-World",
		"git@github.com:octocat/Hello-World":             "octocat/Hello-World",
		"git@github.com:octocat/Hello-World.git":         "octocat/Hello-World",
		"my_org.x/repo.name-1":                           "my_org.x/repo.name-1",
	}
	for input, want := range cases {
		got, ok := Parse(input)
		if !ok {
			t.Fatalf("expected %q to parse", input)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseNoMatch(t *testing.T) {
	cases := []string{
		"",
		"not a repo",
		"foo",
		"foo/",
		"/bar",
		"foo/bar/baz",
		"https://gitlab.com/octocat/Hello-World",
		"git@gitlab.com:octocat/Hello-World.git",
		"git@github.com:octocat/Hello-World/tree",
		"https://github.com/octocat",
		"own er/repo",
	}
	for _, c := range cases {
		if got, ok := Parse(c); ok {
			t.Fatalf("expected no match for %q, got %q", c, got)
		}
	}
}

func TestNormalizeFallsBackToTrimmedInput(t *testing.T) {
	if got := Normalize("  not a repo "); got != "not a repo" {
		t.Fatalf("unexpected fallback: %q", got)
	}
	if got := Normalize("git@github.com:octocat/Hello-World.git"); got != "octocat/Hello-World" {
		t.Fatalf("unexpected normalized value: %q", got)
	}
}

func TestSplit(t *testing.T) {
	owner, repo, err := Split("octocat/Hello-World")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "octocat" || repo != "Hello-World" {
		t.Fatalf("unexpected result: owner=%s repo=%s", owner, repo)
	}
}

func TestSplitErrors(t *testing.T) {
	cases := []string{"", "foo", "foo/", "/bar", "foo/bar/baz"}
	for _, c := range cases {
		if _, _, err := Split(c); err == nil {
			t.Fatalf("expected error for input %q", c)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Validity{
		"":                    Neutral,
		"   ":                 Neutral,
		"octocat/Hello-World": Valid,
		"not a repo":          Invalid,
	}
	for input, want := range cases {
		if got := Validate(input); got != want {
			t.Fatalf("Validate(%q) = %s, want %s", input, got, want)
		}
	}
}
