// Package repoid normalizes user supplied GitHub repository references.
package repoid

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	httpsPattern = regexp.MustCompile(`^https?://github\.com/([A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+?)(\.git)?(?:/.*)?$`)
	sshPattern   = regexp.MustCompile(`^git@github\.com:([A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+?)(\.git)?$`)
	barePattern  = regexp.MustCompile(`^[A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+$`)
)

// Parse converts an HTTPS URL, SSH URL or bare OWNER/REPO string into
// OWNER/REPO. The second return value is false when nothing matched.
func Parse(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if m := httpsPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if m := sshPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if barePattern.MatchString(s) {
		return s, true
	}
	return "", false
}

// Normalize returns the parsed identifier, or the trimmed input when it
// does not parse so the backend can reject it.
func Normalize(raw string) string {
	if full, ok := Parse(raw); ok {
		return full
	}
	return strings.TrimSpace(raw)
}

// Split converts OWNER/REPO string into components.
func Split(input string) (owner string, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(input), "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("repo must be in OWNER/REPO format")
	}
	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("repo must be in OWNER/REPO format")
	}
	return owner, repo, nil
}
