package api

import (
	"encoding/json"
	"strings"
)

// Subscription is a backend-owned repository + label pair.
type Subscription struct {
	ID           int64     `json:"id"`
	RepoFullName string    `json:"repo_full_name"`
	Label        string    `json:"label"`
	UserID       int64     `json:"user_id,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

type createRequest struct {
	RepoFullName string `json:"repo_full_name"`
	Label        string `json:"label"`
}

// errorBody mirrors the backend error payload. detail is either a plain
// message or a list of validation issues.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func (b errorBody) message() string {
	if len(b.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(b.Detail, &text); err == nil {
		return text
	}
	var issues []validationIssue
	if err := json.Unmarshal(b.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg != "" {
				msgs = append(msgs, issue.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
