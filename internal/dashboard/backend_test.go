package dashboard

import (
	"context"
	"net/http"
	"testing"

	"github.com/back1ash/IssueBell/internal/api"
	"github.com/jarcoal/httpmock"
)

const serverURL = "http://bell.test"

func newHTTPController(t *testing.T, transport http.RoundTripper) (*Controller, *Board) {
	t.Helper()
	client, err := api.NewClient(api.Options{BaseURL: serverURL, Transport: transport})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	board := NewBoard()
	return New(client, board, nil), board
}

func TestSubmitWithServerPayload(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", serverURL+"/subscriptions/",
		httpmock.NewStringResponder(http.StatusOK, `[{"id":6,"repo_full_name":"octocat/hello-world","label":"docs","user_id":3,"created_at":"2025-02-28T09:00:00.654321"}]`))
	transport.RegisterResponder("POST", serverURL+"/subscriptions/",
		httpmock.NewStringResponder(http.StatusCreated, `{"id":7,"repo_full_name":"octocat/hello-world","label":"bug","user_id":3,"created_at":"2025-03-01T12:34:56"}`))

	ctrl, board := newHTTPController(t, transport)
	if err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := board.Snapshot().Badge; got != 1 {
		t.Fatalf("expected badge 1 after load, got %d", got)
	}

	ctrl.SetRepoInput("https://github.com/octocat/hello-world")
	ctrl.AddPendingLabel("bug")
	result, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(result.Failed) != 0 || len(result.Created) != 1 || result.Created[0].ID != 7 {
		t.Fatalf("unexpected result %#v", result)
	}
	if result.Created[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be decoded")
	}

	snap := board.Snapshot()
	if snap.Badge != 2 {
		t.Fatalf("expected badge 2, got %d", snap.Badge)
	}
	if len(ctrl.Pending()) != 0 || len(snap.Chips) != 0 {
		t.Fatalf("expected pending labels to be cleared, got %v", ctrl.Pending())
	}
	if snap.ErrorVisible {
		t.Fatalf("unexpected error %q", snap.Error)
	}
	if len(snap.Groups) != 1 || len(snap.Groups[0].Entries) != 2 {
		t.Fatalf("expected both entries in one group, got %#v", snap.Groups)
	}
}
