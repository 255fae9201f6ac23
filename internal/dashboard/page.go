// Package dashboard holds the subscription form controller and the page
// model it drives.
package dashboard

import (
	"github.com/back1ash/IssueBell/internal/api"
	"github.com/back1ash/IssueBell/internal/repoid"
)

const (
	// SubmitIdleText is the submit control label while idle.
	SubmitIdleText = "+ Add Subscription"
	// SubmitBusyText is shown while labels are being submitted.
	SubmitBusyText = "Adding..."
	// LabelPlaceholder is shown in the label field when there are no chips.
	LabelPlaceholder = "good-first-issue"
)

// Page is everything the controller needs from the surface it renders to.
type Page interface {
	SetRepoValidity(v repoid.Validity)
	SetLabelText(text string)
	FocusLabel()
	RenderChips(labels []string)

	ShowError(msg string)
	HideError()
	SetSubmitBusy(busy bool)

	AppendSubscription(sub api.Subscription)
	// RemoveSubscription drops the entry with id, and its repo group when
	// the group becomes empty. It reports whether the entry was present.
	RemoveSubscription(id int64) bool
	SetEntryBusy(id int64, busy bool)
	AdjustBadge(delta int)
	HideEmptyState()
	CheckEmptyState()
	Alert(msg string)
}
