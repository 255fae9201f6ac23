package dashboard

import (
	"slices"
	"sync"

	"github.com/back1ash/IssueBell/internal/api"
	"github.com/back1ash/IssueBell/internal/repoid"
)

// Group is a set of subscriptions sharing one repository.
type Group struct {
	Repo    string             `json:"repo"`
	Entries []api.Subscription `json:"entries"`
}

// Snapshot is a point-in-time copy of a Board.
type Snapshot struct {
	Groups         []Group         `json:"groups"`
	Badge          int             `json:"badge"`
	EmptyState     bool            `json:"empty_state"`
	Chips          []string        `json:"chips"`
	Placeholder    string          `json:"placeholder"`
	LabelText      string          `json:"label_text"`
	LabelFocused   bool            `json:"label_focused"`
	Validity       repoid.Validity `json:"validity"`
	Error          string          `json:"error,omitempty"`
	ErrorVisible   bool            `json:"error_visible"`
	SubmitDisabled bool            `json:"submit_disabled"`
	SubmitText     string          `json:"submit_text"`
	Busy           []int64         `json:"busy,omitempty"`
	Alerts         []string        `json:"alerts,omitempty"`
}

// Board is an in-memory Page. Groups are kept newest first. It is safe for
// concurrent use.
type Board struct {
	mu sync.Mutex

	groups       []*Group
	badge        int
	emptyState   bool
	chips        []string
	labelText    string
	labelFocused bool
	validity     repoid.Validity
	errMsg       string
	errVisible   bool
	submitBusy   bool
	busy         map[int64]bool
	alerts       []string
}

var _ Page = (*Board)(nil)

// NewBoard returns an empty board showing the empty-state placeholder.
func NewBoard() *Board {
	return &Board{
		emptyState: true,
		busy:       make(map[int64]bool),
	}
}

func (b *Board) SetRepoValidity(v repoid.Validity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.validity = v
}

func (b *Board) SetLabelText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.labelText = text
}

func (b *Board) FocusLabel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.labelFocused = true
}

func (b *Board) RenderChips(labels []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chips = slices.Clone(labels)
}

func (b *Board) ShowError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = msg
	b.errVisible = true
}

func (b *Board) HideError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errVisible = false
}

func (b *Board) SetSubmitBusy(busy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitBusy = busy
}

// AppendSubscription adds sub to its repo group, creating the group at the
// top of the list when it does not exist yet.
func (b *Board) AppendSubscription(sub api.Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, g := range b.groups {
		if g.Repo == sub.RepoFullName {
			g.Entries = append(g.Entries, sub)
			return
		}
	}
	g := &Group{Repo: sub.RepoFullName, Entries: []api.Subscription{sub}}
	b.groups = append([]*Group{g}, b.groups...)
}

func (b *Board) RemoveSubscription(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for gi, g := range b.groups {
		for ei, entry := range g.Entries {
			if entry.ID != id {
				continue
			}
			g.Entries = slices.Delete(g.Entries, ei, ei+1)
			if len(g.Entries) == 0 {
				b.groups = slices.Delete(b.groups, gi, gi+1)
			}
			delete(b.busy, id)
			return true
		}
	}
	return false
}

func (b *Board) SetEntryBusy(id int64, busy bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if busy {
		b.busy[id] = true
	} else {
		delete(b.busy, id)
	}
}

// AdjustBadge moves the counter by delta, never below zero.
func (b *Board) AdjustBadge(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.badge = max(0, b.badge+delta)
}

func (b *Board) HideEmptyState() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emptyState = false
}

// CheckEmptyState shows the placeholder once the last entry is gone.
func (b *Board) CheckEmptyState() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.groups) == 0 {
		b.emptyState = true
	}
}

func (b *Board) Alert(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, msg)
}

// Len returns the number of subscriptions on the board.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, g := range b.groups {
		n += len(g.Entries)
	}
	return n
}

// Snapshot copies the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups := make([]Group, 0, len(b.groups))
	for _, g := range b.groups {
		groups = append(groups, Group{Repo: g.Repo, Entries: slices.Clone(g.Entries)})
	}
	busy := make([]int64, 0, len(b.busy))
	for id := range b.busy {
		busy = append(busy, id)
	}
	slices.Sort(busy)

	placeholder := ""
	if len(b.chips) == 0 {
		placeholder = LabelPlaceholder
	}
	submitText := SubmitIdleText
	if b.submitBusy {
		submitText = SubmitBusyText
	}

	return Snapshot{
		Groups:         groups,
		Badge:          b.badge,
		EmptyState:     b.emptyState,
		Chips:          slices.Clone(b.chips),
		Placeholder:    placeholder,
		LabelText:      b.labelText,
		LabelFocused:   b.labelFocused,
		Validity:       b.validity,
		Error:          b.errMsg,
		ErrorVisible:   b.errVisible,
		SubmitDisabled: b.submitBusy,
		SubmitText:     submitText,
		Busy:           busy,
		Alerts:         slices.Clone(b.alerts),
	}
}
