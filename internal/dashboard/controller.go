package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/back1ash/IssueBell/internal/api"
	"github.com/back1ash/IssueBell/internal/repoid"
)

// ErrNoLabels is returned by Submit when there is nothing to submit.
var ErrNoLabels = errors.New("no labels to submit")

// NoLabelsMessage is shown in the error region when Submit has no labels.
const NoLabelsMessage = "Add at least one label."

// DeletePrompt is the confirmation question asked before removing a
// subscription.
const DeletePrompt = "Remove this subscription?"

// Key is a key press delivered to the label field.
type Key string

const (
	KeyComma     Key = ","
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
)

// Backend is the subset of the subscriptions API the controller uses.
type Backend interface {
	ListSubscriptions(ctx context.Context) ([]api.Subscription, error)
	CreateSubscription(ctx context.Context, repoFullName, label string) (api.Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })

// LabelFailure pairs a label with the reason its creation failed.
type LabelFailure struct {
	Label string
	Err   error
}

// SubmitResult describes the outcome of one Submit call.
type SubmitResult struct {
	Repo    string
	Created []api.Subscription
	Failed  []LabelFailure
}

// FailureMessage joins every failure into one line, or returns "" when all
// labels were created.
func (r SubmitResult) FailureMessage() string {
	parts := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		parts = append(parts, fmt.Sprintf("%q: %s", f.Label, f.Err))
	}
	return strings.Join(parts, " / ")
}

// Err returns nil if every label was created.
func (r SubmitResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return errors.New(r.FailureMessage())
}

// Controller drives the add-subscription form and the subscription list.
// It is not safe for concurrent use except for Remove, which only touches
// the backend and the page.
type Controller struct {
	backend Backend
	page    Page
	confirm Confirmer

	pending   []string
	labelText string
	repoText  string
}

// New constructs a Controller. A nil confirmer approves every deletion.
func New(backend Backend, page Page, confirm Confirmer) *Controller {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Controller{
		backend: backend,
		page:    page,
		confirm: confirm,
	}
}

// Pending returns a copy of the pending labels in chip order.
func (c *Controller) Pending() []string {
	return slices.Clone(c.pending)
}

// LabelText returns the uncommitted label field text.
func (c *Controller) LabelText() string {
	return c.labelText
}

// Reset drops all transient form state.
func (c *Controller) Reset() {
	c.pending = nil
	c.repoText = ""
	c.setLabelText("")
	c.page.SetRepoValidity(repoid.Neutral)
	c.page.HideError()
	c.RenderPendingChips()
}

// Load appends the backend's current subscriptions to the page. The
// backend returns them newest first.
func (c *Controller) Load(ctx context.Context) error {
	subs, err := c.backend.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}
	for i := len(subs) - 1; i >= 0; i-- {
		c.page.AppendSubscription(subs[i])
	}
	if len(subs) > 0 {
		c.page.AdjustBadge(len(subs))
		c.page.HideEmptyState()
	}
	c.page.CheckEmptyState()
	return nil
}

// SetRepoInput stores the repository field text and updates its live
// validation state.
func (c *Controller) SetRepoInput(raw string) {
	c.repoText = raw
	c.page.SetRepoValidity(repoid.Validate(raw))
}

// SetLabelInput replaces the label field text without committing it.
func (c *Controller) SetLabelInput(text string) {
	c.setLabelText(text)
}

// Type feeds text into the label field as individual key presses, so
// commas and newlines commit chips the way typing them would.
func (c *Controller) Type(text string) {
	for _, r := range text {
		switch r {
		case ',':
			c.KeyDown(KeyComma)
		case '\n':
			c.KeyDown(KeyEnter)
		default:
			c.labelText += string(r)
		}
	}
	c.page.SetLabelText(c.labelText)
}

// AddPendingLabel commits raw as a chip. Blank input is ignored and a
// duplicate only clears the field.
func (c *Controller) AddPendingLabel(raw string) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return
	}
	if slices.Contains(c.pending, label) {
		c.setLabelText("")
		return
	}
	c.pending = append(c.pending, label)
	c.RenderPendingChips()
	c.setLabelText("")
}

// KeyDown handles a key press in the label field and reports whether the
// key's default action was prevented.
func (c *Controller) KeyDown(key Key) bool {
	switch key {
	case KeyComma, KeyEnter:
		c.AddPendingLabel(c.labelText)
		return true
	case KeyBackspace:
		if c.labelText == "" && len(c.pending) > 0 {
			c.pending = c.pending[:len(c.pending)-1]
			c.RenderPendingChips()
		}
	}
	return false
}

// Blur commits any text left in the label field.
func (c *Controller) Blur() {
	if strings.TrimSpace(c.labelText) != "" {
		c.AddPendingLabel(c.labelText)
	}
}

// PickPreset commits a preset label and returns focus to the label field.
func (c *Controller) PickPreset(label string) {
	c.AddPendingLabel(label)
	c.page.FocusLabel()
}

// RemovePending removes the chip at index i.
func (c *Controller) RemovePending(i int) {
	if i < 0 || i >= len(c.pending) {
		return
	}
	c.pending = slices.Delete(c.pending, i, i+1)
	c.RenderPendingChips()
}

// RenderPendingChips pushes the pending labels to the page.
func (c *Controller) RenderPendingChips() {
	c.page.RenderChips(slices.Clone(c.pending))
}

// Submit creates one subscription per pending label, one request at a time
// in chip order. Failed labels stay pending; created ones are cleared.
func (c *Controller) Submit(ctx context.Context) (result SubmitResult, err error) {
	c.page.HideError()

	if strings.TrimSpace(c.labelText) != "" {
		c.AddPendingLabel(c.labelText)
	}

	labels := slices.Clone(c.pending)
	if len(labels) == 0 {
		c.page.ShowError(NoLabelsMessage)
		return SubmitResult{}, ErrNoLabels
	}

	result.Repo = repoid.Normalize(c.repoText)

	c.page.SetSubmitBusy(true)
	defer c.page.SetSubmitBusy(false)

	for _, label := range labels {
		sub, err := c.backend.CreateSubscription(ctx, result.Repo, label)
		if err != nil {
			slog.Debug("subscription create failed", slog.String("repo", result.Repo), slog.String("label", label), slog.String("error", err.Error()))
			result.Failed = append(result.Failed, LabelFailure{Label: label, Err: err})
			continue
		}
		c.page.AppendSubscription(sub)
		c.page.AdjustBadge(1)
		c.page.HideEmptyState()
		result.Created = append(result.Created, sub)
	}

	c.pending = c.pending[:0]
	for _, f := range result.Failed {
		c.pending = append(c.pending, f.Label)
	}
	c.RenderPendingChips()
	c.page.FocusLabel()

	if msg := result.FailureMessage(); msg != "" {
		c.page.ShowError(msg)
	}
	return result, nil
}

// DeleteSub asks for confirmation and then removes the subscription. It
// reports whether the subscription was removed.
func (c *Controller) DeleteSub(ctx context.Context, id int64) (bool, error) {
	ok, err := c.confirm.Confirm(DeletePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := c.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a subscription without asking. The entry's control is
// disabled for the duration of the request and re-enabled on failure.
func (c *Controller) Remove(ctx context.Context, id int64) error {
	c.page.SetEntryBusy(id, true)

	if err := c.backend.DeleteSubscription(ctx, id); err != nil {
		c.page.Alert(err.Error())
		c.page.SetEntryBusy(id, false)
		return fmt.Errorf("failed to remove subscription %d: %w", id, err)
	}

	c.page.RemoveSubscription(id)
	c.page.AdjustBadge(-1)
	c.page.CheckEmptyState()
	return nil
}

func (c *Controller) setLabelText(text string) {
	c.labelText = text
	c.page.SetLabelText(text)
}
