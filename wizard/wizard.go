// Package wizard is the multi-step invite form as a state machine. It has no
// UI dependency: a rendering adapter drives a Controller and redraws from the
// Snapshot passed to its observer.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/linesmerrill/rsvp-api/models"
)

// Phase is the coarse state of a wizard session
type Phase int

// Phases in the order a visitor normally meets them
const (
	PhaseGate Phase = iota
	PhaseSteps
	PhaseConfirm
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseGate:
		return "gate"
	case PhaseSteps:
		return "steps"
	case PhaseConfirm:
		return "confirm"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Errors returned for actions that are not allowed in the current state
var (
	ErrSecretRequired     = errors.New("wizard: secret is required")
	ErrCredentialRejected = errors.New("wizard: credential rejected")
	ErrGateLocked         = errors.New("wizard: gate is still locked")
	ErrGateUnlocked       = errors.New("wizard: gate already unlocked")
	ErrBusy               = errors.New("wizard: a request is already in flight")
	ErrSubmitted          = errors.New("wizard: already submitted")
	ErrConfirmationOpen   = errors.New("wizard: confirmation is open")
	ErrNoConfirmation     = errors.New("wizard: no confirmation is open")
	ErrNotFinalStep       = errors.New("wizard: submit is only allowed on the final step")
)

// Visitor facing messages
const (
	MessageSecretRequired   = "Password cannot be empty."
	MessageIncorrectSecret  = "Incorrect password."
	MessageUnexpected       = "An unexpected error occurred. Please try again."
	MessageConfirmSoftReply = "Selecting this means you won't see the rest of the cool site. Are you sure you want to proceed?"
)

// Backend is the network side of the wizard. VerifyCredential returns
// ErrCredentialRejected (possibly wrapped) on a mismatch.
type Backend interface {
	VerifyCredential(ctx context.Context, secret string) error
	Submit(ctx context.Context, sub models.InviteSubmission) error
}

// UserError is implemented by backend errors that carry a message meant for
// the visitor, such as a server validation failure.
type UserError interface {
	error
	UserMessage() string
}

// Session is the ephemeral per-visitor state
type Session struct {
	Index             int
	Data              map[string]string
	InFlight          bool
	PendingLikelihood models.Likelihood
}

// Result describes a finished session. Reason is set for a soft decline.
type Result struct {
	Partial bool
	Reason  models.Likelihood
}

// Snapshot is a copy of the controller state for rendering
type Snapshot struct {
	Phase             Phase
	Step              Step
	Index             int
	Count             int
	Data              map[string]string
	Error             string
	PendingLikelihood models.Likelihood
	InFlight          bool
	Result            *Result
}

// Disabled reports whether input controls should be locked
func (s Snapshot) Disabled() bool {
	return s.InFlight || s.Phase == PhaseDone
}

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers fn to be called with a fresh Snapshot after every
// state change. fn runs on the caller's goroutine, outside the controller lock.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// Controller owns one wizard session
type Controller struct {
	mu       sync.Mutex
	steps    []Step
	backend  Backend
	session  Session
	phase    Phase
	errText  string
	result   *Result
	observer func(Snapshot)
}

// New creates a controller in the gate phase
func New(steps []Step, backend Backend, opts ...Option) (*Controller, error) {
	if len(steps) == 0 {
		return nil, errors.New("wizard: at least one step is required")
	}
	if backend == nil {
		return nil, errors.New("wizard: backend is required")
	}
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.Field == "" {
			return nil, fmt.Errorf("wizard: step %q has no field", s.ID)
		}
		if seen[s.Field] {
			return nil, fmt.Errorf("wizard: field %q is collected by more than one step", s.Field)
		}
		seen[s.Field] = true
	}

	c := &Controller{
		steps:   append([]Step(nil), steps...),
		backend: backend,
		session: Session{Data: make(map[string]string)},
		phase:   PhaseGate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Unlock checks the gate secret with the backend. It succeeds at most once
// per session; a rejected secret can be retried without limit.
func (c *Controller) Unlock(ctx context.Context, secret string) error {
	c.mu.Lock()
	switch {
	case c.phase != PhaseGate:
		c.mu.Unlock()
		return ErrGateUnlocked
	case c.session.InFlight:
		c.mu.Unlock()
		return ErrBusy
	case secret == "":
		c.errText = MessageSecretRequired
		c.unlockAndNotify()
		return ErrSecretRequired
	}
	c.session.InFlight = true
	c.errText = ""
	c.unlockAndNotify()

	err := c.backend.VerifyCredential(ctx, secret)

	c.mu.Lock()
	c.session.InFlight = false
	switch {
	case errors.Is(err, ErrCredentialRejected):
		c.errText = MessageIncorrectSecret
	case err != nil:
		c.errText = userMessage(err)
	default:
		c.phase = PhaseSteps
	}
	c.unlockAndNotify()
	return err
}

// Advance validates value for the current step and moves forward. Invalid
// input leaves the index and collected data untouched. A soft likelihood
// opens the confirmation instead of advancing.
func (c *Controller) Advance(value string) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	step := c.steps[c.session.Index]
	v := strings.TrimSpace(value)
	if se := validate(step, v); se != nil {
		c.errText = se.Message
		c.unlockAndNotify()
		return se
	}

	c.session.Data[step.Field] = v
	c.errText = ""

	if step.Field == FieldLikelihood {
		l := models.Likelihood(v)
		if l.Soft() {
			c.session.PendingLikelihood = l
			c.phase = PhaseConfirm
			c.unlockAndNotify()
			return nil
		}
		c.session.PendingLikelihood = ""
	}

	if c.session.Index+1 < len(c.steps) {
		c.session.Index++
	}
	c.unlockAndNotify()
	return nil
}

// Retreat moves back one step, floored at the first. Nothing is discarded.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.session.Index > 0 {
		c.session.Index--
	}
	c.errText = ""
	c.unlockAndNotify()
	return nil
}

// CancelConfirmation closes the soft decline prompt and returns to the
// likelihood step with index and data unchanged.
func (c *Controller) CancelConfirmation() error {
	c.mu.Lock()
	switch {
	case c.phase == PhaseDone:
		c.mu.Unlock()
		return ErrSubmitted
	case c.phase != PhaseConfirm:
		c.mu.Unlock()
		return ErrNoConfirmation
	case c.session.InFlight:
		c.mu.Unlock()
		return ErrBusy
	}
	c.phase = PhaseSteps
	c.errText = ""
	c.unlockAndNotify()
	return nil
}

// Confirm accepts the soft decline and sends a partial submission carrying
// only name and likelihood. On failure the confirmation stays open and
// Confirm can be retried.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.phase == PhaseDone:
		c.mu.Unlock()
		return ErrSubmitted
	case c.phase != PhaseConfirm:
		c.mu.Unlock()
		return ErrNoConfirmation
	case c.session.InFlight:
		c.mu.Unlock()
		return ErrBusy
	}
	pending := c.session.PendingLikelihood
	sub := models.InviteSubmission{
		Name:       c.session.Data[FieldName],
		Likelihood: pending,
	}
	return c.send(ctx, sub, Result{Partial: true, Reason: pending})
}

// Submit validates and captures the final step then sends everything
// collected. On failure the visitor stays on the final step and may resubmit.
// A soft likelihood on the final step opens the confirmation and sends nothing.
func (c *Controller) Submit(ctx context.Context, value string) error {
	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.session.Index != len(c.steps)-1 {
		c.mu.Unlock()
		return ErrNotFinalStep
	}

	step := c.steps[c.session.Index]
	v := strings.TrimSpace(value)
	if se := validate(step, v); se != nil {
		c.errText = se.Message
		c.unlockAndNotify()
		return se
	}
	c.session.Data[step.Field] = v

	if step.Field == FieldLikelihood {
		if l := models.Likelihood(v); l.Soft() {
			c.session.PendingLikelihood = l
			c.phase = PhaseConfirm
			c.errText = ""
			c.unlockAndNotify()
			return nil
		}
		c.session.PendingLikelihood = ""
	}

	return c.send(ctx, submissionFrom(c.session.Data), Result{})
}

// send must be called with c.mu held; it releases the lock for the network
// call and always leaves the session either done or showing an error.
func (c *Controller) send(ctx context.Context, sub models.InviteSubmission, res Result) error {
	c.session.InFlight = true
	c.errText = ""
	c.unlockAndNotify()

	err := c.backend.Submit(ctx, sub)

	c.mu.Lock()
	c.session.InFlight = false
	if err != nil {
		c.errText = userMessage(err)
		c.unlockAndNotify()
		return err
	}
	c.phase = PhaseDone
	c.session.PendingLikelihood = ""
	c.result = &res
	c.unlockAndNotify()
	return nil
}

func (c *Controller) checkEditableLocked() error {
	switch {
	case c.phase == PhaseGate:
		return ErrGateLocked
	case c.phase == PhaseDone:
		return ErrSubmitted
	case c.session.InFlight:
		return ErrBusy
	case c.phase == PhaseConfirm:
		return ErrConfirmationOpen
	}
	return nil
}

// unlockAndNotify releases c.mu and then hands the observer a snapshot
func (c *Controller) unlockAndNotify() {
	snap := c.snapshotLocked()
	observer := c.observer
	c.mu.Unlock()
	if observer != nil {
		observer(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	data := make(map[string]string, len(c.session.Data))
	for k, v := range c.session.Data {
		data[k] = v
	}
	var res *Result
	if c.result != nil {
		r := *c.result
		res = &r
	}
	return Snapshot{
		Phase:             c.phase,
		Step:              c.steps[c.session.Index],
		Index:             c.session.Index,
		Count:             len(c.steps),
		Data:              data,
		Error:             c.errText,
		PendingLikelihood: c.session.PendingLikelihood,
		InFlight:          c.session.InFlight,
		Result:            res,
	}
}

func validate(step Step, value string) *StepError {
	if step.Validate == nil {
		return nil
	}
	return step.Validate(value)
}

func submissionFrom(data map[string]string) models.InviteSubmission {
	return models.InviteSubmission{
		Name:          data[FieldName],
		Likelihood:    models.Likelihood(data[FieldLikelihood]),
		Availability:  data[FieldAvailability],
		Activities:    data[FieldActivities],
		ContactNumber: data[FieldContactNumber],
	}
}

func userMessage(err error) string {
	var ue UserError
	if errors.As(err, &ue) {
		return ue.UserMessage()
	}
	return MessageUnexpected
}
