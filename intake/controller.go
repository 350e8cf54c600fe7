package intake

import (
	"context"
	"sync"

	"datemate/questionnaire"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Sender delivers a payload to the collection endpoint
type Sender interface {
	Send(ctx context.Context, payload questionnaire.Payload) error
}

// Controller drives submission attempts for a single form
type Controller struct {
	l         logrus.FieldLogger
	form      *Form
	sender    Sender
	mu        sync.Mutex
	state     State
	attempts  int
	observers []func(State)
}

// NewController creates a controller in the Idle state
func NewController(l logrus.FieldLogger, form *Form, sender Sender) *Controller {
	return &Controller{
		l:      l.WithField("component", "submission-controller"),
		form:   form,
		sender: sender,
		state:  Idle(),
	}
}

// OnTransition registers an observer called after every state change
func (c *Controller) OnTransition(fn func(State)) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
	return c
}

// State returns the latest submission state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Form returns the form this controller submits
func (c *Controller) Form() *Form {
	return c.form
}

// Submit runs one submission attempt to completion and returns the resulting state
func (c *Controller) Submit(ctx context.Context) State {
	a, s := c.Begin()
	if a == nil {
		return s
	}
	return a.Run(ctx)
}

// Begin applies the submit guards. When the draft may be sent it moves to Pending
// and returns the attempt that performs the request; otherwise the attempt is nil.
func (c *Controller) Begin() (*Attempt, State) {
	c.mu.Lock()

	if c.state.IsSucceeded() || c.state.IsPending() {
		s := c.state
		c.mu.Unlock()
		c.l.WithField("state", s.Phase().String()).Debug("Ignoring submit trigger.")
		return nil, s
	}

	draft := c.form.Snapshot()
	if !draft.IsSubmittable() {
		s, observers := c.transitionLocked(Failed(MessageIncomplete))
		c.mu.Unlock()
		c.l.WithError(ErrIncompleteDraft).Debug("Draft is incomplete.")
		notify(observers, s)
		return nil, s
	}

	c.attempts++
	a := &Attempt{c: c, number: c.attempts, payload: draft.Payload()}
	s, observers := c.transitionLocked(Pending())
	c.mu.Unlock()
	notify(observers, s)
	return a, s
}

// settle ends the pending attempt with its outcome
func (c *Controller) settle(s State) State {
	c.mu.Lock()
	if !c.state.IsPending() {
		current := c.state
		c.mu.Unlock()
		return current
	}
	if s.IsSucceeded() {
		c.form.Freeze()
	}
	s, observers := c.transitionLocked(s)
	c.mu.Unlock()
	notify(observers, s)
	return s
}

// transitionLocked must be called with mu held
func (c *Controller) transitionLocked(s State) (State, []func(State)) {
	c.state = s
	return s, append([]func(State){}, c.observers...)
}

func notify(observers []func(State), s State) {
	for _, o := range observers {
		o(s)
	}
}

// Attempt is one pending submission. Run performs its request exactly once.
type Attempt struct {
	c       *Controller
	number  int
	payload questionnaire.Payload
	once    sync.Once
}

// Number is the 1-based attempt counter for the controller
func (a *Attempt) Number() int {
	return a.number
}

// Payload returns the trimmed answers the attempt sends
func (a *Attempt) Payload() questionnaire.Payload {
	return a.payload
}

// Run sends the payload and settles the attempt. Every failure, including a panic in the
// sender, ends in Failed; the pending state is cleared once on every path.
func (a *Attempt) Run(ctx context.Context) State {
	a.once.Do(func() {
		span, ctx := opentracing.StartSpanFromContext(ctx, "submit_profile")
		defer span.Finish()

		l := a.c.l.WithField("attempt", a.number)
		result := Failed(MessageUnknown)
		defer func() {
			if r := recover(); r != nil {
				l.WithField("panic", r).Error("Profile submission aborted.")
			}
			a.c.settle(result)
		}()

		l.Debug("Submitting profile.")
		if err := a.c.sender.Send(ctx, a.payload); err != nil {
			result = Failed(failureMessage(err))
			span.SetTag("error", true)
			l.WithError(err).Warn("Profile submission failed.")
			return
		}
		result = Succeeded()
		l.Info("Profile submitted.")
	})
	return a.c.State()
}
