package wizard

import (
	"context"
	"errors"
	"sync"

	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
	"zenvor/internal/i18n"
)

// LeadSubmitter sends a finished wizard to the API.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, req *lead.SubmitRequest) (*intake.SubmitResult, error)
}

// DemoSubmitter sends a finished demo form to the API.
type DemoSubmitter interface {
	SubmitDemo(ctx context.Context, req *demo.SubmitRequest) (*intake.SubmitResult, error)
}

// Controller owns a wizard state and runs at most one submission at a time.
type Controller struct {
	mu        sync.Mutex
	state     State
	submitter LeadSubmitter
}

func NewController(submitter LeadSubmitter, locale i18n.Locale) *Controller {
	return &Controller{state: New(locale), submitter: submitter}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a user action. Submit results are owned by the
// controller, so Submit, SubmitSucceeded and SubmitFailed are ignored
// here; use Submit to send the form.
func (c *Controller) Dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch a.(type) {
	case Submit, SubmitSucceeded, SubmitFailed:
		return c.state
	}
	c.state = Reduce(c.state, a)
	return c.state
}

// Submit validates the last step and, when it passes, sends the form. A
// call made while another submission is in flight returns immediately
// without touching the network. The returned error is the submitter's.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()
	prev := c.state
	c.state = Reduce(prev, Submit{})
	if prev.Phase == PhaseSubmitting || c.state.Phase != PhaseSubmitting {
		st := c.state
		c.mu.Unlock()
		return st, nil
	}
	payload := c.state.Payload()
	locale := c.state.Locale
	c.mu.Unlock()

	res, err := c.submitter.SubmitLead(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = Reduce(c.state, SubmitFailed{Message: FailureMessage(err, locale)})
		return c.state, err
	}
	c.state = Reduce(c.state, SubmitSucceeded{ID: res.ID})
	return c.state, nil
}

// DemoController owns a demo form state and runs at most one submission at a time.
type DemoController struct {
	mu        sync.Mutex
	state     DemoState
	submitter DemoSubmitter
}

func NewDemoController(submitter DemoSubmitter, locale i18n.Locale) *DemoController {
	return &DemoController{state: NewDemo(locale), submitter: submitter}
}

func (c *DemoController) State() DemoState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *DemoController) Dispatch(a Action) DemoState {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch a.(type) {
	case Submit, SubmitSucceeded, SubmitFailed:
		return c.state
	}
	c.state = ReduceDemo(c.state, a)
	return c.state
}

func (c *DemoController) Submit(ctx context.Context) (DemoState, error) {
	c.mu.Lock()
	prev := c.state
	c.state = ReduceDemo(prev, Submit{})
	if prev.Phase == PhaseSubmitting || c.state.Phase != PhaseSubmitting {
		st := c.state
		c.mu.Unlock()
		return st, nil
	}
	payload := c.state.Payload()
	locale := c.state.Locale
	c.mu.Unlock()

	res, err := c.submitter.SubmitDemo(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = ReduceDemo(c.state, SubmitFailed{Message: FailureMessage(err, locale)})
		return c.state, err
	}
	c.state = ReduceDemo(c.state, SubmitSucceeded{ID: res.ID})
	return c.state, nil
}

// FailureMessage is the banner text for a failed submission.
func FailureMessage(err error, locale i18n.Locale) string {
	msgs := i18n.For(locale)
	if errors.Is(err, intake.ErrDuplicateSubmission) {
		return msgs.AlreadySubmitted
	}
	return msgs.Generic
}
