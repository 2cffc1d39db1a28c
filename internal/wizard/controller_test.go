package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
	"zenvor/internal/i18n"
)

type blockingSubmitter struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
	last    *lead.SubmitRequest
}

func newBlockingSubmitter() *blockingSubmitter {
	return &blockingSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingSubmitter) SubmitLead(ctx context.Context, req *lead.SubmitRequest) (*intake.SubmitResult, error) {
	b.calls.Add(1)
	b.last = req
	b.started <- struct{}{}
	<-b.release
	if b.err != nil {
		return nil, b.err
	}
	return &intake.SubmitResult{ID: "lead-42"}, nil
}

type demoSubmitterFunc func(ctx context.Context, req *demo.SubmitRequest) (*intake.SubmitResult, error)

func (f demoSubmitterFunc) SubmitDemo(ctx context.Context, req *demo.SubmitRequest) (*intake.SubmitResult, error) {
	return f(ctx, req)
}

func readyController(sub LeadSubmitter, locale i18n.Locale) *Controller {
	c := NewController(sub, locale)
	for _, a := range filledContact() {
		c.Dispatch(a)
	}
	c.Dispatch(Next{})
	c.Dispatch(Next{})
	c.Dispatch(SetField{FieldPainPoint, "data_entry"})
	return c
}

func TestControllerSingleFlightSubmit(t *testing.T) {
	sub := newBlockingSubmitter()
	c := readyController(sub, i18n.EN)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		st, err := c.Submit(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, PhaseSuccess, st.Phase)
	}()
	<-sub.started

	for i := 0; i < 5; i++ {
		st, err := c.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, PhaseSubmitting, st.Phase)
	}
	assert.Equal(t, PhaseSubmitting, c.Dispatch(SetField{FieldFullName, "Changed"}).Phase)

	close(sub.release)
	wg.Wait()

	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, "lead-42", c.State().SubmittedID)
	assert.Equal(t, "Ada Lovelace", sub.last.FullName)
}

func TestControllerSubmitFailure(t *testing.T) {
	sub := newBlockingSubmitter()
	sub.err = fmt.Errorf("api: %w", intake.ErrDuplicateSubmission)
	close(sub.release)
	c := readyController(sub, i18n.RU)

	st, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, intake.ErrDuplicateSubmission)
	assert.Equal(t, PhaseError, st.Phase)
	assert.Equal(t, i18n.For(i18n.RU).AlreadySubmitted, st.ErrorMessage)
}

func TestControllerSubmitInvalidSkipsCall(t *testing.T) {
	sub := newBlockingSubmitter()
	c := NewController(sub, i18n.EN)

	st, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Zero(t, sub.calls.Load())
}

func TestControllerDispatchIgnoresSubmitResults(t *testing.T) {
	c := readyController(newBlockingSubmitter(), i18n.EN)
	before := c.State()

	assert.Equal(t, before, c.Dispatch(Submit{}))
	assert.Equal(t, before, c.Dispatch(SubmitSucceeded{ID: "forged"}))
	assert.Equal(t, before, c.Dispatch(SubmitFailed{Message: "forged"}))
}

func TestDemoControllerSubmit(t *testing.T) {
	var calls int
	c := NewDemoController(demoSubmitterFunc(func(_ context.Context, req *demo.SubmitRequest) (*intake.SubmitResult, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return &intake.SubmitResult{ID: "demo-7"}, nil
	}), i18n.EN)

	c.Dispatch(SetField{FieldFullName, "Grace Hopper"})
	c.Dispatch(SetField{FieldEmail, "grace@example.com"})

	st, err := c.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, PhaseError, st.Phase)
	assert.Equal(t, i18n.For(i18n.EN).Generic, st.ErrorMessage)

	st, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.Equal(t, "demo-7", st.SubmittedID)
	assert.Equal(t, 2, calls)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, i18n.For(i18n.EN).AlreadySubmitted, FailureMessage(intake.ErrDuplicateSubmission, i18n.EN))
	assert.Equal(t, i18n.For(i18n.EN).Generic, FailureMessage(errors.New("500"), i18n.EN))
	assert.Equal(t, i18n.For(i18n.RU).Generic, FailureMessage(intake.ErrNotFound, i18n.RU))
}

func TestOptionsAreLocalized(t *testing.T) {
	sizes := CompanySizeOptions(i18n.RU)
	require.Len(t, sizes, len(lead.CompanySizes))
	assert.Equal(t, "1_10", sizes[0].Value)
	assert.Contains(t, sizes[0].Label, "Стартап")

	interests := ServiceInterestOptions(i18n.RU)
	require.Len(t, interests, len(demo.ServiceInterests))
	for _, o := range interests {
		assert.NotEqual(t, o.Value, o.Label)
	}

	assert.Len(t, PainPointOptions(i18n.EN), len(lead.PainPoints))
	assert.Len(t, BudgetOptions(i18n.Locale("xx")), len(lead.Budgets))
	assert.Equal(t, ToolGroups(i18n.EN), ToolGroups(i18n.Locale("xx")))
	assert.NotEqual(t, ToolGroups(i18n.EN)[0].Name, ToolGroups(i18n.RU)[0].Name)
}
