package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenvor/internal/i18n"
)

func applyDemo(s DemoState, actions ...Action) DemoState {
	for _, a := range actions {
		s = ReduceDemo(s, a)
	}
	return s
}

func TestDemoSubmitValidation(t *testing.T) {
	msgs := i18n.For(i18n.EN)

	s := ReduceDemo(NewDemo(i18n.EN), Submit{})
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, map[Field]string{
		FieldFullName: msgs.NameRequired,
		FieldEmail:    msgs.EmailInvalid,
	}, s.Errors)

	s = applyDemo(s,
		SetField{FieldFullName, "Grace Hopper"},
		SetField{FieldEmail, "grace@example.com"},
		SetField{FieldPhone, "12345"},
		Submit{},
	)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, map[Field]string{FieldPhone: msgs.PhoneInvalid}, s.Errors)

	s = applyDemo(s, SetField{FieldPhone, "   "}, Submit{})
	assert.Contains(t, s.Errors, FieldPhone)

	s = applyDemo(s, SetField{FieldPhone, ""}, Submit{})
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.Empty(t, s.Errors)
}

func TestDemoIgnoresWizardNavigation(t *testing.T) {
	s := applyDemo(NewDemo(i18n.EN), SetField{FieldFullName, "Grace"})
	assert.Equal(t, s, applyDemo(s, Next{}, Back{}, ToggleTool{"Slack"}))
}

func TestDemoLifecycle(t *testing.T) {
	s := applyDemo(NewDemo(i18n.EN),
		SetField{FieldFullName, "Grace Hopper"},
		SetField{FieldEmail, "grace@example.com"},
		Submit{},
	)
	require.Equal(t, PhaseSubmitting, s.Phase)
	assert.Equal(t, s, ReduceDemo(s, SetField{FieldFullName, "Other"}))

	failed := ReduceDemo(s, SubmitFailed{Message: "nope"})
	assert.Equal(t, PhaseError, failed.Phase)
	assert.True(t, failed.Editable())

	done := applyDemo(failed, Submit{}, SubmitSucceeded{ID: "demo-1"})
	assert.Equal(t, PhaseSuccess, done.Phase)
	assert.Equal(t, "demo-1", done.SubmittedID)
	assert.Empty(t, done.ErrorMessage)
	assert.Equal(t, NewDemo(i18n.EN), ReduceDemo(done, Reset{}))
}

func TestDemoPayload(t *testing.T) {
	s := applyDemo(NewDemo(i18n.EN),
		SetField{FieldFullName, " Grace Hopper "},
		SetField{FieldEmail, "grace@example.com"},
		SetField{FieldPhone, "+1 555 0100"},
		SetField{FieldServiceInterest, "sales_ai"},
		SetField{FieldJobTitle, "  "},
	)
	req := s.Payload()

	assert.Equal(t, "Grace Hopper", req.FullName)
	require.NotNil(t, req.Phone)
	assert.Equal(t, "+1 555 0100", *req.Phone)
	require.NotNil(t, req.ServiceInterest)
	assert.Equal(t, "sales_ai", *req.ServiceInterest)
	assert.Nil(t, req.JobTitle)
	assert.Nil(t, req.CompanyName)
	assert.Nil(t, req.Message)
}
