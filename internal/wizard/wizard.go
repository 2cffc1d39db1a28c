// Package wizard holds the client-side state machines of the intake forms:
// the three-step "get started" wizard and the flat "book demo" form.
//
// Reduce and ReduceDemo are pure: they never mutate the state they are
// given, so a caller may keep earlier states around. Controller and
// DemoController own a state and perform the submit call.
package wizard

import (
	"strings"
	"unicode/utf8"

	"zenvor/internal/domain/lead"
	"zenvor/internal/i18n"
	"zenvor/internal/pkg/validator"
)

// TotalSteps is the number of wizard steps.
const TotalSteps = 3

// MaxTools is the most tools the stack step lets a visitor pick.
const MaxTools = 20

// Phase is where a form is in its submit cycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

// Field names a form input. Values match the API's JSON field names.
type Field string

const (
	FieldFullName          Field = "full_name"
	FieldEmail             Field = "email"
	FieldCompanyName       Field = "company_name"
	FieldCompanySize       Field = "company_size"
	FieldPainPoint         Field = "pain_point"
	FieldPainPointOther    Field = "pain_point_other"
	FieldBudget            Field = "budget"
	FieldAdditionalContext Field = "additional_context"
	FieldPhone             Field = "phone"
	FieldJobTitle          Field = "job_title"
	FieldServiceInterest   Field = "service_interest"
	FieldMessage           Field = "message"
	FieldReferralSource    Field = "referral_source"
)

// Form holds every wizard input across all steps.
type Form struct {
	FullName          string
	Email             string
	CompanyName       string
	CompanySize       string
	CurrentTools      []string
	PainPoint         string
	PainPointOther    string
	Budget            string
	AdditionalContext string
}

// HasTool reports whether tool is selected.
func (f Form) HasTool(tool string) bool {
	for _, t := range f.CurrentTools {
		if t == tool {
			return true
		}
	}
	return false
}

// State is the wizard value. Errors only ever holds the current step's fields.
type State struct {
	Step         int
	Phase        Phase
	Form         Form
	Errors       map[Field]string
	SubmittedID  string
	ErrorMessage string
	Locale       i18n.Locale
}

// New returns the initial wizard state.
func New(locale i18n.Locale) State {
	return State{Step: 1, Phase: PhaseIdle, Locale: locale}
}

// Editable reports whether inputs and navigation are live.
func (s State) Editable() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseError
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return s.Step == TotalSteps && s.Editable()
}

// Action is an input to Reduce or ReduceDemo.
type Action interface {
	isAction()
}

type (
	SetField struct {
		Field Field
		Value string
	}
	ToggleTool struct {
		Tool string
	}
	Next            struct{}
	Back            struct{}
	Submit          struct{}
	SubmitSucceeded struct {
		ID string
	}
	SubmitFailed struct {
		Message string
	}
	Reset struct{}
)

func (SetField) isAction()        {}
func (ToggleTool) isAction()      {}
func (Next) isAction()            {}
func (Back) isAction()            {}
func (Submit) isAction()          {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (Reset) isAction()           {}

// Reduce applies a to s and returns the next state. Actions that do not
// apply in the current phase or step return s unchanged.
func Reduce(s State, a Action) State {
	switch s.Phase {
	case PhaseSubmitting:
		switch a := a.(type) {
		case SubmitSucceeded:
			s.Phase = PhaseSuccess
			s.SubmittedID = a.ID
			s.ErrorMessage = ""
			s.Errors = nil
		case SubmitFailed:
			s.Phase = PhaseError
			s.ErrorMessage = a.Message
		}
		return s
	case PhaseSuccess:
		if _, ok := a.(Reset); ok {
			return New(s.Locale)
		}
		return s
	}

	switch a := a.(type) {
	case SetField:
		s.Form = setFormField(s.Form, a.Field, a.Value)
	case ToggleTool:
		s.Form = toggleTool(s.Form, a.Tool)
	case Next:
		if s.Step >= TotalSteps {
			return s
		}
		if s.Step == 1 {
			if errs := validateContact(s.Form, s.Locale); len(errs) > 0 {
				s.Errors = errs
				return s
			}
		}
		s.Step++
		s.Errors = nil
		s.Phase = PhaseIdle
		s.ErrorMessage = ""
	case Back:
		if s.Step <= 1 {
			return s
		}
		s.Step--
		s.Errors = nil
		s.Phase = PhaseIdle
		s.ErrorMessage = ""
	case Submit:
		if s.Step != TotalSteps {
			return s
		}
		if errs := validateChallenge(s.Form, s.Locale); len(errs) > 0 {
			s.Errors = errs
			return s
		}
		s.Errors = nil
		s.Phase = PhaseSubmitting
		s.ErrorMessage = ""
	case Reset:
		return New(s.Locale)
	}
	return s
}

func setFormField(f Form, field Field, value string) Form {
	switch field {
	case FieldFullName:
		f.FullName = value
	case FieldEmail:
		f.Email = value
	case FieldCompanyName:
		f.CompanyName = value
	case FieldCompanySize:
		f.CompanySize = value
	case FieldPainPoint:
		f.PainPoint = value
	case FieldPainPointOther:
		f.PainPointOther = value
	case FieldBudget:
		f.Budget = value
	case FieldAdditionalContext:
		f.AdditionalContext = value
	}
	return f
}

// toggleTool returns f with tool added or removed. The slice is always
// copied so earlier states keep their selection.
func toggleTool(f Form, tool string) Form {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		return f
	}

	if f.HasTool(tool) {
		tools := make([]string, 0, len(f.CurrentTools)-1)
		for _, t := range f.CurrentTools {
			if t != tool {
				tools = append(tools, t)
			}
		}
		if len(tools) == 0 {
			tools = nil
		}
		f.CurrentTools = tools
		return f
	}

	if len(f.CurrentTools) >= MaxTools {
		return f
	}
	tools := make([]string, len(f.CurrentTools), len(f.CurrentTools)+1)
	copy(tools, f.CurrentTools)
	f.CurrentTools = append(tools, tool)
	return f
}

func validateContact(f Form, locale i18n.Locale) map[Field]string {
	msgs := i18n.For(locale)
	errs := map[Field]string{}

	if !validName(f.FullName) {
		errs[FieldFullName] = msgs.NameRequired
	}
	if !validator.IsEmail(strings.TrimSpace(f.Email)) {
		errs[FieldEmail] = msgs.EmailInvalid
	}
	if strings.TrimSpace(f.CompanyName) == "" {
		errs[FieldCompanyName] = msgs.CompanyRequired
	}
	if !knownCompanySize(f.CompanySize) {
		errs[FieldCompanySize] = msgs.SizeRequired
	}
	return errs
}

func validateChallenge(f Form, locale i18n.Locale) map[Field]string {
	if knownPainPoint(f.PainPoint) {
		return nil
	}
	return map[Field]string{FieldPainPoint: i18n.For(locale).PainRequired}
}

func validName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

func knownCompanySize(v string) bool {
	for _, cs := range lead.CompanySizes {
		if string(cs) == v {
			return true
		}
	}
	return false
}

func knownPainPoint(v string) bool {
	for _, p := range lead.PainPoints {
		if string(p) == v {
			return true
		}
	}
	return false
}

// Payload builds the API request from the form. Text is trimmed and empty
// optional inputs are left out.
func (s State) Payload() *lead.SubmitRequest {
	f := s.Form
	req := &lead.SubmitRequest{
		FullName:          strings.TrimSpace(f.FullName),
		Email:             strings.TrimSpace(f.Email),
		CompanyName:       strings.TrimSpace(f.CompanyName),
		CompanySize:       lead.CompanySize(f.CompanySize),
		PainPoint:         optional(f.PainPoint),
		PainPointOther:    optional(f.PainPointOther),
		Budget:            optional(f.Budget),
		AdditionalContext: optional(f.AdditionalContext),
	}
	if len(f.CurrentTools) > 0 {
		req.CurrentTools = append([]string(nil), f.CurrentTools...)
	}
	return req
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
