package wizard

import (
	"strings"
	"unicode/utf8"

	"zenvor/internal/domain/demo"
	"zenvor/internal/i18n"
	"zenvor/internal/pkg/validator"
)

// minPhoneLen is the shortest accepted phone number once trimmed.
const minPhoneLen = 6

// DemoForm holds the "book demo" inputs.
type DemoForm struct {
	FullName        string
	Email           string
	Phone           string
	CompanyName     string
	JobTitle        string
	ServiceInterest string
	Message         string
	ReferralSource  string
}

// DemoState is the flat demo form value.
type DemoState struct {
	Phase        Phase
	Form         DemoForm
	Errors       map[Field]string
	SubmittedID  string
	ErrorMessage string
	Locale       i18n.Locale
}

func NewDemo(locale i18n.Locale) DemoState {
	return DemoState{Phase: PhaseIdle, Locale: locale}
}

func (s DemoState) Editable() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseError
}

// ReduceDemo applies a to s. Next, Back and ToggleTool do not apply to the
// flat form and leave it unchanged.
func ReduceDemo(s DemoState, a Action) DemoState {
	switch s.Phase {
	case PhaseSubmitting:
		switch a := a.(type) {
		case SubmitSucceeded:
			s.Phase = PhaseSuccess
			s.SubmittedID = a.ID
			s.ErrorMessage = ""
		case SubmitFailed:
			s.Phase = PhaseError
			s.ErrorMessage = a.Message
		}
		return s
	case PhaseSuccess:
		if _, ok := a.(Reset); ok {
			return NewDemo(s.Locale)
		}
		return s
	}

	switch a := a.(type) {
	case SetField:
		s.Form = setDemoField(s.Form, a.Field, a.Value)
	case Submit:
		if errs := validateDemo(s.Form, s.Locale); len(errs) > 0 {
			s.Errors = errs
			return s
		}
		s.Errors = nil
		s.Phase = PhaseSubmitting
		s.ErrorMessage = ""
	case Reset:
		return NewDemo(s.Locale)
	}
	return s
}

func setDemoField(f DemoForm, field Field, value string) DemoForm {
	switch field {
	case FieldFullName:
		f.FullName = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldCompanyName:
		f.CompanyName = value
	case FieldJobTitle:
		f.JobTitle = value
	case FieldServiceInterest:
		f.ServiceInterest = value
	case FieldMessage:
		f.Message = value
	case FieldReferralSource:
		f.ReferralSource = value
	}
	return f
}

func validateDemo(f DemoForm, locale i18n.Locale) map[Field]string {
	msgs := i18n.For(locale)
	errs := map[Field]string{}

	if !validName(f.FullName) {
		errs[FieldFullName] = msgs.NameRequired
	}
	if !validator.IsEmail(strings.TrimSpace(f.Email)) {
		errs[FieldEmail] = msgs.EmailInvalid
	}
	if f.Phone != "" && utf8.RuneCountInString(strings.TrimSpace(f.Phone)) < minPhoneLen {
		errs[FieldPhone] = msgs.PhoneInvalid
	}
	return errs
}

// Payload builds the API request from the demo form.
func (s DemoState) Payload() *demo.SubmitRequest {
	f := s.Form
	return &demo.SubmitRequest{
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           optional(f.Phone),
		CompanyName:     optional(f.CompanyName),
		JobTitle:        optional(f.JobTitle),
		ServiceInterest: optional(f.ServiceInterest),
		Message:         optional(f.Message),
		ReferralSource:  optional(f.ReferralSource),
	}
}
