package demo

import (
	"strings"
	"time"

	"zenvor/internal/domain/intake"
)

// SubmitRequest represents a public "book demo" submission
type SubmitRequest struct {
	FullName        string  `json:"full_name" validate:"required,min=2,max=120"`
	Email           string  `json:"email" validate:"required,max=254,emailaddr"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=6,max=30"`
	CompanyName     *string `json:"company_name,omitempty" validate:"omitempty,max=120"`
	JobTitle        *string `json:"job_title,omitempty" validate:"omitempty,max=120"`
	ServiceInterest *string `json:"service_interest,omitempty" validate:"omitempty,oneof=communication_ai sales_ai support_ai knowledge_ai scheduling_ai data_ai automation_ai internal_assistant_ai decision_support_ai full_platform not_sure"`
	Message         *string `json:"message,omitempty" validate:"omitempty,max=2000"`
	ReferralSource  *string `json:"referral_source,omitempty" validate:"omitempty,max=200"`
}

func (r SubmitRequest) normalized() SubmitRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = intake.NormalizeEmail(r.Email)
	r.Phone = intake.OptionalString(r.Phone)
	r.CompanyName = intake.OptionalString(r.CompanyName)
	r.JobTitle = intake.OptionalString(r.JobTitle)
	r.ServiceInterest = intake.OptionalString(r.ServiceInterest)
	r.Message = intake.OptionalString(r.Message)
	r.ReferralSource = intake.OptionalString(r.ReferralSource)
	return r
}

func (r SubmitRequest) toRequest(now time.Time) *Request {
	return &Request{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		CompanyName:     r.CompanyName,
		JobTitle:        r.JobTitle,
		ServiceInterest: r.ServiceInterest,
		Message:         r.Message,
		ReferralSource:  r.ReferralSource,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateStatusRequest represents a triage status change. Omitted
// assigned_to / internal_note clear the stored values.
type UpdateStatusRequest struct {
	ID           string  `json:"-" validate:"required"`
	Status       Status  `json:"status" validate:"required,oneof=pending contacted scheduled completed no_show rejected"`
	AssignedTo   *string `json:"assigned_to,omitempty" validate:"omitempty,max=120"`
	InternalNote *string `json:"internal_note,omitempty"`
}

// ListQuery filters the triage listing. Limit 0 means the default page size.
type ListQuery struct {
	Status Status `form:"status" json:"status,omitempty" validate:"omitempty,oneof=pending contacted scheduled completed no_show rejected"`
	Limit  int    `form:"limit" json:"limit,omitempty" validate:"gte=1,lte=200"`
	Offset int    `form:"offset" json:"offset,omitempty" validate:"gte=0"`
}

func (q ListQuery) withDefaults() ListQuery {
	if q.Limit == 0 {
		q.Limit = intake.DefaultListLimit
	}
	return q
}

// StatsResponse holds the number of demo requests per status
type StatsResponse map[Status]int
