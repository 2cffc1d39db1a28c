package lead

import (
	"strings"
	"time"

	"zenvor/internal/domain/intake"
)

// SubmitRequest represents a public "get started" submission
type SubmitRequest struct {
	// Step 1: contact
	FullName    string      `json:"full_name" validate:"required,min=2,max=120"`
	Email       string      `json:"email" validate:"required,max=254,emailaddr"`
	CompanyName string      `json:"company_name" validate:"required,max=120"`
	CompanySize CompanySize `json:"company_size" validate:"required,oneof=1_10 11_50 51_200 201_plus"`

	// Step 2: stack
	CurrentTools []string `json:"current_tools,omitempty" validate:"omitempty,max=20,dive,required,max=120,nocomma"`

	// Step 3: challenge
	PainPoint         *string `json:"pain_point,omitempty" validate:"omitempty,oneof=too_many_messages manual_scheduling data_entry lead_qualification internal_knowledge workflow_automation other"`
	PainPointOther    *string `json:"pain_point_other,omitempty" validate:"omitempty,max=300"`
	Budget            *string `json:"budget,omitempty" validate:"omitempty,oneof=under_500 500_1500 1500_5000 5000_plus not_sure"`
	AdditionalContext *string `json:"additional_context,omitempty" validate:"omitempty,max=1000"`
}

// normalized returns a trimmed copy with the email lower-cased and blank
// optional fields dropped.
func (r SubmitRequest) normalized() SubmitRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = intake.NormalizeEmail(r.Email)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.CompanySize = CompanySize(strings.TrimSpace(string(r.CompanySize)))

	if len(r.CurrentTools) > 0 {
		tools := make([]string, 0, len(r.CurrentTools))
		for _, t := range r.CurrentTools {
			tools = append(tools, strings.TrimSpace(t))
		}
		r.CurrentTools = tools
	}

	r.PainPoint = intake.OptionalString(r.PainPoint)
	r.PainPointOther = intake.OptionalString(r.PainPointOther)
	r.Budget = intake.OptionalString(r.Budget)
	r.AdditionalContext = intake.OptionalString(r.AdditionalContext)
	return r
}

func (r SubmitRequest) toLead(now time.Time) *Lead {
	var tools *string
	if len(r.CurrentTools) > 0 {
		joined := strings.Join(r.CurrentTools, toolSeparator)
		tools = &joined
	}
	return &Lead{
		FullName:          r.FullName,
		Email:             r.Email,
		CompanyName:       r.CompanyName,
		CompanySize:       r.CompanySize,
		CurrentTools:      tools,
		PainPoint:         r.PainPoint,
		PainPointOther:    r.PainPointOther,
		Budget:            r.Budget,
		AdditionalContext: r.AdditionalContext,
		Status:            StatusNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// UpdateStatusRequest represents a triage status change. Omitted
// assigned_to / internal_note clear the stored values.
type UpdateStatusRequest struct {
	ID           string  `json:"-" validate:"required"`
	Status       Status  `json:"status" validate:"required,oneof=new contacted qualified proposal_sent closed_won closed_lost"`
	AssignedTo   *string `json:"assigned_to,omitempty" validate:"omitempty,max=120"`
	InternalNote *string `json:"internal_note,omitempty"`
}

// ListQuery filters the triage listing. Limit 0 means the default page size.
type ListQuery struct {
	Status Status `form:"status" json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified proposal_sent closed_won closed_lost"`
	Limit  int    `form:"limit" json:"limit,omitempty" validate:"gte=1,lte=200"`
	Offset int    `form:"offset" json:"offset,omitempty" validate:"gte=0"`
}

func (q ListQuery) withDefaults() ListQuery {
	if q.Limit == 0 {
		q.Limit = intake.DefaultListLimit
	}
	return q
}

// StatsResponse holds the number of leads per status
type StatsResponse map[Status]int
