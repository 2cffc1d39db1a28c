package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents lead status
type Status string

const (
	StatusNew          Status = "new"
	StatusContacted    Status = "contacted"
	StatusQualified    Status = "qualified"
	StatusProposalSent Status = "proposal_sent"
	StatusClosedWon    Status = "closed_won"
	StatusClosedLost   Status = "closed_lost"
)

// Pipeline is the order the triage view draws statuses in. It is a display
// hint only: any status may follow any other.
var Pipeline = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusProposalSent,
	StatusClosedWon,
	StatusClosedLost,
}

// Valid reports whether s is a known lead status.
func (s Status) Valid() bool {
	for _, p := range Pipeline {
		if s == p {
			return true
		}
	}
	return false
}

type CompanySize string

const (
	CompanySize1To10   CompanySize = "1_10"
	CompanySize11To50  CompanySize = "11_50"
	CompanySize51To200 CompanySize = "51_200"
	CompanySize201Plus CompanySize = "201_plus"
)

var CompanySizes = []CompanySize{CompanySize1To10, CompanySize11To50, CompanySize51To200, CompanySize201Plus}

type PainPoint string

const (
	PainTooManyMessages    PainPoint = "too_many_messages"
	PainManualScheduling   PainPoint = "manual_scheduling"
	PainDataEntry          PainPoint = "data_entry"
	PainLeadQualification  PainPoint = "lead_qualification"
	PainInternalKnowledge  PainPoint = "internal_knowledge"
	PainWorkflowAutomation PainPoint = "workflow_automation"
	PainOther              PainPoint = "other"
)

var PainPoints = []PainPoint{
	PainTooManyMessages, PainManualScheduling, PainDataEntry,
	PainLeadQualification, PainInternalKnowledge, PainWorkflowAutomation, PainOther,
}

type Budget string

const (
	BudgetUnder500   Budget = "under_500"
	Budget500To1500  Budget = "500_1500"
	Budget1500To5000 Budget = "1500_5000"
	Budget5000Plus   Budget = "5000_plus"
	BudgetNotSure    Budget = "not_sure"
)

var Budgets = []Budget{BudgetUnder500, Budget500To1500, Budget1500To5000, Budget5000Plus, BudgetNotSure}

// toolSeparator joins the tool list into one column.
const toolSeparator = ","

// Lead is a "get started" wizard submission.
type Lead struct {
	ID string `json:"id" gorm:"type:varchar(36);primaryKey"`

	// Contact
	FullName    string      `json:"full_name" gorm:"type:varchar(120);not null"`
	Email       string      `json:"email" gorm:"type:varchar(254);not null;index"`
	CompanyName string      `json:"company_name" gorm:"type:varchar(120);not null"`
	CompanySize CompanySize `json:"company_size" gorm:"type:varchar(16);not null"`

	// Current stack, comma-joined
	CurrentTools *string `json:"current_tools"`

	// Challenge
	PainPoint         *string `json:"pain_point" gorm:"type:varchar(32)"`
	PainPointOther    *string `json:"pain_point_other" gorm:"type:varchar(300)"`
	Budget            *string `json:"budget" gorm:"type:varchar(16)"`
	AdditionalContext *string `json:"additional_context" gorm:"type:varchar(1000)"`

	// Internal
	Status       Status  `json:"status" gorm:"type:varchar(32);not null;default:new;index"`
	AssignedTo   *string `json:"assigned_to" gorm:"type:varchar(120)"`
	InternalNote *string `json:"internal_note" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

func (Lead) TableName() string {
	return "get_started_leads"
}

func (l *Lead) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Tools splits the stored tool column back into a list.
func (l *Lead) Tools() []string {
	if l.CurrentTools == nil || *l.CurrentTools == "" {
		return nil
	}
	return strings.Split(*l.CurrentTools, toolSeparator)
}

// IsNew returns true if lead is new
func (l *Lead) IsNew() bool {
	return l.Status == StatusNew
}
