package demo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents demo request status
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusRejected  Status = "rejected"
)

// Pipeline is the display order of demo statuses. Transitions are not restricted.
var Pipeline = []Status{
	StatusPending,
	StatusContacted,
	StatusScheduled,
	StatusCompleted,
	StatusNoShow,
	StatusRejected,
}

func (s Status) Valid() bool {
	for _, p := range Pipeline {
		if s == p {
			return true
		}
	}
	return false
}

// ServiceInterest is the product area a visitor wants to see
type ServiceInterest string

const (
	InterestCommunication     ServiceInterest = "communication_ai"
	InterestSales             ServiceInterest = "sales_ai"
	InterestSupport           ServiceInterest = "support_ai"
	InterestKnowledge         ServiceInterest = "knowledge_ai"
	InterestScheduling        ServiceInterest = "scheduling_ai"
	InterestData              ServiceInterest = "data_ai"
	InterestAutomation        ServiceInterest = "automation_ai"
	InterestInternalAssistant ServiceInterest = "internal_assistant_ai"
	InterestDecisionSupport   ServiceInterest = "decision_support_ai"
	InterestFullPlatform      ServiceInterest = "full_platform"
	InterestNotSure           ServiceInterest = "not_sure"
)

var ServiceInterests = []ServiceInterest{
	InterestCommunication, InterestSales, InterestSupport, InterestKnowledge,
	InterestScheduling, InterestData, InterestAutomation, InterestInternalAssistant,
	InterestDecisionSupport, InterestFullPlatform, InterestNotSure,
}

// Request is a "book demo" form submission.
type Request struct {
	ID string `json:"id" gorm:"type:varchar(36);primaryKey"`

	FullName        string  `json:"full_name" gorm:"type:varchar(120);not null"`
	Email           string  `json:"email" gorm:"type:varchar(254);not null;index"`
	Phone           *string `json:"phone" gorm:"type:varchar(30)"`
	CompanyName     *string `json:"company_name" gorm:"type:varchar(120)"`
	JobTitle        *string `json:"job_title" gorm:"type:varchar(120)"`
	ServiceInterest *string `json:"service_interest" gorm:"type:varchar(32)"`
	Message         *string `json:"message" gorm:"type:varchar(2000)"`
	ReferralSource  *string `json:"referral_source" gorm:"type:varchar(200)"`

	Status       Status  `json:"status" gorm:"type:varchar(32);not null;default:pending;index"`
	AssignedTo   *string `json:"assigned_to" gorm:"type:varchar(120)"`
	InternalNote *string `json:"internal_note" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

func (Request) TableName() string {
	return "demo_requests"
}

func (r *Request) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}
