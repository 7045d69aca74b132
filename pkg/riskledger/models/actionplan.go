package models

import (
	"time"

	"gorm.io/gorm"
)

// ActionPlan represents a mitigation task tied to one risk
type ActionPlan struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	RiskID    uint           `gorm:"not null;index" json:"risk_id"`

	Description     string `gorm:"type:text;not null" json:"description"`
	ResponsibleArea string `json:"responsible_area,omitempty"`
	HowToImplement  string `gorm:"type:text" json:"how_to_implement,omitempty"`

	// Responsible user is a weak reference: deactivating or removing the
	// user must not touch historical plans, so it is nullable and never
	// cascaded.
	ResponsibleID *uint `gorm:"index" json:"responsible_id,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   time.Time  `gorm:"not null;index" json:"due_date"`

	Status          ActionStatus `gorm:"type:varchar(20);default:'not_started';index" json:"status"`
	PercentComplete int          `gorm:"default:0" json:"percent_complete"`
	Overdue         bool         `gorm:"default:false" json:"overdue"`

	// Audit
	CreatedByID uint  `gorm:"not null" json:"created_by_id"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`

	// Relationships
	Risk        Risk  `gorm:"foreignKey:RiskID" json:"risk,omitempty"`
	Responsible *User `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`
	CreatedBy   User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// IsOverdue reports whether the plan is past its due date and still open
func (p *ActionPlan) IsOverdue(now time.Time) bool {
	if p.Status == ActionCompleted || p.Status == ActionCancelled {
		return false
	}
	return now.After(p.DueDate)
}

// PlanUpdate records a progress change on an action plan
type PlanUpdate struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	ActionPlanID uint           `gorm:"not null;index" json:"action_plan_id"`

	PreviousStatus  ActionStatus `gorm:"type:varchar(20)" json:"previous_status"`
	NewStatus       ActionStatus `gorm:"type:varchar(20)" json:"new_status"`
	PreviousPercent int          `json:"previous_percent"`
	NewPercent      int          `json:"new_percent"`

	Note        string `gorm:"type:text" json:"note"`
	UpdatedByID uint   `json:"updated_by_id"`

	ActionPlan ActionPlan `gorm:"foreignKey:ActionPlanID" json:"action_plan,omitempty"`
}
