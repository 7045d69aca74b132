package models

import (
	"time"

	"gorm.io/gorm"
)

// Risk represents a tracked organizational risk with its qualitative
// assessment and treatment decision
type Risk struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"` // e.g. RSK-001
	WBS       string         `gorm:"index" json:"wbs"`                 // work breakdown structure reference

	// Identification
	Source       RiskSource   `gorm:"type:varchar(30);not null" json:"source"`
	Category     RiskCategory `gorm:"type:varchar(30);not null" json:"category"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Causes       string       `gorm:"type:text" json:"causes"`
	Consequences string       `gorm:"type:text" json:"consequences"`
	ImpactType   string       `json:"impact_type,omitempty"`

	// Qualitative assessment. Criticality is derived from probability and
	// impact, never set directly by callers.
	Probability Probability `gorm:"type:varchar(20);not null" json:"probability"`
	Impact      Impact      `gorm:"type:varchar(20);not null" json:"impact"`
	Criticality Criticality `gorm:"type:varchar(20);not null;index" json:"criticality"`

	// Treatment
	SuggestedResponse ResponseType `gorm:"type:varchar(20)" json:"suggested_response,omitempty"`
	AdoptedResponse   ResponseType `gorm:"type:varchar(20)" json:"adopted_response,omitempty"`

	// Status. Active=false is the soft-delete state; plans of an inactive
	// risk drop out of reporting but are never destroyed.
	Active       bool       `gorm:"default:true;index" json:"active"`
	Approved     bool       `gorm:"default:false" json:"approved"`
	IdentifiedAt time.Time  `json:"identified_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`

	// Audit
	CreatedByID uint  `gorm:"not null" json:"created_by_id"`
	UpdatedByID *uint `json:"updated_by_id,omitempty"`

	// Relationships
	CreatedBy   User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	ActionPlans []ActionPlan `gorm:"foreignKey:RiskID" json:"action_plans,omitempty"`
}

// RiskAssessment records a change to a risk's qualitative assessment so
// criticality history survives updates
type RiskAssessment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	RiskID    uint           `gorm:"not null;index" json:"risk_id"`

	PreviousProbability Probability `gorm:"type:varchar(20)" json:"previous_probability"`
	NewProbability      Probability `gorm:"type:varchar(20)" json:"new_probability"`
	PreviousImpact      Impact      `gorm:"type:varchar(20)" json:"previous_impact"`
	NewImpact           Impact      `gorm:"type:varchar(20)" json:"new_impact"`
	PreviousCriticality Criticality `gorm:"type:varchar(20)" json:"previous_criticality"`
	NewCriticality      Criticality `gorm:"type:varchar(20)" json:"new_criticality"`

	Reason       string `gorm:"type:text" json:"reason"`
	AssessedByID uint   `json:"assessed_by_id"`

	Risk Risk `gorm:"foreignKey:RiskID" json:"risk,omitempty"`
}

// ReferenceScale describes one level of the probability or impact scale,
// seeded once and served to clients building assessment forms
type ReferenceScale struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ScaleType    string    `gorm:"not null;index" json:"scale_type"` // "probability" or "impact"
	Level        string    `gorm:"not null" json:"level"`
	NumericValue int       `gorm:"not null" json:"numeric_value"`
	Description  string    `gorm:"type:text" json:"description"`
	Active       bool      `gorm:"default:true" json:"active"`
}
