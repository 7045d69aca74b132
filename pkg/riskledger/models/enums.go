package models

// Criticality is the ordinal risk rating derived from probability and impact
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// Probability is the qualitative likelihood rating (1-5 scale)
type Probability string

const (
	ProbabilityVeryLow  Probability = "very_low"
	ProbabilityLow      Probability = "low"
	ProbabilityMedium   Probability = "medium"
	ProbabilityHigh     Probability = "high"
	ProbabilityVeryHigh Probability = "very_high"
)

// Impact is the qualitative impact rating (1-5 scale)
type Impact string

const (
	ImpactVeryLow  Impact = "very_low"
	ImpactLow      Impact = "low"
	ImpactModerate Impact = "moderate"
	ImpactHigh     Impact = "high"
	ImpactVeryHigh Impact = "very_high"
)

// RiskSource identifies where a risk originates
type RiskSource string

const (
	SourceLegal         RiskSource = "legal"
	SourceOperational   RiskSource = "operational"
	SourceStrategic     RiskSource = "strategic"
	SourceFinancial     RiskSource = "financial"
	SourceTechnological RiskSource = "technological"
	SourceReputational  RiskSource = "reputational"
	SourceRegulatory    RiskSource = "regulatory"
)

// RiskCategory is the organizational category a risk belongs to.
// Every risk belongs to exactly one category.
type RiskCategory string

const (
	CategoryCompliance          RiskCategory = "compliance"
	CategoryProcess             RiskCategory = "process"
	CategoryPeople              RiskCategory = "people"
	CategoryTechnology          RiskCategory = "technology"
	CategoryExternalEnvironment RiskCategory = "external_environment"
)

// ResponseType is the treatment strategy for a risk
type ResponseType string

const (
	ResponseAvoid    ResponseType = "avoid"
	ResponseMitigate ResponseType = "mitigate"
	ResponseTransfer ResponseType = "transfer"
	ResponseAccept   ResponseType = "accept"
	ResponseShare    ResponseType = "share"
)

// ActionStatus is the lifecycle state of an action plan
type ActionStatus string

const (
	ActionNotStarted ActionStatus = "not_started"
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
	ActionDelayed    ActionStatus = "delayed"
	ActionCancelled  ActionStatus = "cancelled"
)

var probabilityValues = map[Probability]int{
	ProbabilityVeryLow:  1,
	ProbabilityLow:      2,
	ProbabilityMedium:   3,
	ProbabilityHigh:     4,
	ProbabilityVeryHigh: 5,
}

var impactValues = map[Impact]int{
	ImpactVeryLow:  1,
	ImpactLow:      2,
	ImpactModerate: 3,
	ImpactHigh:     4,
	ImpactVeryHigh: 5,
}

// Valid reports whether c is one of the fixed criticality values
func (c Criticality) Valid() bool {
	switch c {
	case CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical:
		return true
	}
	return false
}

// Valid reports whether p is a known probability level
func (p Probability) Valid() bool {
	_, ok := probabilityValues[p]
	return ok
}

// Valid reports whether i is a known impact level
func (i Impact) Valid() bool {
	_, ok := impactValues[i]
	return ok
}

// Valid reports whether s is a known risk source
func (s RiskSource) Valid() bool {
	switch s {
	case SourceLegal, SourceOperational, SourceStrategic, SourceFinancial,
		SourceTechnological, SourceReputational, SourceRegulatory:
		return true
	}
	return false
}

// Valid reports whether c is a known risk category
func (c RiskCategory) Valid() bool {
	switch c {
	case CategoryCompliance, CategoryProcess, CategoryPeople,
		CategoryTechnology, CategoryExternalEnvironment:
		return true
	}
	return false
}

// Valid reports whether r is a known response type
func (r ResponseType) Valid() bool {
	switch r {
	case ResponseAvoid, ResponseMitigate, ResponseTransfer, ResponseAccept, ResponseShare:
		return true
	}
	return false
}

// Valid reports whether s is a known action status
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionNotStarted, ActionInProgress, ActionCompleted, ActionDelayed, ActionCancelled:
		return true
	}
	return false
}

// Score returns the 1-5 numeric value for a probability level.
// Unknown values score as the midpoint.
func (p Probability) Score() int {
	if v, ok := probabilityValues[p]; ok {
		return v
	}
	return 3
}

// Score returns the 1-5 numeric value for an impact level
func (i Impact) Score() int {
	if v, ok := impactValues[i]; ok {
		return v
	}
	return 3
}

// DeriveCriticality buckets the probability x impact product into a
// criticality rating: <=4 low, <=9 medium, <=16 high, else critical.
func DeriveCriticality(p Probability, i Impact) Criticality {
	product := p.Score() * i.Score()
	switch {
	case product <= 4:
		return CriticalityLow
	case product <= 9:
		return CriticalityMedium
	case product <= 16:
		return CriticalityHigh
	default:
		return CriticalityCritical
	}
}
