package risks

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Handler handles risk-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new risks handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ValidationError names the field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CreateRiskRequest represents the request to create a risk
type CreateRiskRequest struct {
	WBS               string `json:"wbs"`
	Source            string `json:"source" binding:"required"`
	Category          string `json:"category" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description" binding:"required"`
	Causes            string `json:"causes"`
	Consequences      string `json:"consequences"`
	ImpactType        string `json:"impact_type"`
	Probability       string `json:"probability" binding:"required"`
	Impact            string `json:"impact" binding:"required"`
	SuggestedResponse string `json:"suggested_response"`
	AdoptedResponse   string `json:"adopted_response"`
}

// UpdateRiskRequest represents the request to update a risk.
// Criticality is never accepted directly; it is derived from probability
// and impact.
type UpdateRiskRequest struct {
	WBS               *string `json:"wbs"`
	Source            *string `json:"source"`
	Category          *string `json:"category"`
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Causes            *string `json:"causes"`
	Consequences      *string `json:"consequences"`
	ImpactType        *string `json:"impact_type"`
	Probability       *string `json:"probability"`
	Impact            *string `json:"impact"`
	SuggestedResponse *string `json:"suggested_response"`
	AdoptedResponse   *string `json:"adopted_response"`
	Approved          *bool   `json:"approved"`
	AssessmentReason  string  `json:"assessment_reason"`
}

// RiskResponse represents a risk in API responses
type RiskResponse struct {
	ID                uint   `json:"id"`
	Code              string `json:"code"`
	WBS               string `json:"wbs"`
	Source            string `json:"source"`
	Category          string `json:"category"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Causes            string `json:"causes,omitempty"`
	Consequences      string `json:"consequences,omitempty"`
	ImpactType        string `json:"impact_type,omitempty"`
	Probability       string `json:"probability"`
	Impact            string `json:"impact"`
	Criticality       string `json:"criticality"`
	SuggestedResponse string `json:"suggested_response,omitempty"`
	AdoptedResponse   string `json:"adopted_response,omitempty"`
	Active            bool   `json:"active"`
	Approved          bool   `json:"approved"`
	IdentifiedAt      string `json:"identified_at"`
	CreatedByID       uint   `json:"created_by_id"`
	PlanCount         int64  `json:"plan_count,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ListRisksResponse is a filtered page of risks. Total is the full
// filtered count, not the page size.
type ListRisksResponse struct {
	Items  []RiskResponse `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func riskToResponse(risk models.Risk) RiskResponse {
	return RiskResponse{
		ID:                risk.ID,
		Code:              risk.Code,
		WBS:               risk.WBS,
		Source:            string(risk.Source),
		Category:          string(risk.Category),
		Title:             risk.Title,
		Description:       risk.Description,
		Causes:            risk.Causes,
		Consequences:      risk.Consequences,
		ImpactType:        risk.ImpactType,
		Probability:       string(risk.Probability),
		Impact:            string(risk.Impact),
		Criticality:       string(risk.Criticality),
		SuggestedResponse: string(risk.SuggestedResponse),
		AdoptedResponse:   string(risk.AdoptedResponse),
		Active:            risk.Active,
		Approved:          risk.Approved,
		IdentifiedAt:      risk.IdentifiedAt.Format(time.RFC3339),
		CreatedByID:       risk.CreatedByID,
		CreatedAt:         risk.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         risk.UpdatedAt.Format(time.RFC3339),
	}
}

func validateAssessment(probability, impact string) error {
	if !models.Probability(probability).Valid() {
		return &ValidationError{"probability", "unknown probability level"}
	}
	if !models.Impact(impact).Valid() {
		return &ValidationError{"impact", "unknown impact level"}
	}
	return nil
}

func validateClassification(source, category string) error {
	if !models.RiskSource(source).Valid() {
		return &ValidationError{"source", "unknown risk source"}
	}
	if !models.RiskCategory(category).Valid() {
		return &ValidationError{"category", "unknown risk category"}
	}
	return nil
}

func validateResponse(field, value string) error {
	if value != "" && !models.ResponseType(value).Valid() {
		return &ValidationError{field, "unknown response type"}
	}
	return nil
}

// nextRiskCode generates the next sequential RSK-NNN code
func nextRiskCode(tx *gorm.DB) (string, error) {
	var maxID *uint
	if err := tx.Model(&models.Risk{}).Unscoped().Select("MAX(id)").Scan(&maxID).Error; err != nil {
		return "", err
	}
	next := uint(1)
	if maxID != nil {
		next = *maxID + 1
	}
	return fmt.Sprintf("RSK-%03d", next), nil
}

// List returns risks matching the conjunction of the provided filters
// @Summary List risks
// @Description List risks with filters and pagination. Total reflects the filtered count.
// @Tags risks
// @Produce json
// @Param criticality query string false "Comma-separated criticality set"
// @Param source query string false "Risk source"
// @Param category query string false "Risk category"
// @Param wbs query string false "WBS substring"
// @Param q query string false "Text search over title, description, causes, consequences"
// @Param active query bool false "Active flag (default true)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListRisksResponse
// @Security BearerAuth
// @Router /risks [get]
func (h *Handler) List(c *gin.Context) {
	query := h.db.Model(&models.Risk{})

	// Filters are conjunctive: every provided one narrows the result
	if raw := c.Query("criticality"); raw != "" {
		set := strings.Split(raw, ",")
		for _, v := range set {
			if !models.Criticality(strings.TrimSpace(v)).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "criticality: unknown criticality value"})
				return
			}
		}
		for i := range set {
			set[i] = strings.TrimSpace(set[i])
		}
		query = query.Where("criticality IN ?", set)
	}
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if wbs := c.Query("wbs"); wbs != "" {
		query = query.Where("wbs LIKE ?", "%"+wbs+"%")
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR causes LIKE ? OR consequences LIKE ?",
			like, like, like, like,
		)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	} else {
		query = query.Where("active = ?", true)
	}
	if from := c.Query("identified_from"); from != "" {
		if t, err := parseDate(from); err == nil {
			query = query.Where("identified_at >= ?", t)
		}
	}
	if to := c.Query("identified_to"); to != "" {
		if t, err := parseDate(to); err == nil {
			query = query.Where("identified_at <= ?", t)
		}
	}

	// Count before pagination so total covers the whole filtered set
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count risks"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sortField := c.DefaultQuery("sort", "id")
	switch sortField {
	case "id", "code", "criticality", "identified_at", "created_at", "updated_at", "title":
	default:
		sortField = "id"
	}
	direction := "ASC"
	if c.DefaultQuery("dir", "asc") == "desc" {
		direction = "DESC"
	}

	var risks []models.Risk
	if err := query.Order(sortField + " " + direction).Limit(limit).Offset(offset).Find(&risks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risks"})
		return
	}

	items := make([]RiskResponse, len(risks))
	for i, risk := range risks {
		items[i] = riskToResponse(risk)
	}

	c.JSON(http.StatusOK, ListRisksResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Create creates a new risk
// @Summary Create a risk
// @Description Register a new risk; the code is generated and criticality derived from probability and impact
// @Tags risks
// @Accept json
// @Produce json
// @Param request body CreateRiskRequest true "Risk details"
// @Success 201 {object} RiskResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /risks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateClassification(req.Source, req.Category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateAssessment(req.Probability, req.Impact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateResponse("suggested_response", req.SuggestedResponse); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateResponse("adopted_response", req.AdoptedResponse); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	probability := models.Probability(req.Probability)
	impact := models.Impact(req.Impact)

	risk := models.Risk{
		WBS:               req.WBS,
		Source:            models.RiskSource(req.Source),
		Category:          models.RiskCategory(req.Category),
		Title:             req.Title,
		Description:       req.Description,
		Causes:            req.Causes,
		Consequences:      req.Consequences,
		ImpactType:        req.ImpactType,
		Probability:       probability,
		Impact:            impact,
		Criticality:       models.DeriveCriticality(probability, impact),
		SuggestedResponse: models.ResponseType(req.SuggestedResponse),
		AdoptedResponse:   models.ResponseType(req.AdoptedResponse),
		Active:            true,
		IdentifiedAt:      time.Now(),
		CreatedByID:       userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		code, err := nextRiskCode(tx)
		if err != nil {
			return err
		}
		risk.Code = code
		return tx.Create(&risk).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create risk"})
		return
	}

	c.JSON(http.StatusCreated, riskToResponse(risk))
}

// Get returns a single risk with its action plans
// @Summary Get a risk
// @Tags risks
// @Produce json
// @Param id path int true "Risk ID"
// @Success 200 {object} RiskResponse
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	resp := riskToResponse(risk)
	h.db.Model(&models.ActionPlan{}).Where("risk_id = ?", risk.ID).Count(&resp.PlanCount)

	c.JSON(http.StatusOK, resp)
}

// Similar returns active risks resembling the given one: same source,
// same category, or an identical probability/impact assessment
// @Summary List similar risks
// @Tags risks
// @Produce json
// @Param id path int true "Risk ID"
// @Param limit query int false "Maximum results (default 5)"
// @Success 200 {array} RiskResponse
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id}/similar [get]
func (h *Handler) Similar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	limit := 5
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "5")); err == nil && v > 0 {
		limit = v
	}

	var similar []models.Risk
	err = h.db.Where("id <> ? AND active = ?", risk.ID, true).
		Where("source = ? OR category = ? OR (probability = ? AND impact = ?)",
			risk.Source, risk.Category, risk.Probability, risk.Impact).
		Limit(limit).
		Find(&similar).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar risks"})
		return
	}

	items := make([]RiskResponse, len(similar))
	for i, r := range similar {
		items[i] = riskToResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

// Update updates a risk, recomputing criticality and recording an
// assessment history row when the qualitative assessment changes
// @Summary Update a risk
// @Tags risks
// @Accept json
// @Produce json
// @Param id path int true "Risk ID"
// @Param request body UpdateRiskRequest true "Fields to update"
// @Success 200 {object} RiskResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	var req UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Source != nil || req.Category != nil {
		source := string(risk.Source)
		category := string(risk.Category)
		if req.Source != nil {
			source = *req.Source
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := validateClassification(source, category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Probability != nil && !models.Probability(*req.Probability).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "probability: unknown probability level"})
		return
	}
	if req.Impact != nil && !models.Impact(*req.Impact).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "impact: unknown impact level"})
		return
	}
	if req.SuggestedResponse != nil {
		if err := validateResponse("suggested_response", *req.SuggestedResponse); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.AdoptedResponse != nil {
		if err := validateResponse("adopted_response", *req.AdoptedResponse); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	assessmentChanged := req.Probability != nil || req.Impact != nil
	previous := risk

	if req.WBS != nil {
		risk.WBS = *req.WBS
	}
	if req.Source != nil {
		risk.Source = models.RiskSource(*req.Source)
	}
	if req.Category != nil {
		risk.Category = models.RiskCategory(*req.Category)
	}
	if req.Title != nil {
		risk.Title = *req.Title
	}
	if req.Description != nil {
		risk.Description = *req.Description
	}
	if req.Causes != nil {
		risk.Causes = *req.Causes
	}
	if req.Consequences != nil {
		risk.Consequences = *req.Consequences
	}
	if req.ImpactType != nil {
		risk.ImpactType = *req.ImpactType
	}
	if req.Probability != nil {
		risk.Probability = models.Probability(*req.Probability)
	}
	if req.Impact != nil {
		risk.Impact = models.Impact(*req.Impact)
	}
	if req.SuggestedResponse != nil {
		risk.SuggestedResponse = models.ResponseType(*req.SuggestedResponse)
	}
	if req.AdoptedResponse != nil {
		risk.AdoptedResponse = models.ResponseType(*req.AdoptedResponse)
	}
	if req.Approved != nil {
		risk.Approved = *req.Approved
		if *req.Approved && risk.ApprovedAt == nil {
			now := time.Now()
			risk.ApprovedAt = &now
		}
	}

	if assessmentChanged {
		risk.Criticality = models.DeriveCriticality(risk.Probability, risk.Impact)
	}
	risk.UpdatedByID = &userID

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if assessmentChanged {
			reason := req.AssessmentReason
			if reason == "" {
				reason = "Assessment updated"
			}
			assessment := models.RiskAssessment{
				RiskID:              risk.ID,
				PreviousProbability: previous.Probability,
				NewProbability:      risk.Probability,
				PreviousImpact:      previous.Impact,
				NewImpact:           risk.Impact,
				PreviousCriticality: previous.Criticality,
				NewCriticality:      risk.Criticality,
				Reason:              reason,
				AssessedByID:        userID,
			}
			if err := tx.Create(&assessment).Error; err != nil {
				return err
			}
		}
		return tx.Save(&risk).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update risk"})
		return
	}

	c.JSON(http.StatusOK, riskToResponse(risk))
}

// Delete soft-deletes a risk. Its action plans are retained but drop out
// of reporting through the risk's active flag.
// @Summary Delete a risk
// @Tags risks
// @Produce json
// @Param id path int true "Risk ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	risk.Active = false
	risk.UpdatedByID = &userID
	if err := h.db.Save(&risk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete risk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Risk deactivated"})
}

// AssessmentResponse represents an assessment history row
type AssessmentResponse struct {
	ID                  uint   `json:"id"`
	RiskID              uint   `json:"risk_id"`
	PreviousProbability string `json:"previous_probability"`
	NewProbability      string `json:"new_probability"`
	PreviousImpact      string `json:"previous_impact"`
	NewImpact           string `json:"new_impact"`
	PreviousCriticality string `json:"previous_criticality"`
	NewCriticality      string `json:"new_criticality"`
	Reason              string `json:"reason"`
	AssessedByID        uint   `json:"assessed_by_id"`
	CreatedAt           string `json:"created_at"`
}

// ListAssessments returns a risk's assessment history
// @Summary List assessment history
// @Tags risks
// @Produce json
// @Param id path int true "Risk ID"
// @Success 200 {array} AssessmentResponse
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id}/assessments [get]
func (h *Handler) ListAssessments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	var assessments []models.RiskAssessment
	if err := h.db.Where("risk_id = ?", id).Order("created_at DESC").Find(&assessments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}

	responses := make([]AssessmentResponse, len(assessments))
	for i, a := range assessments {
		responses[i] = AssessmentResponse{
			ID:                  a.ID,
			RiskID:              a.RiskID,
			PreviousProbability: string(a.PreviousProbability),
			NewProbability:      string(a.NewProbability),
			PreviousImpact:      string(a.PreviousImpact),
			NewImpact:           string(a.NewImpact),
			PreviousCriticality: string(a.PreviousCriticality),
			NewCriticality:      string(a.NewCriticality),
			Reason:              a.Reason,
			AssessedByID:        a.AssessedByID,
			CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, responses)
}

// FilterOptions returns the distinct values in use for each filterable field
// @Summary List filter options
// @Tags risks
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /risks/filters [get]
func (h *Handler) FilterOptions(c *gin.Context) {
	var sources, categories, criticalities []string
	base := h.db.Model(&models.Risk{}).Where("active = ?", true)
	base.Session(&gorm.Session{}).Distinct("source").Pluck("source", &sources)
	base.Session(&gorm.Session{}).Distinct("category").Pluck("category", &categories)
	base.Session(&gorm.Session{}).Distinct("criticality").Pluck("criticality", &criticalities)

	c.JSON(http.StatusOK, gin.H{
		"sources":       sources,
		"categories":    categories,
		"criticalities": criticalities,
	})
}

// RegisterRoutes registers risk routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/risks", h.List)
	rg.POST("/risks", h.Create)
	rg.GET("/risks/filters", h.FilterOptions)
	rg.GET("/risks/:id", h.Get)
	rg.PUT("/risks/:id", h.Update)
	rg.DELETE("/risks/:id", h.Delete)
	rg.GET("/risks/:id/assessments", h.ListAssessments)
	rg.GET("/risks/:id/similar", h.Similar)
}

// parseDate accepts RFC3339 timestamps or plain dates
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}
