package actionplans

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Handler handles action plan requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new action plans handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePlanRequest represents the request to create an action plan
type CreatePlanRequest struct {
	Description     string `json:"description" binding:"required"`
	ResponsibleArea string `json:"responsible_area"`
	ResponsibleID   *uint  `json:"responsible_id"`
	HowToImplement  string `json:"how_to_implement"`
	StartDate       string `json:"start_date"`
	DueDate         string `json:"due_date" binding:"required"`
}

// UpdatePlanRequest represents the request to update an action plan
type UpdatePlanRequest struct {
	Description     *string `json:"description"`
	ResponsibleArea *string `json:"responsible_area"`
	ResponsibleID   *uint   `json:"responsible_id"`
	HowToImplement  *string `json:"how_to_implement"`
	StartDate       *string `json:"start_date"`
	DueDate         *string `json:"due_date"`
	Status          *string `json:"status"`
	PercentComplete *int    `json:"percent_complete"`
	Note            string  `json:"note"`
}

// PlanResponse represents an action plan in API responses
type PlanResponse struct {
	ID              uint   `json:"id"`
	RiskID          uint   `json:"risk_id"`
	Description     string `json:"description"`
	ResponsibleArea string `json:"responsible_area,omitempty"`
	ResponsibleID   *uint  `json:"responsible_id,omitempty"`
	HowToImplement  string `json:"how_to_implement,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	DueDate         string `json:"due_date"`
	Status          string `json:"status"`
	PercentComplete int    `json:"percent_complete"`
	Overdue         bool   `json:"overdue"`
	CreatedByID     uint   `json:"created_by_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func planToResponse(plan models.ActionPlan) PlanResponse {
	resp := PlanResponse{
		ID:              plan.ID,
		RiskID:          plan.RiskID,
		Description:     plan.Description,
		ResponsibleArea: plan.ResponsibleArea,
		ResponsibleID:   plan.ResponsibleID,
		HowToImplement:  plan.HowToImplement,
		DueDate:         plan.DueDate.Format("2006-01-02"),
		Status:          string(plan.Status),
		PercentComplete: plan.PercentComplete,
		// Derived at read time; the stored flag only reflects the last write
		Overdue:         plan.IsOverdue(time.Now()),
		CreatedByID:     plan.CreatedByID,
		CreatedAt:       plan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       plan.UpdatedAt.Format(time.RFC3339),
	}
	if plan.StartDate != nil {
		resp.StartDate = plan.StartDate.Format("2006-01-02")
	}
	return resp
}

func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Create creates an action plan under a risk. The risk must exist; a past
// due date is rejected before anything is written.
// @Summary Create an action plan
// @Tags action-plans
// @Accept json
// @Produce json
// @Param id path int true "Risk ID"
// @Param request body CreatePlanRequest true "Plan details"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id}/plans [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	riskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The referenced risk must exist before anything is written
	var risk models.Risk
	if err := h.db.First(&risk, riskID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	dueDate, ok := parseDate(req.DueDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date: invalid date"})
		return
	}
	if dueDate.Before(startOfToday()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date: target date must not be in the past"})
		return
	}

	var startDate *time.Time
	if req.StartDate != "" {
		t, ok := parseDate(req.StartDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: invalid date"})
			return
		}
		startDate = &t
	}

	if req.ResponsibleID != nil {
		var responsible models.User
		if err := h.db.First(&responsible, *req.ResponsibleID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Responsible user not found"})
			return
		}
	}

	plan := models.ActionPlan{
		RiskID:          uint(riskID),
		Description:     req.Description,
		ResponsibleArea: req.ResponsibleArea,
		ResponsibleID:   req.ResponsibleID,
		HowToImplement:  req.HowToImplement,
		StartDate:       startDate,
		DueDate:         dueDate,
		Status:          models.ActionNotStarted,
		CreatedByID:     userID,
	}

	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create action plan"})
		return
	}

	c.JSON(http.StatusCreated, planToResponse(plan))
}

// ListByRisk returns all action plans for a risk
// @Summary List a risk's action plans
// @Tags action-plans
// @Produce json
// @Param id path int true "Risk ID"
// @Success 200 {array} PlanResponse
// @Failure 404 {object} map[string]string "Risk not found"
// @Security BearerAuth
// @Router /risks/{id}/plans [get]
func (h *Handler) ListByRisk(c *gin.Context) {
	riskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid risk ID"})
		return
	}

	var risk models.Risk
	if err := h.db.First(&risk, riskID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	var plans []models.ActionPlan
	if err := h.db.Where("risk_id = ?", riskID).Order("due_date ASC").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch action plans"})
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = planToResponse(plan)
	}

	c.JSON(http.StatusOK, responses)
}

// List returns action plans across risks with optional filters
// @Summary List action plans
// @Tags action-plans
// @Produce json
// @Param risk_id query int false "Risk ID"
// @Param status query string false "Action status"
// @Param responsible_id query int false "Responsible user ID"
// @Param overdue query bool false "Only overdue plans"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} PlanResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *Handler) List(c *gin.Context) {
	query := h.db.Model(&models.ActionPlan{}).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true)

	if riskID := c.Query("risk_id"); riskID != "" {
		query = query.Where("action_plans.risk_id = ?", riskID)
	}
	if status := c.Query("status"); status != "" {
		if !models.ActionStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status: unknown action status"})
			return
		}
		query = query.Where("action_plans.status = ?", status)
	}
	if responsible := c.Query("responsible_id"); responsible != "" {
		query = query.Where("action_plans.responsible_id = ?", responsible)
	}
	if c.Query("overdue") == "true" {
		query = query.Where("action_plans.due_date < ?", time.Now()).
			Where("action_plans.status NOT IN ?", []models.ActionStatus{models.ActionCompleted, models.ActionCancelled})
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var plans []models.ActionPlan
	if err := query.Order("action_plans.due_date ASC").Limit(limit).Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch action plans"})
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = planToResponse(plan)
	}

	c.JSON(http.StatusOK, responses)
}

// Update updates an action plan, recording a progress history row for
// status or percent changes
// @Summary Update an action plan
// @Tags action-plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param request body UpdatePlanRequest true "Fields to update"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /plans/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var plan models.ActionPlan
	if err := h.db.First(&plan, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action plan not found"})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil && !models.ActionStatus(*req.Status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status: unknown action status"})
		return
	}
	if req.PercentComplete != nil && (*req.PercentComplete < 0 || *req.PercentComplete > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percent_complete: must be between 0 and 100"})
		return
	}
	if req.ResponsibleID != nil {
		var responsible models.User
		if err := h.db.First(&responsible, *req.ResponsibleID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Responsible user not found"})
			return
		}
	}

	previous := plan
	progressChanged := req.Status != nil || req.PercentComplete != nil

	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.ResponsibleArea != nil {
		plan.ResponsibleArea = *req.ResponsibleArea
	}
	if req.ResponsibleID != nil {
		plan.ResponsibleID = req.ResponsibleID
	}
	if req.HowToImplement != nil {
		plan.HowToImplement = *req.HowToImplement
	}
	if req.StartDate != nil {
		t, ok := parseDate(*req.StartDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: invalid date"})
			return
		}
		plan.StartDate = &t
	}
	if req.DueDate != nil {
		t, ok := parseDate(*req.DueDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date: invalid date"})
			return
		}
		plan.DueDate = t
	}
	if req.Status != nil {
		plan.Status = models.ActionStatus(*req.Status)
	}
	if req.PercentComplete != nil {
		plan.PercentComplete = *req.PercentComplete
	}

	plan.Overdue = plan.IsOverdue(time.Now())
	plan.UpdatedByID = &userID

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if progressChanged {
			note := req.Note
			if note == "" {
				note = "Progress updated"
			}
			update := models.PlanUpdate{
				ActionPlanID:    plan.ID,
				PreviousStatus:  previous.Status,
				NewStatus:       plan.Status,
				PreviousPercent: previous.PercentComplete,
				NewPercent:      plan.PercentComplete,
				Note:            note,
				UpdatedByID:     userID,
			}
			if err := tx.Create(&update).Error; err != nil {
				return err
			}
		}
		return tx.Save(&plan).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action plan"})
		return
	}

	c.JSON(http.StatusOK, planToResponse(plan))
}

// PlanUpdateResponse represents a plan progress history row
type PlanUpdateResponse struct {
	ID              uint   `json:"id"`
	ActionPlanID    uint   `json:"action_plan_id"`
	PreviousStatus  string `json:"previous_status"`
	NewStatus       string `json:"new_status"`
	PreviousPercent int    `json:"previous_percent"`
	NewPercent      int    `json:"new_percent"`
	Note            string `json:"note"`
	UpdatedByID     uint   `json:"updated_by_id"`
	CreatedAt       string `json:"created_at"`
}

// ListUpdates returns a plan's progress history
// @Summary List plan progress history
// @Tags action-plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {array} PlanUpdateResponse
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /plans/{id}/updates [get]
func (h *Handler) ListUpdates(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var plan models.ActionPlan
	if err := h.db.First(&plan, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Action plan not found"})
		return
	}

	var updates []models.PlanUpdate
	if err := h.db.Where("action_plan_id = ?", id).Order("created_at DESC").Find(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan updates"})
		return
	}

	responses := make([]PlanUpdateResponse, len(updates))
	for i, u := range updates {
		responses[i] = PlanUpdateResponse{
			ID:              u.ID,
			ActionPlanID:    u.ActionPlanID,
			PreviousStatus:  string(u.PreviousStatus),
			NewStatus:       string(u.NewStatus),
			PreviousPercent: u.PreviousPercent,
			NewPercent:      u.NewPercent,
			Note:            u.Note,
			UpdatedByID:     u.UpdatedByID,
			CreatedAt:       u.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, responses)
}

// PlanDashboardResponse summarizes action plan progress
type PlanDashboardResponse struct {
	ByStatus     map[string]int64 `json:"by_status"`
	TotalOverdue int64            `json:"total_overdue"`
	OnTimeRate   float64          `json:"on_time_rate"`
}

// Dashboard returns grouped plan counts and the on-time completion rate
// @Summary Action plan dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} PlanDashboardResponse
// @Security BearerAuth
// @Router /dashboard/plans [get]
func (h *Handler) Dashboard(c *gin.Context) {
	type statusCount struct {
		Status string
		Total  int64
	}
	var rows []statusCount
	err := h.db.Model(&models.ActionPlan{}).
		Select("action_plans.status AS status, COUNT(*) AS total").
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true).
		Group("action_plans.status").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate plans"})
		return
	}

	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Total
	}

	var totalOverdue int64
	h.db.Model(&models.ActionPlan{}).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true).
		Where("action_plans.due_date < ?", time.Now()).
		Where("action_plans.status NOT IN ?", []models.ActionStatus{models.ActionCompleted, models.ActionCancelled}).
		Count(&totalOverdue)

	var completed, completedOnTime int64
	h.db.Model(&models.ActionPlan{}).
		Where("status = ?", models.ActionCompleted).
		Count(&completed)
	h.db.Model(&models.ActionPlan{}).
		Where("status = ?", models.ActionCompleted).
		Where("updated_at <= due_date").
		Count(&completedOnTime)

	onTimeRate := 0.0
	if completed > 0 {
		onTimeRate = float64(completedOnTime) / float64(completed) * 100
	}

	c.JSON(http.StatusOK, PlanDashboardResponse{
		ByStatus:     byStatus,
		TotalOverdue: totalOverdue,
		OnTimeRate:   onTimeRate,
	})
}

// RegisterRiskRoutes registers the per-risk plan routes
func (h *Handler) RegisterRiskRoutes(rg *gin.RouterGroup) {
	rg.POST("/risks/:id/plans", h.Create)
	rg.GET("/risks/:id/plans", h.ListByRisk)
}

// RegisterRoutes registers plan routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.List)
	rg.PUT("/plans/:id", h.Update)
	rg.GET("/plans/:id/updates", h.ListUpdates)
	rg.GET("/dashboard/plans", h.Dashboard)
}

// startOfToday truncates now to midnight so a due date of today is valid
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
