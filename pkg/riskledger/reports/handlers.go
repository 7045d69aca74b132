package reports

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Handler handles reporting requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new reports handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// MatrixRow is one row of the risk matrix report
type MatrixRow struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Source       string `json:"source"`
	Category     string `json:"category"`
	Probability  string `json:"probability"`
	Impact       string `json:"impact"`
	Criticality  string `json:"criticality"`
	Response     string `json:"response"`
	PlanCount    int64  `json:"plan_count"`
	IdentifiedAt string `json:"identified_at"`
}

func (h *Handler) matrixRows() ([]MatrixRow, error) {
	type row struct {
		ID              uint
		Code            string
		Title           string
		Source          string
		Category        string
		Probability     string
		Impact          string
		Criticality     string
		AdoptedResponse string
		PlanCount       int64
		IdentifiedAt    time.Time
	}

	var raw []row
	// One aggregate join instead of a per-risk plan count query
	err := h.db.Model(&models.Risk{}).
		Select("risks.id, risks.code, risks.title, risks.source, risks.category, "+
			"risks.probability, risks.impact, risks.criticality, risks.adopted_response, "+
			"COUNT(action_plans.id) AS plan_count, risks.identified_at").
		Joins("LEFT JOIN action_plans ON action_plans.risk_id = risks.id").
		Where("risks.active = ?", true).
		Group("risks.id").
		Order("risks.criticality DESC, risks.id ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]MatrixRow, len(raw))
	for i, r := range raw {
		rows[i] = MatrixRow{
			ID:           r.ID,
			Code:         r.Code,
			Title:        r.Title,
			Source:       r.Source,
			Category:     r.Category,
			Probability:  r.Probability,
			Impact:       r.Impact,
			Criticality:  r.Criticality,
			Response:     r.AdoptedResponse,
			PlanCount:    r.PlanCount,
			IdentifiedAt: r.IdentifiedAt.Format("2006-01-02"),
		}
	}
	return rows, nil
}

// RiskMatrix returns one row per active risk with its plan count
// @Summary Risk matrix report
// @Tags reports
// @Produce json
// @Param format query string false "Set to csv for CSV export"
// @Success 200 {array} MatrixRow
// @Security BearerAuth
// @Router /reports/risk-matrix [get]
func (h *Handler) RiskMatrix(c *gin.Context) {
	rows, err := h.matrixRows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build risk matrix"})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="risk_matrix.csv"`)
		w := csv.NewWriter(c.Writer)
		w.Write([]string{"code", "title", "source", "category", "probability", "impact", "criticality", "response", "plan_count", "identified_at"})
		for _, r := range rows {
			w.Write([]string{
				r.Code, r.Title, r.Source, r.Category, r.Probability,
				r.Impact, r.Criticality, r.Response,
				strconv.FormatInt(r.PlanCount, 10), r.IdentifiedAt,
			})
		}
		w.Flush()
		return
	}

	c.JSON(http.StatusOK, rows)
}

// PlanReportRow is one row of the action plan report
type PlanReportRow struct {
	ID              uint   `json:"id"`
	RiskCode        string `json:"risk_code"`
	RiskTitle       string `json:"risk_title"`
	Description     string `json:"description"`
	ResponsibleArea string `json:"responsible_area"`
	Responsible     string `json:"responsible,omitempty"`
	DueDate         string `json:"due_date"`
	Status          string `json:"status"`
	PercentComplete int    `json:"percent_complete"`
	Overdue         bool   `json:"overdue"`
}

// ActionPlans returns the action plan report, optionally scoped to a risk
// @Summary Action plan report
// @Tags reports
// @Produce json
// @Param risk_id query int false "Risk ID"
// @Param format query string false "Set to csv for CSV export"
// @Success 200 {array} PlanReportRow
// @Security BearerAuth
// @Router /reports/action-plans [get]
func (h *Handler) ActionPlans(c *gin.Context) {
	// Overdue is derived against the clock, never read from the stored flag
	query := h.db.Model(&models.ActionPlan{}).
		Select("action_plans.id, risks.code AS risk_code, risks.title AS risk_title, "+
			"action_plans.description, action_plans.responsible_area, "+
			"users.name AS responsible, action_plans.due_date, action_plans.status, "+
			"action_plans.percent_complete, "+
			"CASE WHEN action_plans.status NOT IN ? AND action_plans.due_date < ? THEN 1 ELSE 0 END AS overdue",
			[]models.ActionStatus{models.ActionCompleted, models.ActionCancelled}, time.Now()).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Joins("LEFT JOIN users ON users.id = action_plans.responsible_id").
		Where("risks.active = ?", true).
		Order("action_plans.due_date ASC")

	if riskID := c.Query("risk_id"); riskID != "" {
		query = query.Where("action_plans.risk_id = ?", riskID)
	}

	type row struct {
		ID              uint
		RiskCode        string
		RiskTitle       string
		Description     string
		ResponsibleArea string
		Responsible     string
		DueDate         time.Time
		Status          string
		PercentComplete int
		Overdue         bool
	}
	var raw []row
	if err := query.Scan(&raw).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build plan report"})
		return
	}

	rows := make([]PlanReportRow, len(raw))
	for i, r := range raw {
		rows[i] = PlanReportRow{
			ID:              r.ID,
			RiskCode:        r.RiskCode,
			RiskTitle:       r.RiskTitle,
			Description:     r.Description,
			ResponsibleArea: r.ResponsibleArea,
			Responsible:     r.Responsible,
			DueDate:         r.DueDate.Format("2006-01-02"),
			Status:          r.Status,
			PercentComplete: r.PercentComplete,
			Overdue:         r.Overdue,
		}
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="action_plans.csv"`)
		w := csv.NewWriter(c.Writer)
		w.Write([]string{"risk_code", "risk_title", "description", "responsible_area", "responsible", "due_date", "status", "percent_complete", "overdue"})
		for _, r := range rows {
			w.Write([]string{
				r.RiskCode, r.RiskTitle, r.Description, r.ResponsibleArea,
				r.Responsible, r.DueDate, r.Status,
				strconv.Itoa(r.PercentComplete), strconv.FormatBool(r.Overdue),
			})
		}
		w.Flush()
		return
	}

	c.JSON(http.StatusOK, rows)
}

// KPIResponse summarizes risk management activity over a period
type KPIResponse struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	NewRisks           int64   `json:"new_risks"`
	CriticalityChanges int64   `json:"criticality_changes"`
	NewPlans           int64   `json:"new_plans"`
	CompletedPlans     int64   `json:"completed_plans"`
	ResolutionRate     float64 `json:"resolution_rate"`
}

// KPI returns period KPIs. The period defaults to the last 30 days.
// @Summary Period KPI report
// @Tags reports
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} KPIResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /reports/kpi [get]
func (h *Handler) KPI(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from: invalid date"})
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to: invalid date"})
			return
		}
		// Include the whole end day
		to = t.AddDate(0, 0, 1)
	}

	var resp KPIResponse
	resp.From = from.Format("2006-01-02")
	resp.To = to.Format("2006-01-02")

	h.db.Model(&models.Risk{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&resp.NewRisks)

	h.db.Model(&models.RiskAssessment{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("previous_criticality <> new_criticality").
		Count(&resp.CriticalityChanges)

	h.db.Model(&models.ActionPlan{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&resp.NewPlans)

	h.db.Model(&models.ActionPlan{}).
		Where("status = ?", models.ActionCompleted).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Count(&resp.CompletedPlans)

	var openPlans int64
	h.db.Model(&models.ActionPlan{}).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true).
		Count(&openPlans)
	if total := openPlans; total > 0 {
		resp.ResolutionRate = float64(resp.CompletedPlans) / float64(total) * 100
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers report routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/risk-matrix", h.RiskMatrix)
	rg.GET("/reports/action-plans", h.ActionPlans)
	rg.GET("/reports/kpi", h.KPI)
	rg.POST("/reports/import", h.Import)
}
