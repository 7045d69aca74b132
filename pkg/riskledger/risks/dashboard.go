package risks

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
)

// DashboardResponse summarizes risk exposure for the dashboard
type DashboardResponse struct {
	TotalRisks      int64            `json:"total_risks"`
	TotalPlans      int64            `json:"total_plans"`
	OverduePlans    int64            `json:"overdue_plans"`
	ByCriticality   map[string]int64 `json:"by_criticality"`
	BySource        map[string]int64 `json:"by_source"`
	ByCategory      map[string]int64 `json:"by_category"`
	TopCriticalRisk []RiskResponse   `json:"top_critical_risks"`
}

type groupCount struct {
	Key   string
	Total int64
}

// groupedCounts runs one GROUP BY + COUNT over active risks for the given
// column. Counting in SQL keeps the dashboard correct without ever loading
// the full row set.
func (h *Handler) groupedCounts(column string) (map[string]int64, error) {
	var rows []groupCount
	err := h.db.Model(&models.Risk{}).
		Select(column+" AS key, COUNT(*) AS total").
		Where("active = ?", true).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Total
	}
	return counts, nil
}

// Dashboard returns grouped risk counts by criticality, source, and
// category, plus plan totals
// @Summary Risk dashboard
// @Description Aggregated counts of active risks grouped by criticality, source, and category
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Security BearerAuth
// @Router /dashboard/risks [get]
func (h *Handler) Dashboard(c *gin.Context) {
	byCriticality, err := h.groupedCounts("criticality")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate risks"})
		return
	}
	bySource, err := h.groupedCounts("source")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate risks"})
		return
	}
	byCategory, err := h.groupedCounts("category")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate risks"})
		return
	}

	var totalRisks int64
	if err := h.db.Model(&models.Risk{}).Where("active = ?", true).Count(&totalRisks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count risks"})
		return
	}

	var totalPlans int64
	h.db.Model(&models.ActionPlan{}).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true).
		Count(&totalPlans)

	var overduePlans int64
	h.db.Model(&models.ActionPlan{}).
		Joins("JOIN risks ON risks.id = action_plans.risk_id").
		Where("risks.active = ?", true).
		Where("action_plans.due_date < ?", time.Now()).
		Where("action_plans.status NOT IN ?", []models.ActionStatus{models.ActionCompleted, models.ActionCancelled}).
		Count(&overduePlans)

	var topCritical []models.Risk
	h.db.Where("active = ? AND criticality = ?", true, models.CriticalityCritical).
		Order("identified_at DESC").
		Limit(10).
		Find(&topCritical)

	top := make([]RiskResponse, len(topCritical))
	for i, risk := range topCritical {
		top[i] = riskToResponse(risk)
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TotalRisks:      totalRisks,
		TotalPlans:      totalPlans,
		OverduePlans:    overduePlans,
		ByCriticality:   byCriticality,
		BySource:        bySource,
		ByCategory:      byCategory,
		TopCriticalRisk: top,
	})
}

// RegisterDashboardRoutes registers the dashboard route
func (h *Handler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/risks", h.Dashboard)
}
