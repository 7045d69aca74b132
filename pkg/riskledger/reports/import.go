package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// ImportRisk represents one risk in an import payload
type ImportRisk struct {
	Source       string `json:"source"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Causes       string `json:"causes"`
	Consequences string `json:"consequences"`
	Probability  string `json:"probability"`
	Impact       string `json:"impact"`
	IdentifiedAt string `json:"identified_at"`
}

// ImportRequest represents a risk import request
type ImportRequest struct {
	Risks []ImportRisk `json:"risks" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
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

func validateImportRisk(item ImportRisk) string {
	if item.Title == "" {
		return "title is required"
	}
	if item.Description == "" {
		return "description is required"
	}
	if !models.RiskSource(item.Source).Valid() {
		return "unknown source"
	}
	if !models.RiskCategory(item.Category).Valid() {
		return "unknown category"
	}
	if !models.Probability(item.Probability).Valid() {
		return "unknown probability"
	}
	if !models.Impact(item.Impact).Valid() {
		return "unknown impact"
	}
	return ""
}

// Import imports risks from a JSON payload. Invalid items are skipped and
// reported; valid items are registered with derived criticality and a
// fresh sequential code.
// @Summary Import risks
// @Tags reports
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Risks to import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /reports/import [post]
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{
		Errors: []string{},
	}

	for i, item := range req.Risks {
		if reason := validateImportRisk(item); reason != "" {
			result.Errors = append(result.Errors, "risk "+strconv.Itoa(i)+": "+reason)
			result.Skipped++
			continue
		}

		identifiedAt := time.Now()
		if item.IdentifiedAt != "" {
			parsed, err := time.Parse("2006-01-02", item.IdentifiedAt)
			if err != nil {
				result.Errors = append(result.Errors, "risk "+strconv.Itoa(i)+": invalid identified_at format")
				result.Skipped++
				continue
			}
			identifiedAt = parsed
		}

		risk := models.Risk{
			Source:       models.RiskSource(item.Source),
			Category:     models.RiskCategory(item.Category),
			Title:        item.Title,
			Description:  item.Description,
			Causes:       item.Causes,
			Consequences: item.Consequences,
			Probability:  models.Probability(item.Probability),
			Impact:       models.Impact(item.Impact),
			Criticality:  models.DeriveCriticality(models.Probability(item.Probability), models.Impact(item.Impact)),
			Active:       true,
			IdentifiedAt: identifiedAt,
			CreatedByID:  userID,
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
			result.Errors = append(result.Errors, "risk "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}

		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}
