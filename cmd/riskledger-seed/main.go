// Command riskledger-seed loads a small demo dataset into a RiskLedger
// database: a few local users, risks across sources and criticalities,
// and action plans in various states. Intended for development databases.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/database"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

func main() {
	dbPath := os.Getenv("RISKLEDGER_DB_PATH")
	if dbPath == "" {
		dbPath = "riskledger.db"
	}

	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var count int64
	if err := db.Model(&models.Risk{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	}
	if count > 0 {
		log.Println("Database already contains risks, nothing to do")
		return
	}

	if err := db.Transaction(seed); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	log.Println("Seeded demo users, risks and action plans")
}

func seed(tx *gorm.DB) error {
	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	manager := models.User{
		Username:     "mgarcia",
		Email:        "mgarcia@riskledger.local",
		PasswordHash: hash,
		Name:         "Maria Garcia",
		JobTitle:     "Risk Manager",
		Department:   "Governance",
		Active:       true,
		Role:         models.RoleManager,
		AuthSource:   models.AuthSourceLocal,
	}
	analyst := models.User{
		Username:     "jchen",
		Email:        "jchen@riskledger.local",
		PasswordHash: hash,
		Name:         "Jun Chen",
		JobTitle:     "Risk Analyst",
		Department:   "Governance",
		Active:       true,
		Role:         models.RoleUser,
		AuthSource:   models.AuthSourceLocal,
	}
	for _, u := range []*models.User{&manager, &analyst} {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	type riskSeed struct {
		source      models.RiskSource
		category    models.RiskCategory
		title       string
		description string
		probability models.Probability
		impact      models.Impact
		response    models.ResponseType
	}
	seeds := []riskSeed{
		{models.SourceOperational, models.CategoryProcess,
			"Single point of failure in invoice processing",
			"The month-end invoice batch depends on one legacy server with no failover.",
			models.ProbabilityMedium, models.ImpactHigh, models.ResponseMitigate},
		{models.SourceTechnological, models.CategoryTechnology,
			"Unsupported database version in production",
			"The reporting database runs a version past its end-of-support date.",
			models.ProbabilityHigh, models.ImpactHigh, models.ResponseMitigate},
		{models.SourceLegal, models.CategoryCompliance,
			"Data retention policy not enforced",
			"Customer records are kept beyond the mandated retention window.",
			models.ProbabilityMedium, models.ImpactVeryHigh, models.ResponseAvoid},
		{models.SourceFinancial, models.CategoryExternalEnvironment,
			"Exchange rate exposure on supplier contracts",
			"Two key supplier contracts are denominated in a volatile currency.",
			models.ProbabilityLow, models.ImpactModerate, models.ResponseTransfer},
		{models.SourceReputational, models.CategoryPeople,
			"Untrained staff handling customer escalations",
			"Escalation calls are routed to staff without complaint-handling training.",
			models.ProbabilityLow, models.ImpactLow, models.ResponseAccept},
	}

	for i, s := range seeds {
		risk := models.Risk{
			Code:              codeFor(i + 1),
			Source:            s.source,
			Category:          s.category,
			Title:             s.title,
			Description:       s.description,
			Probability:       s.probability,
			Impact:            s.impact,
			Criticality:       models.DeriveCriticality(s.probability, s.impact),
			SuggestedResponse: s.response,
			AdoptedResponse:   s.response,
			Active:            true,
			IdentifiedAt:      now.AddDate(0, 0, -7*(i+1)),
			CreatedByID:       manager.ID,
		}
		if err := tx.Create(&risk).Error; err != nil {
			return err
		}

		// One plan per risk except the accepted one
		if s.response == models.ResponseAccept {
			continue
		}
		due := now.AddDate(0, 1+i, 0)
		plan := models.ActionPlan{
			RiskID:          risk.ID,
			Description:     "Mitigation plan for " + risk.Code,
			ResponsibleArea: "Governance",
			ResponsibleID:   &analyst.ID,
			DueDate:         due,
			Status:          models.ActionInProgress,
			PercentComplete: 25 * i,
			CreatedByID:     manager.ID,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
	}

	return nil
}

func codeFor(n int) string {
	return fmt.Sprintf("RSK-%03d", n)
}
