package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/actionplans"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/authn"
	"github.com/riskledger/riskledger/pkg/riskledger/azuread"
	"github.com/riskledger/riskledger/pkg/riskledger/database"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"github.com/riskledger/riskledger/pkg/riskledger/reports"
	"github.com/riskledger/riskledger/pkg/riskledger/risks"
	"github.com/riskledger/riskledger/pkg/riskledger/users"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/riskledger/riskledger/api/swagger"
)

// @title RiskLedger API
// @version 1.0
// @description Risk management service: risk register, action plans, dashboards and reports with local and Azure AD authentication.

// @contact.name RiskLedger Support
// @contact.url https://github.com/riskledger/riskledger

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("RISKLEDGER_DB_PATH")
	if dbPath == "" {
		dbPath = "riskledger.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Seed the probability/impact reference scales on first run
	if err := ensureReferenceScales(); err != nil {
		log.Fatalf("Failed to seed reference scales: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "riskledger",
			})
		})

		// Hybrid authenticator: Azure AD primary when configured, local fallback
		azureConfig := azuread.ConfigFromEnv()
		hybrid := authn.NewHybrid(
			&authn.AzureAD{DB: database.GetDB(), Config: azureConfig},
			&authn.Local{DB: database.GetDB()},
		)

		// Login runs through the hybrid authenticator (public)
		loginHandler := authn.NewHandler(database.GetDB(), hybrid)
		loginHandler.RegisterRoutes(api.Group("/auth"))

		// Session-bound auth routes (logout, current user)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Azure AD routes (public, the callback completes the code flow)
		azureHandler := azuread.NewHandler(database.GetDB(), azureConfig)
		azureHandler.RegisterRoutes(api.Group("/auth"))

		// Protected routes (valid session required)
		protected := api.Group("", authn.Middleware(hybrid))

		// Risk register and dashboard
		risksHandler := risks.NewHandler(database.GetDB())
		risksHandler.RegisterRoutes(protected)
		risksHandler.RegisterDashboardRoutes(protected)

		// Action plans
		plansHandler := actionplans.NewHandler(database.GetDB())
		plansHandler.RegisterRiskRoutes(protected)
		plansHandler.RegisterRoutes(protected)

		// Reports
		reportsHandler := reports.NewHandler(database.GetDB())
		reportsHandler.RegisterRoutes(protected)

		// Admin routes (JWT only, admin role required)
		usersHandler := users.NewHandler(database.GetDB())
		adminGroup := api.Group("/admin")
		adminGroup.Use(authn.Middleware(hybrid), auth.RequireAdmin())
		usersHandler.RegisterRoutes(adminGroup)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting RiskLedger server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the database.
func ensureAdminExists() error {
	db := database.GetDB()

	// Check if any admin user exists
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	// Create default admin user
	hashedPassword, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Username:     "admin",
		Email:        "admin@riskledger.local",
		Name:         "Admin",
		PasswordHash: hashedPassword,
		Active:       true,
		Role:         models.RoleAdmin,
		AuthSource:   models.AuthSourceLocal,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: admin (password: changeme)")
	return nil
}

// ensureReferenceScales seeds the probability and impact reference scales
// used by assessment screens. Idempotent per scale type.
func ensureReferenceScales() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.ReferenceScale{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	scales := []models.ReferenceScale{
		{ScaleType: "probability", Level: string(models.ProbabilityVeryLow), NumericValue: 1, Description: "Rare; expected less than once a year", Active: true},
		{ScaleType: "probability", Level: string(models.ProbabilityLow), NumericValue: 2, Description: "Unlikely; could happen once-or-so a year", Active: true},
		{ScaleType: "probability", Level: string(models.ProbabilityMedium), NumericValue: 3, Description: "Possible; happens a few times a year", Active: true},
		{ScaleType: "probability", Level: string(models.ProbabilityHigh), NumericValue: 4, Description: "Likely; happens monthly", Active: true},
		{ScaleType: "probability", Level: string(models.ProbabilityVeryHigh), NumericValue: 5, Description: "Almost certain; happens weekly or more", Active: true},
		{ScaleType: "impact", Level: string(models.ImpactVeryLow), NumericValue: 1, Description: "Negligible effect on objectives", Active: true},
		{ScaleType: "impact", Level: string(models.ImpactLow), NumericValue: 2, Description: "Minor effect, absorbed in routine work", Active: true},
		{ScaleType: "impact", Level: string(models.ImpactModerate), NumericValue: 3, Description: "Moderate effect, requires management attention", Active: true},
		{ScaleType: "impact", Level: string(models.ImpactHigh), NumericValue: 4, Description: "Major effect on objectives or budget", Active: true},
		{ScaleType: "impact", Level: string(models.ImpactVeryHigh), NumericValue: 5, Description: "Critical effect, threatens key objectives", Active: true},
	}

	return db.Create(&scales).Error
}
