package risks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Name:         "Test User",
		Active:       true,
		Role:         models.RoleManager,
		AuthSource:   models.AuthSourceLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(api)
	handler.RegisterDashboardRoutes(api)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), string(user.AuthSource))
	return "Bearer " + token
}

func createRisk(t *testing.T, router *gin.Engine, user models.User, body CreateRiskRequest) RiskResponse {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/risks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var risk RiskResponse
	json.Unmarshal(resp.Body.Bytes(), &risk)
	return risk
}

func TestCreateRisk(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	risk := createRisk(t, router, user, CreateRiskRequest{
		Source:      "operational",
		Category:    "process",
		Title:       "Legacy batch server",
		Description: "Month-end batch has no failover",
		Probability: "high",
		Impact:      "high",
	})

	if risk.Code != "RSK-001" {
		t.Errorf("Expected code RSK-001, got %s", risk.Code)
	}
	if risk.Criticality != "high" {
		t.Errorf("Expected derived criticality high, got %s", risk.Criticality)
	}
	if !risk.Active {
		t.Error("New risk should be active")
	}
	if risk.CreatedByID != user.ID {
		t.Errorf("Expected created_by_id %d, got %d", user.ID, risk.CreatedByID)
	}
}

func TestCreateRiskSequentialCodes(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	for i := 1; i <= 3; i++ {
		risk := createRisk(t, router, user, CreateRiskRequest{
			Source:      "operational",
			Category:    "process",
			Title:       fmt.Sprintf("Risk %d", i),
			Description: "A risk",
			Probability: "low",
			Impact:      "low",
		})
		want := fmt.Sprintf("RSK-%03d", i)
		if risk.Code != want {
			t.Errorf("Expected code %s, got %s", want, risk.Code)
		}
	}
}

func TestCreateRiskInvalidEnum(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	body := CreateRiskRequest{
		Source:      "astrological",
		Category:    "process",
		Title:       "Bad source",
		Description: "A risk",
		Probability: "low",
		Impact:      "low",
	}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/risks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.Risk{}).Count(&count)
	if count != 0 {
		t.Errorf("Rejected create should not write a row, found %d", count)
	}
}

func TestListRisksCriticalityFilter(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	// 3 critical, 2 high, 2 low
	levels := []struct {
		probability string
		impact      string
		n           int
	}{
		{"very_high", "very_high", 3},
		{"high", "high", 2},
		{"low", "low", 2},
	}
	for _, l := range levels {
		for i := 0; i < l.n; i++ {
			createRisk(t, router, user, CreateRiskRequest{
				Source:      "operational",
				Category:    "process",
				Title:       fmt.Sprintf("%s/%s risk %d", l.probability, l.impact, i),
				Description: "A risk",
				Probability: l.probability,
				Impact:      l.impact,
			})
		}
	}

	req, _ := http.NewRequest("GET", "/api/risks?criticality=critical,high&limit=2", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var list ListRisksResponse
	json.Unmarshal(resp.Body.Bytes(), &list)

	if len(list.Items) != 2 {
		t.Errorf("Expected 2 items with limit=2, got %d", len(list.Items))
	}
	for _, item := range list.Items {
		if item.Criticality != "critical" && item.Criticality != "high" {
			t.Errorf("Item %s outside requested criticality set: %s", item.Code, item.Criticality)
		}
	}
	// Total counts the full filtered set, not the page
	if list.Total != 5 {
		t.Errorf("Expected total 5, got %d", list.Total)
	}
}

func TestListRisksExcludesInactiveByDefault(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	kept := createRisk(t, router, user, CreateRiskRequest{
		Source: "operational", Category: "process",
		Title: "Kept", Description: "A risk",
		Probability: "low", Impact: "low",
	})
	dropped := createRisk(t, router, user, CreateRiskRequest{
		Source: "operational", Category: "process",
		Title: "Dropped", Description: "A risk",
		Probability: "low", Impact: "low",
	})

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/risks/%d", dropped.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on delete, got %d", resp.Code)
	}

	req, _ = http.NewRequest("GET", "/api/risks", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var list ListRisksResponse
	json.Unmarshal(resp.Body.Bytes(), &list)

	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("Expected one active risk, got total=%d items=%d", list.Total, len(list.Items))
	}
	if list.Items[0].ID != kept.ID {
		t.Errorf("Expected risk %d, got %d", kept.ID, list.Items[0].ID)
	}

	// The deactivated risk is still reachable directly
	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/risks/%d", dropped.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 for deactivated risk, got %d", resp.Code)
	}
}

func TestUpdateRiskReassessmentWritesHistory(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	risk := createRisk(t, router, user, CreateRiskRequest{
		Source: "technological", Category: "technology",
		Title: "Old database", Description: "Past end of support",
		Probability: "low", Impact: "low",
	})

	probability := "very_high"
	impact := "very_high"
	reason := "Incident last week showed the exposure is real"
	body := UpdateRiskRequest{
		Probability:      &probability,
		Impact:           &impact,
		AssessmentReason: reason,
	}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/risks/%d", risk.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated RiskResponse
	json.Unmarshal(resp.Body.Bytes(), &updated)
	if updated.Criticality != "critical" {
		t.Errorf("Expected recomputed criticality critical, got %s", updated.Criticality)
	}

	var assessments []models.RiskAssessment
	db.Where("risk_id = ?", risk.ID).Find(&assessments)
	if len(assessments) != 1 {
		t.Fatalf("Expected one assessment row, got %d", len(assessments))
	}
	a := assessments[0]
	if a.PreviousCriticality != models.CriticalityLow || a.NewCriticality != models.CriticalityCritical {
		t.Errorf("Expected low -> critical, got %s -> %s", a.PreviousCriticality, a.NewCriticality)
	}
	if a.Reason != reason {
		t.Errorf("Expected reason %q, got %q", reason, a.Reason)
	}
	if a.AssessedByID != user.ID {
		t.Errorf("Expected assessor %d, got %d", user.ID, a.AssessedByID)
	}
}

func TestUpdateRiskWithoutReassessment(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	risk := createRisk(t, router, user, CreateRiskRequest{
		Source: "operational", Category: "process",
		Title: "Old title", Description: "A risk",
		Probability: "low", Impact: "low",
	})

	title := "New title"
	body := UpdateRiskRequest{Title: &title}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/risks/%d", risk.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.RiskAssessment{}).Count(&count)
	if count != 0 {
		t.Errorf("Title-only update should not write an assessment row, got %d", count)
	}
}

func TestGetRiskNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	req, _ := http.NewRequest("GET", "/api/risks/999", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestDashboardCountsSumToActiveRisks(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	specs := []struct{ probability, impact string }{
		{"very_high", "very_high"},
		{"high", "high"},
		{"medium", "moderate"},
		{"low", "low"},
		{"very_low", "very_low"},
	}
	for i, s := range specs {
		createRisk(t, router, user, CreateRiskRequest{
			Source:      "operational",
			Category:    "process",
			Title:       fmt.Sprintf("Risk %d", i),
			Description: "A risk",
			Probability: s.probability,
			Impact:      s.impact,
		})
	}

	// Add an overdue plan to one risk
	var risk models.Risk
	db.First(&risk)
	plan := models.ActionPlan{
		RiskID:      risk.ID,
		Description: "Late plan",
		DueDate:     time.Now().AddDate(0, 0, -10),
		Status:      models.ActionInProgress,
		CreatedByID: user.ID,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	req, _ := http.NewRequest("GET", "/api/dashboard/risks", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var dashboard DashboardResponse
	json.Unmarshal(resp.Body.Bytes(), &dashboard)

	if dashboard.TotalRisks != 5 {
		t.Errorf("Expected 5 risks, got %d", dashboard.TotalRisks)
	}
	var byCriticality int64
	for _, n := range dashboard.ByCriticality {
		byCriticality += n
	}
	if byCriticality != dashboard.TotalRisks {
		t.Errorf("Criticality counts sum to %d, want %d", byCriticality, dashboard.TotalRisks)
	}
	var bySource int64
	for _, n := range dashboard.BySource {
		bySource += n
	}
	if bySource != dashboard.TotalRisks {
		t.Errorf("Source counts sum to %d, want %d", bySource, dashboard.TotalRisks)
	}
	if dashboard.OverduePlans != 1 {
		t.Errorf("Expected 1 overdue plan, got %d", dashboard.OverduePlans)
	}
}

func TestListAssessmentsUnknownRisk(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	req, _ := http.NewRequest("GET", "/api/risks/42/assessments", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestSimilarRisks(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	base := createRisk(t, router, user, CreateRiskRequest{
		Source:      "technological",
		Category:    "technology",
		Title:       "Unsupported database version",
		Description: "Reporting database is past end of support",
		Probability: "high",
		Impact:      "very_high",
	})

	// Same source
	createRisk(t, router, user, CreateRiskRequest{
		Source:      "technological",
		Category:    "process",
		Title:       "Single point of failure in the ETL",
		Description: "One host runs every nightly load",
		Probability: "low",
		Impact:      "low",
	})

	// Same assessment, different classification
	createRisk(t, router, user, CreateRiskRequest{
		Source:      "operational",
		Category:    "people",
		Title:       "Key-person dependency",
		Description: "Only one engineer knows the billing system",
		Probability: "high",
		Impact:      "very_high",
	})

	// Nothing in common
	createRisk(t, router, user, CreateRiskRequest{
		Source:      "legal",
		Category:    "compliance",
		Title:       "Contract renewal gap",
		Description: "Supplier contract lapses before renewal",
		Probability: "low",
		Impact:      "moderate",
	})

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/risks/%d/similar", base.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var similar []RiskResponse
	json.Unmarshal(resp.Body.Bytes(), &similar)

	if len(similar) != 2 {
		t.Fatalf("Expected 2 similar risks, got %d", len(similar))
	}
	for _, r := range similar {
		if r.ID == base.ID {
			t.Error("Similar risks should not include the risk itself")
		}
		if r.Title == "Contract renewal gap" {
			t.Error("Unrelated risk should not be reported as similar")
		}
	}
}

func TestSimilarRisksUnknownRisk(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "manager")

	req, _ := http.NewRequest("GET", "/api/risks/42/similar", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
