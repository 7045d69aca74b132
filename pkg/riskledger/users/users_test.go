package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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

func createTestAdmin(t *testing.T, db *gorm.DB) models.User {
	hash, _ := auth.HashPassword("password123")
	admin := models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Active:       true,
		Role:         models.RoleAdmin,
		AuthSource:   models.AuthSourceLocal,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return admin
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
	handler.RegisterRoutes(adminGroup)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), string(user.AuthSource))
	return "Bearer " + token
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	body := CreateUserRequest{
		Username: "mgarcia",
		Email:    "mgarcia@example.com",
		Password: "password123",
		Name:     "Maria Garcia",
		Role:     "manager",
	}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/admin/users", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.Username != "mgarcia" {
		t.Errorf("Expected username mgarcia, got %s", response.Username)
	}
	if response.Role != "manager" {
		t.Errorf("Expected role manager, got %s", response.Role)
	}
	if response.AuthSource != "local" {
		t.Errorf("Expected auth_source local, got %s", response.AuthSource)
	}

	// The stored hash must verify the password
	var stored models.User
	db.Where("username = ?", "mgarcia").First(&stored)
	if !auth.CheckPassword("password123", stored.PasswordHash) {
		t.Error("Stored hash should verify the provisioning password")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	body := CreateUserRequest{
		Username: "admin",
		Email:    "other@example.com",
		Password: "password123",
		Name:     "Other",
	}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/admin/users", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.Code)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestAdmin(t, db)

	hash, _ := auth.HashPassword("password123")
	regular := models.User{
		Username:     "regular",
		Email:        "regular@example.com",
		PasswordHash: hash,
		Name:         "Regular",
		Active:       true,
		Role:         models.RoleUser,
		AuthSource:   models.AuthSourceLocal,
	}
	db.Create(&regular)

	body := CreateUserRequest{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "password123",
		Name:     "New User",
	}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/admin/users", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(regular))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.Code)
	}
}

func TestDeactivateUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	hash, _ := auth.HashPassword("password123")
	target := models.User{
		Username:     "target",
		Email:        "target@example.com",
		PasswordHash: hash,
		Name:         "Target",
		Active:       true,
		Role:         models.RoleUser,
		AuthSource:   models.AuthSourceLocal,
	}
	db.Create(&target)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/admin/users/%d", target.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// The row is kept, only deactivated
	var stored models.User
	if err := db.First(&stored, target.ID).Error; err != nil {
		t.Fatalf("Deactivated user should still exist: %v", err)
	}
	if stored.Active {
		t.Error("User should be inactive after deactivation")
	}

	// Credentials stop working immediately
	if _, ok := auth.VerifyCredentials(db, "target", "password123"); ok {
		t.Error("Deactivated user should not verify")
	}
}

func TestDeactivateSelf(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/admin/users/%d", admin.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	hash, _ := auth.HashPassword("password123")
	target := models.User{
		Username:     "target",
		Email:        "target@example.com",
		PasswordHash: hash,
		Name:         "Target",
		Active:       true,
		Role:         models.RoleUser,
		AuthSource:   models.AuthSourceLocal,
	}
	db.Create(&target)

	role := "manager"
	body := UpdateUserRequest{Role: &role}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/admin/users/%d", target.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Role != "manager" {
		t.Errorf("Expected role manager, got %s", response.Role)
	}
}

func TestUpdateFederatedUserPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	target := models.User{
		Username:   "federated",
		Email:      "federated@example.com",
		Name:       "Federated",
		Active:     true,
		Role:       models.RoleViewer,
		AuthSource: models.AuthSourceAzureAD,
	}
	db.Create(&target)

	password := "password123"
	body := UpdateUserRequest{Password: &password}
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/admin/users/%d", target.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a federated account, got %d", resp.Code)
	}
}

func TestListUsersFilters(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	admin := createTestAdmin(t, db)

	hash, _ := auth.HashPassword("password123")
	for _, u := range []models.User{
		{Username: "mgarcia", Email: "mgarcia@example.com", PasswordHash: hash, Name: "Maria Garcia", Active: true, Role: models.RoleManager, AuthSource: models.AuthSourceLocal},
		{Username: "jchen", Email: "jchen@example.com", PasswordHash: hash, Name: "Jun Chen", Active: true, Role: models.RoleUser, AuthSource: models.AuthSourceLocal},
		{Username: "inactive", Email: "inactive@example.com", PasswordHash: hash, Name: "Gone", Active: false, Role: models.RoleUser, AuthSource: models.AuthSourceLocal},
	} {
		user := u
		db.Create(&user)
	}

	req, _ := http.NewRequest("GET", "/api/admin/users?role=manager", nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var list []UserResponse
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Username != "mgarcia" {
		t.Errorf("Expected only mgarcia for role=manager, got %d users", len(list))
	}

	// Inactive users are excluded unless requested
	req, _ = http.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	json.Unmarshal(resp.Body.Bytes(), &list)
	for _, u := range list {
		if !u.Active {
			t.Errorf("Inactive user %s should be excluded by default", u.Username)
		}
	}

	req, _ = http.NewRequest("GET", "/api/admin/users?active=false", nil)
	req.Header.Set("Authorization", getAuthHeader(admin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 1 || list[0].Username != "inactive" {
		t.Errorf("Expected only the inactive user for active=false, got %d users", len(list))
	}
}
