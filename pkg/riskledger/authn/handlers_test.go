package authn

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/azuread"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

func setupTestRouter(db *gorm.DB, hybrid *Hybrid) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db, hybrid)
	handler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", Middleware(hybrid))
	protected.GET("/whoami", func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		username, _ := auth.GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func postLogin(router *gin.Engine, body LoginRequest) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)
	createTestUser(t, db, "testuser", "password123")

	resp := postLogin(router, LoginRequest{Username: "testuser", Password: "password123"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response auth.AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.Token == "" {
		t.Error("Expected token in response")
	}
	if response.User.Username != "testuser" {
		t.Errorf("Expected username testuser, got %s", response.User.Username)
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)
	createTestUser(t, db, "testuser", "password123")

	resp := postLogin(router, LoginRequest{Username: "testuser", Password: "wrongpassword"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginEndpointFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)
	createTestUser(t, db, "testuser", "password123")

	cases := []LoginRequest{
		{Username: "testuser", Password: "wrongpassword"},
		{Username: "nosuchuser", Password: "password123"},
	}

	bodies := make([]string, len(cases))
	for i, body := range cases {
		resp := postLogin(router, body)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", resp.Code)
		}
		bodies[i] = resp.Body.String()
	}

	if bodies[0] != bodies[1] {
		t.Errorf("Wrong password and unknown username should yield identical responses, got %q vs %q", bodies[0], bodies[1])
	}
}

func TestLoginEndpointInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)
	user := createTestUser(t, db, "testuser", "password123")

	db.Model(&user).Update("active", false)

	resp := postLogin(router, LoginRequest{Username: "testuser", Password: "password123"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginEndpointFederatedUserHasNoPassword(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)

	user := models.User{
		Username:   "federated",
		Email:      "federated@example.com",
		Name:       "Federated User",
		Active:     true,
		Role:       models.RoleViewer,
		AuthSource: models.AuthSourceAzureAD,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	resp := postLogin(router, LoginRequest{Username: "federated", Password: "anything"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginEndpointNoCredentials(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)

	resp := postLogin(router, LoginRequest{})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 when no strategy can act, got %d", resp.Code)
	}
}

func TestLoginEndpointFederatedToken(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{
		Username:   "federated",
		Email:      "federated@example.com",
		Name:       "Federated User",
		Active:     true,
		Role:       models.RoleViewer,
		AuthSource: models.AuthSourceAzureAD,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), string(models.AuthSourceAzureAD))
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	azure := &AzureAD{DB: db, Config: azuread.Config{
		ClientID:    "client",
		RedirectURI: "http://localhost/callback",
	}}
	hybrid := NewHybrid(azure, &Local{DB: db})
	router := setupTestRouter(db, hybrid)

	resp := postLogin(router, LoginRequest{Token: token})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response auth.AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.User.Username != "federated" {
		t.Errorf("Expected username federated, got %s", response.User.Username)
	}
}

func TestMiddlewareGatesRequests(t *testing.T) {
	db := setupTestDB(t)
	hybrid := NewHybrid(&AzureAD{DB: db}, &Local{DB: db})
	router := setupTestRouter(db, hybrid)
	user := createTestUser(t, db, "testuser", "password123")

	req, _ := http.NewRequest("GET", "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without a session, got %d", resp.Code)
	}

	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for a malformed header, got %d", resp.Code)
	}

	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for an invalid token, got %d", resp.Code)
	}

	loginResp := postLogin(router, LoginRequest{Username: "testuser", Password: "password123"})
	if loginResp.Code != http.StatusOK {
		t.Fatalf("Login failed: %d: %s", loginResp.Code, loginResp.Body.String())
	}
	var authResp auth.AuthResponse
	json.Unmarshal(loginResp.Body.Bytes(), &authResp)

	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200 with a session token, got %d: %s", resp.Code, resp.Body.String())
	}

	var whoami struct {
		UserID   uint   `json:"user_id"`
		Username string `json:"username"`
	}
	json.Unmarshal(resp.Body.Bytes(), &whoami)
	if whoami.UserID != user.ID {
		t.Errorf("Expected user ID %d in context, got %d", user.ID, whoami.UserID)
	}
	if whoami.Username != "testuser" {
		t.Errorf("Expected username testuser in context, got %s", whoami.Username)
	}
}
