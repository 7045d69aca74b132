package azuread

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Handler handles Azure AD authentication requests
type Handler struct {
	db  *gorm.DB
	cfg Config

	mu       sync.Mutex
	provider *oidc.Provider
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// StateData is round-tripped through the authorization request's state
// parameter. The nonce inside it must match the ID token's nonce claim,
// which is the CSRF defense for the redirect flow.
type StateData struct {
	ReturnURL string `json:"return_url"`
	Nonce     string `json:"nonce"`
}

// NewHandler creates a new Azure AD handler. Provider discovery is deferred
// until the first login attempt so the server can start without network
// access to Microsoft.
func NewHandler(db *gorm.DB, cfg Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

// ensureProvider performs OIDC discovery against the tenant issuer once
func (h *Handler) ensureProvider(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.provider != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	provider, err := oidc.NewProvider(ctx, h.cfg.Issuer())
	if err != nil {
		return err
	}

	h.provider = provider
	h.oauth = oauth2.Config{
		ClientID:     h.cfg.ClientID,
		ClientSecret: h.cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  h.cfg.RedirectURI,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	h.verifier = provider.Verifier(&oidc.Config{ClientID: h.cfg.ClientID})
	return nil
}

// AuthURLRequest represents a request for an auth URL
type AuthURLRequest struct {
	ReturnURL string `json:"return_url"`
}

// GetAuthURL returns the Azure AD authorization URL
// @Summary Start Azure AD login
// @Description Get the authorization-code-flow redirect URL for Azure AD
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Azure AD not configured"
// @Router /auth/azure [post]
func (h *Handler) GetAuthURL(c *gin.Context) {
	if !h.cfg.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Azure AD login is not configured"})
		return
	}

	if err := h.ensureProvider(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identity provider unavailable"})
		return
	}

	var req AuthURLRequest
	c.ShouldBindJSON(&req)

	nonce := generateRandomString(32)
	stateJSON, _ := json.Marshal(StateData{ReturnURL: req.ReturnURL, Nonce: nonce})
	state := base64.URLEncoding.EncodeToString(stateJSON)

	c.JSON(http.StatusOK, gin.H{"auth_url": h.oauth.AuthCodeURL(state, oidc.Nonce(nonce))})
}

// Callback handles the Azure AD redirect back. Provider errors, nonce
// mismatches, and failed code exchanges all end the attempt as a failure;
// the session is never established from a partial result.
// @Summary Azure AD callback
// @Description Exchange the authorization code for a verified identity and session token
// @Tags auth
// @Produce json
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} map[string]string "Provider error or state/nonce mismatch"
// @Router /auth/azure/callback [get]
func (h *Handler) Callback(c *gin.Context) {
	if !h.cfg.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Azure AD login is not configured"})
		return
	}

	stateJSON, err := base64.URLEncoding.DecodeString(c.Query("state"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}
	var stateData StateData
	if err := json.Unmarshal(stateJSON, &stateData); err != nil || stateData.Nonce == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		errorDesc := c.Query("error_description")
		if errorDesc == "" {
			errorDesc = c.Query("error")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authentication failed: " + errorDesc})
		return
	}

	ctx := c.Request.Context()
	if err := h.ensureProvider(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identity provider unavailable"})
		return
	}

	oauth2Token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		// Covers expired or already-used authorization codes
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "No ID token in response"})
		return
	}

	idToken, err := h.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to verify ID token"})
		return
	}

	if idToken.Nonce != stateData.Nonce {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nonce"})
		return
	}

	var claims struct {
		Email             string `json:"email"`
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse claims"})
		return
	}

	if claims.Email == "" {
		claims.Email = claims.PreferredUsername
	}
	if claims.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not provided by identity provider"})
		return
	}

	user, err := h.findOrCreateUser(idToken.Issuer, idToken.Subject, claims.Email, claims.Name, claims.PreferredUsername)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user"})
		return
	}

	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "User account is deactivated"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), string(user.AuthSource))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if stateData.ReturnURL != "" {
		c.Redirect(http.StatusFound, stateData.ReturnURL+"?token="+token)
		return
	}

	c.JSON(http.StatusOK, auth.AuthResponse{
		Token: token,
		User:  auth.ToUserResponse(*user),
	})
}

// findOrCreateUser resolves the verified identity to a local user row,
// provisioning user and identity link at first login
func (h *Handler) findOrCreateUser(issuer, subject, email, name, upn string) (*models.User, error) {
	var identity models.FederatedIdentity
	err := h.db.Where("issuer = ? AND subject = ?", issuer, subject).First(&identity).Error
	if err == nil {
		var user models.User
		if err := h.db.First(&user, identity.UserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	// No identity link yet; attach to an existing user with the same email
	var user models.User
	err = h.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		identity := models.FederatedIdentity{
			UserID:  user.ID,
			Issuer:  issuer,
			Subject: subject,
			Email:   email,
		}
		if err := h.db.Create(&identity).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	username := strings.ToLower(upn)
	if username == "" {
		username = strings.ToLower(email)
	}
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user = models.User{
		Username:   username,
		Email:      email,
		Name:       name,
		Active:     true,
		Role:       models.RoleViewer,
		AuthSource: models.AuthSourceAzureAD,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		identity := models.FederatedIdentity{
			UserID:  user.ID,
			Issuer:  issuer,
			Subject: subject,
			Email:   email,
		}
		return tx.Create(&identity).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// RegisterRoutes registers Azure AD routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/azure", h.GetAuthURL)
	rg.GET("/azure/callback", h.Callback)
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)[:length]
}
