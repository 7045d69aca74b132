package authn

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Handler exposes the hybrid authenticator over HTTP
type Handler struct {
	db     *gorm.DB
	hybrid *Hybrid
}

// NewHandler creates a new authentication handler backed by the given
// hybrid composition
func NewHandler(db *gorm.DB, hybrid *Hybrid) *Handler {
	return &Handler{db: db, hybrid: hybrid}
}

// LoginRequest represents the login request body. Username and password
// drive the local strategy; a token carries a federated session issued by
// the Azure AD callback.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// Login runs the sequential strategy fallback: the primary strategy is
// tried first, the secondary only when the primary yielded nothing
// @Summary Login
// @Description Authenticate with username/password or a federated session token to receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} map[string]string "No usable credentials"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := &Session{}
	identity, status := h.hybrid.AttemptLogin(session, Credentials{
		Username: req.Username,
		Password: req.Password,
		Token:    req.Token,
	})
	switch status {
	case StatusAuthenticated:
	case StatusNotAttempted:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No usable credentials provided"})
		return
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	var user models.User
	if err := h.db.First(&user, identity.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, auth.AuthResponse{
		Token: session.Token(),
		User:  auth.ToUserResponse(user),
	})
}

// RegisterRoutes registers the login route on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// Middleware gates requests on the hybrid session check: the request's
// bearer token is a session, and it passes when either strategy still
// vouches for it
func Middleware(h *Hybrid) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		session := &Session{}
		session.SetToken(parts[1])
		if !h.RequireAuthentication(session) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		identity, _ := h.CurrentIdentity(session)
		c.Set(auth.ContextKeyUserID, identity.UserID)
		c.Set(auth.ContextKeyUsername, identity.Username)
		c.Set(auth.ContextKeyRole, identity.Role)
		c.Set(auth.ContextKeyAuthSource, string(identity.Source))

		c.Next()
	}
}
