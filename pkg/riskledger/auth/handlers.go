package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Handler handles local authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	AuthSource string `json:"auth_source"`
}

// ToUserResponse converts a user model to its response form
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		AuthSource: string(user.AuthSource),
	}
}

// VerifyCredentials checks a username/password pair against the user store.
// It never reveals which field was wrong: unknown usernames, inactive
// accounts, federated-only accounts, and bad passwords all return false
// after a bcrypt comparison has run.
func VerifyCredentials(db *gorm.DB, username, password string) (*models.User, bool) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		BurnPasswordCheck(password)
		return nil, false
	}

	// Federated-only users have no password hash
	if user.PasswordHash == "" {
		BurnPasswordCheck(password)
		return nil, false
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, false
	}

	if !user.Active {
		return nil, false
	}

	return &user, true
}

// Me returns the current authenticated user
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, ToUserResponse(user))
}

// Logout handles user logout (client-side token invalidation)
// @Summary Logout
// @Description Logout the current user (client-side token invalidation)
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out successfully"
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// RegisterRoutes registers the session-bound auth routes on the given
// router group. Login lives in the authn package, on the hybrid
// authenticator.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
	rg.GET("/me", AuthMiddleware(), h.Me)
}
