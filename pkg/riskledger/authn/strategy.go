// Package authn models the pluggable authentication strategies as a small
// closed set of variants behind one capability interface, so the hybrid
// composition is exhaustive and statically checkable. Session state is an
// explicit *Session passed into every call, never ambient globals.
package authn

import (
	"github.com/riskledger/riskledger/pkg/riskledger/auth"
	"github.com/riskledger/riskledger/pkg/riskledger/azuread"
	"github.com/riskledger/riskledger/pkg/riskledger/models"
	"gorm.io/gorm"
)

// Status is the outcome of a login attempt
type Status string

const (
	StatusAuthenticated Status = "authenticated"
	StatusFailed        Status = "failed"
	StatusNotAttempted  Status = "not_attempted"
)

// Identity is the verified identity a strategy establishes
type Identity struct {
	UserID      uint
	Username    string
	DisplayName string
	Role        string
	Source      models.AuthSource
}

// Credentials carries the material a strategy may consume. Username and
// Password drive the local strategy; Token carries a session token already
// issued by the Azure AD callback exchange.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Session is the per-interaction session state. It holds at most one
// established identity token; strategies read and write it sequentially.
type Session struct {
	token string
}

// Token returns the current session token, if any
func (s *Session) Token() string {
	return s.token
}

// SetToken installs an issued session token
func (s *Session) SetToken(token string) {
	s.token = token
}

// Clear drops the session identity
func (s *Session) Clear() {
	s.token = ""
}

// Strategy is the capability interface every authenticator variant
// implements
type Strategy interface {
	// AttemptLogin tries to establish a session identity from the given
	// credentials. NotAttempted means the strategy had nothing to act on.
	AttemptLogin(s *Session, creds Credentials) (Identity, Status)
	// CurrentIdentity returns the valid, non-expired identity this
	// strategy has established in the session, if any.
	CurrentIdentity(s *Session) (*Identity, bool)
	// Logout drops any session identity this strategy established.
	Logout(s *Session)
}

// identityFromSession validates the session token and returns its identity
// when it originates from the given source
func identityFromSession(s *Session, source models.AuthSource) (*Identity, bool) {
	if s == nil || s.token == "" {
		return nil, false
	}
	claims, err := auth.ValidateToken(s.token)
	if err != nil {
		return nil, false
	}
	if claims.AuthSource != string(source) {
		return nil, false
	}
	return &Identity{
		UserID:      claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.Name,
		Role:        claims.Role,
		Source:      source,
	}, true
}

// Local authenticates against the user store with bcrypt credentials
type Local struct {
	DB *gorm.DB
}

// AttemptLogin verifies username/password and issues a session token.
// Missing credentials are NotAttempted; anything else that does not verify
// is Failed, with no signal about which field was wrong.
func (l *Local) AttemptLogin(s *Session, creds Credentials) (Identity, Status) {
	if creds.Username == "" || creds.Password == "" {
		return Identity{}, StatusNotAttempted
	}

	user, ok := auth.VerifyCredentials(l.DB, creds.Username, creds.Password)
	if !ok {
		return Identity{}, StatusFailed
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), string(models.AuthSourceLocal))
	if err != nil {
		return Identity{}, StatusFailed
	}
	s.SetToken(token)

	return Identity{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.Name,
		Role:        string(user.Role),
		Source:      models.AuthSourceLocal,
	}, StatusAuthenticated
}

// CurrentIdentity returns the locally established session identity
func (l *Local) CurrentIdentity(s *Session) (*Identity, bool) {
	return identityFromSession(s, models.AuthSourceLocal)
}

// Logout drops a locally established session
func (l *Local) Logout(s *Session) {
	if _, ok := l.CurrentIdentity(s); ok {
		s.Clear()
	}
}

// AzureAD accepts identities established through the authorization-code
// callback exchange. The interactive redirect happens over HTTP (see the
// azuread package); the strategy consumes the resulting session token.
type AzureAD struct {
	DB     *gorm.DB
	Config azuread.Config
}

// AttemptLogin validates a federated session token carried in the
// credentials. Without one, or with the provider unconfigured, the
// strategy reports NotAttempted so a fallback can run.
func (a *AzureAD) AttemptLogin(s *Session, creds Credentials) (Identity, Status) {
	if !a.Config.Enabled() || creds.Token == "" {
		return Identity{}, StatusNotAttempted
	}

	claims, err := auth.ValidateToken(creds.Token)
	if err != nil || claims.AuthSource != string(models.AuthSourceAzureAD) {
		return Identity{}, StatusFailed
	}

	// The account can have been deactivated since the token was issued
	var user models.User
	if err := a.DB.First(&user, claims.UserID).Error; err != nil || !user.Active {
		return Identity{}, StatusFailed
	}

	s.SetToken(creds.Token)
	return Identity{
		UserID:      claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.Name,
		Role:        claims.Role,
		Source:      models.AuthSourceAzureAD,
	}, StatusAuthenticated
}

// CurrentIdentity returns the federated session identity
func (a *AzureAD) CurrentIdentity(s *Session) (*Identity, bool) {
	return identityFromSession(s, models.AuthSourceAzureAD)
}

// Logout drops a federated session
func (a *AzureAD) Logout(s *Session) {
	if _, ok := a.CurrentIdentity(s); ok {
		s.Clear()
	}
}
