package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser, RoleViewer:
		return true
	}
	return false
}

// AuthSource identifies how a user authenticates
type AuthSource string

const (
	AuthSourceLocal   AuthSource = "local"
	AuthSourceAzureAD AuthSource = "azure_ad"
)

// User represents a user in the system. Local users are provisioned by
// seeding or an admin; federated users are created at first successful
// login. Users are never hard-deleted, only deactivated, so action plan
// audit references stay intact.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"` // Empty for federated users
	Name         string         `gorm:"not null" json:"name"`
	JobTitle     string         `json:"job_title,omitempty"`
	Department   string         `json:"department,omitempty"`
	Active       bool           `gorm:"default:true" json:"active"`
	Role         Role           `gorm:"type:varchar(20);default:'user'" json:"role"`
	AuthSource   AuthSource     `gorm:"type:varchar(20);default:'local'" json:"auth_source"`

	// Relationships
	FederatedIdentities []FederatedIdentity `gorm:"foreignKey:UserID" json:"federated_identities,omitempty"`
}

// FederatedIdentity links a user to a tenant-issued subject from an
// external identity provider. Created at first federated login.
type FederatedIdentity struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Issuer    string         `gorm:"not null;uniqueIndex:idx_issuer_subject" json:"issuer"`
	Subject   string         `gorm:"not null;uniqueIndex:idx_issuer_subject" json:"subject"` // OIDC sub claim
	Email     string         `json:"email"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
