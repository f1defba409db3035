package models

import "time"

// Workspace member roles.
const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"
)

// Workspace is the top-level container for projects.
type Workspace struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Projects []Project         `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	BaseModel

	WorkspaceID string `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user" json:"workspace_id"`
	UserID      string `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user" json:"user_id"`
	User        *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Role     string    `gorm:"default:member" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Invitation invites an email address into a workspace. Redemption follows
// the same token semantics as email verification: single use, expiring.
type Invitation struct {
	BaseModel

	WorkspaceID string `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Email       string `gorm:"not null;index" json:"email"`
	Role        string `gorm:"default:member" json:"role"`

	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	InvitedByID string `gorm:"type:uuid" json:"invited_by_id"`
}
