package models

// Status categories used to group task statuses on boards.
const (
	StatusCategoryTodo       = "todo"
	StatusCategoryInProgress = "in_progress"
	StatusCategoryDone       = "done"
)

// Project groups tasks inside a workspace. Key is the short human-facing
// prefix for task references (e.g. MJZ-42) and is unique per workspace.
type Project struct {
	BaseModel

	WorkspaceID string     `gorm:"type:uuid;not null;uniqueIndex:idx_project_workspace_key" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Key         string `gorm:"not null;uniqueIndex:idx_project_workspace_key" json:"key"`
	Description string `json:"description,omitempty"`

	LeadID   *string `gorm:"type:uuid" json:"lead_id,omitempty"`
	Archived bool    `gorm:"default:false" json:"archived"`

	// NextTaskNumber is the monotonically increasing counter backing
	// project-scoped task numbers.
	NextTaskNumber int `gorm:"default:1" json:"-"`

	Statuses   []TaskStatus   `gorm:"foreignKey:ProjectID" json:"statuses,omitempty"`
	Priorities []TaskPriority `gorm:"foreignKey:ProjectID" json:"priorities,omitempty"`
}

// TaskStatus is a project-scoped workflow column.
type TaskStatus struct {
	BaseModel

	ProjectID string `gorm:"type:uuid;not null;index" json:"project_id"`
	Name      string `gorm:"not null" json:"name"`
	Category  string `gorm:"default:todo" json:"category"`
	SortOrder int    `json:"sort_order"`
}

// TaskPriority is a project-scoped priority level.
type TaskPriority struct {
	BaseModel

	ProjectID string `gorm:"type:uuid;not null;index" json:"project_id"`
	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `json:"sort_order"`
}
