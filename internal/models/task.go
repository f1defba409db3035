package models

import "time"

// Task is a unit of work inside a project. Number is assigned sequentially
// per project and never reused.
type Task struct {
	BaseModel

	ProjectID string   `gorm:"type:uuid;not null;uniqueIndex:idx_task_project_number" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"-"`

	Number      int    `gorm:"not null;uniqueIndex:idx_task_project_number" json:"number"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	StatusID   *string `gorm:"type:uuid" json:"status_id,omitempty"`
	PriorityID *string `gorm:"type:uuid" json:"priority_id,omitempty"`

	AssigneeID *string `gorm:"type:uuid" json:"assignee_id,omitempty"`
	ReporterID string  `gorm:"type:uuid" json:"reporter_id"`

	DueDate *time.Time `json:"due_date,omitempty"`

	Comments    []Comment    `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Activities  []Activity   `gorm:"foreignKey:TaskID" json:"activities,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}

// Comment is a discussion entry on a task.
type Comment struct {
	BaseModel

	TaskID   string `gorm:"type:uuid;not null;index" json:"task_id"`
	AuthorID string `gorm:"type:uuid;not null" json:"author_id"`
	Body     string `gorm:"not null" json:"body"`
}

// Activity records an action taken on a task (created, status change, ...).
type Activity struct {
	BaseModel

	TaskID  string `gorm:"type:uuid;not null;index" json:"task_id"`
	ActorID string `gorm:"type:uuid" json:"actor_id"`
	Action  string `gorm:"not null" json:"action"`
	Detail  string `json:"detail,omitempty"`
}

// Attachment references an uploaded file linked to a task.
type Attachment struct {
	BaseModel

	TaskID     string `gorm:"type:uuid;not null;index" json:"task_id"`
	Name       string `gorm:"not null" json:"name"`
	URL        string `gorm:"not null" json:"url"`
	Size       int64  `json:"size"`
	UploaderID string `gorm:"type:uuid" json:"uploader_id"`
}
