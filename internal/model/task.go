package model

import "time"

// Task is a single to-do item, cloud- or locally-persisted.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate,omitempty"` // YYYY-MM-DD, empty means no due date
	DueTime     string     `json:"dueTime,omitempty"` // HH:MM, meaningless without DueDate
	IsCompleted bool       `json:"isCompleted"`
	IsStarred   bool       `json:"isStarred"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DueAt resolves the task's effective due moment. A task without a due date
// has none; a due date without a time is due at the end of that day. A due
// time without a due date is ignored.
func (t Task) DueAt(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	if t.DueTime != "" {
		if due, err := time.ParseInLocation("2006-01-02 15:04", t.DueDate+" "+t.DueTime, loc); err == nil {
			return due, true
		}
	}
	due, err := time.ParseInLocation("2006-01-02 15:04:05", t.DueDate+" 23:59:59", loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// TaskDraft carries the user-supplied fields for a new task.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	DueTime     *string
}
