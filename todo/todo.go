package todo

import "time"

// Todo represents a single task.
type Todo struct {
	// ID is a unique identifier (8-char hash, derived from the initial
	// title + creation time), immutable after creation.
	ID string `json:"id"`

	// Title is the short summary of the todo (max 200 chars).
	Title string `json:"title"`

	// Description provides additional context (max 1000 chars).
	Description string `json:"description,omitempty"`

	// Completed reports whether the todo is finished.
	Completed bool `json:"completed"`

	// Priority is the importance level (low, medium, high).
	Priority Priority `json:"priority"`

	// CategoryID references the owning category. The reference is
	// enforced only on the Manager's write path; loaded data may point
	// at a category that no longer exists.
	CategoryID string `json:"categoryId"`

	// CreatedAt is when the todo was created, immutable.
	CreatedAt Timestamp `json:"createdAt"`

	// CompletedAt is set exactly when Completed transitions to true and
	// cleared when it transitions back to false. Maintained only by the
	// Manager's update path.
	CompletedAt *Timestamp `json:"completedAt,omitempty"`

	// DueDate is when the todo is due (nil when unset).
	DueDate *Timestamp `json:"dueDate,omitempty"`
}

// IsOverdue reports whether the todo has a due date in the past and is
// not completed.
func (t Todo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}
