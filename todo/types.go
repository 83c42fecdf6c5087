// Package todo implements the durable data core of the tasknest task
// tracker.
//
// Todos are grouped into categories and persisted as a single JSON
// envelope with rolling backup snapshots. The Manager is the
// authoritative holder of the in-memory record sets: it validates
// writes, maintains referential integrity and derived category counts,
// optionally persists after every mutation, and notifies subscribers of
// each change. The Store maps record sets to disk using atomic file
// replacement and recovers from a corrupted data file via the newest
// backup.
//
// The public API mirrors the CLI commands:
//   - AddTodo, UpdateTodo, DeleteTodo, ToggleCompletion for todo lifecycle
//   - AddCategory, UpdateCategory, DeleteCategory for categories
//   - AllTodos, TodosByCategory, SearchTodos, OverdueTodos for querying
//   - Save, Backup, Export, StoreStats for data management
package todo

// Priority represents the importance of a todo.
type Priority string

const (
	// PriorityLow is the least urgent priority.
	PriorityLow Priority = "low"

	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"

	// PriorityHigh is the most urgent priority.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values in ascending order
// of urgency.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority (low = 0, high = 2).
// Unknown priorities rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return 3
	}
}

// DataVersion is the envelope format version written at every save.
const DataVersion = "1.0"

const (
	// MaxTitleLength is the maximum allowed length for a todo title.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum allowed length for a todo
	// description.
	MaxDescriptionLength = 1000

	// MaxCategoryNameLength is the maximum allowed length for a category
	// name.
	MaxCategoryNameLength = 50
)

// ReservedCategoryNames returns the filter keywords that cannot be used
// as category names.
func ReservedCategoryNames() []string {
	return []string{"all", "active", "completed", "overdue"}
}
