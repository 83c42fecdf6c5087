package todo

// Category groups related todos.
type Category struct {
	// ID is a unique identifier, immutable after creation.
	ID string `json:"id"`

	// Name labels the category (max 50 chars, case-insensitively unique).
	Name string `json:"name"`

	// Color is a hex color code, normalized to a leading '#'.
	Color string `json:"color"`

	// TodoCount is the number of todos in the category. It is derived
	// state recomputed by the Manager and never settable by a caller.
	TodoCount int `json:"todoCount"`
}

// CategoryInput describes a new category.
type CategoryInput struct {
	Name  string
	Color string
}

// DefaultCategories returns the starter categories seeded when a store
// is initialized for the first time.
func DefaultCategories() []CategoryInput {
	return []CategoryInput{
		{Name: "Personal", Color: "#4a90d9"},
		{Name: "Work", Color: "#e06c75"},
		{Name: "Shopping", Color: "#98c379"},
		{Name: "Health", Color: "#c678dd"},
	}
}
