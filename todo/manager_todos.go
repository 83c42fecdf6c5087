package todo

import "strings"

// TodoInput describes a new todo.
type TodoInput struct {
	// Title is required (max 200 chars).
	Title string

	// Description is optional (max 1000 chars).
	Description string

	// Priority defaults to PriorityMedium when empty.
	Priority Priority

	// CategoryID must reference an existing category.
	CategoryID string

	// DueDate is optional.
	DueDate *Timestamp
}

// AddTodo validates input, assigns identity and creation time, appends
// the todo, and recomputes the owning category's count. The category
// reference is a hard check here, unlike the soft check on load.
func (m *Manager) AddTodo(input TodoInput) (*Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	if input.Priority == "" {
		input.Priority = PriorityMedium
	}

	if err := firstError(
		ValidateTitle(input.Title),
		ValidateDescription(input.Description),
		ValidatePriority(input.Priority),
		ValidateCategoryID(input.CategoryID),
		ValidateDueDate(input.DueDate),
	); err != nil {
		return nil, validationError(err)
	}

	if !m.hasCategory(input.CategoryID) {
		return nil, categoryNotFoundError(input.CategoryID)
	}

	now := m.now()
	item := Todo{
		ID:          GenerateID(input.Title, now),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		CategoryID:  input.CategoryID,
		CreatedAt:   NewTimestamp(now),
		DueDate:     input.DueDate,
	}

	m.todos = append(m.todos, item)
	m.recomputeCount(item.CategoryID)

	if err := m.persistAfterMutation(); err != nil {
		return nil, err
	}

	m.emit(Event{Name: EventTodoAdded, Todo: &item})
	return &item, nil
}

// TodoUpdate describes a partial update. Nil pointers mean "leave the
// field unchanged".
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	CategoryID  *string
	DueDate     *Timestamp

	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// UpdateTodo validates each supplied field independently, then applies
// the merged result. If the category changes, both the old and new
// category's counts are recomputed. The CompletedAt invariant is
// maintained here: set exactly on the false→true transition, cleared on
// true→false.
func (m *Manager) UpdateTodo(id string, update TodoUpdate) (*Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	index := m.findTodoIndex(id)
	if index < 0 {
		return nil, todoNotFoundError(id)
	}

	// Validate everything before touching anything, so a rejected
	// update is never partially applied.
	if update.Title != nil {
		if err := ValidateTitle(*update.Title); err != nil {
			return nil, validationError(err)
		}
	}
	if update.Description != nil {
		if err := ValidateDescription(*update.Description); err != nil {
			return nil, validationError(err)
		}
	}
	if update.Priority != nil {
		if err := ValidatePriority(*update.Priority); err != nil {
			return nil, validationError(err)
		}
	}
	if update.CategoryID != nil {
		if err := ValidateCategoryID(*update.CategoryID); err != nil {
			return nil, validationError(err)
		}
		if !m.hasCategory(*update.CategoryID) {
			return nil, categoryNotFoundError(*update.CategoryID)
		}
	}
	if update.DueDate != nil {
		if err := ValidateDueDate(update.DueDate); err != nil {
			return nil, validationError(err)
		}
	}

	item := &m.todos[index]
	previousCategory := item.CategoryID

	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Priority != nil {
		item.Priority = *update.Priority
	}
	if update.CategoryID != nil {
		item.CategoryID = *update.CategoryID
	}
	if update.DueDate != nil {
		item.DueDate = update.DueDate
	}
	if update.ClearDueDate {
		item.DueDate = nil
	}
	if update.Completed != nil && *update.Completed != item.Completed {
		item.Completed = *update.Completed
		if item.Completed {
			item.CompletedAt = TimestampPtr(m.now())
		} else {
			item.CompletedAt = nil
		}
	}

	if item.CategoryID != previousCategory {
		m.recomputeCount(previousCategory)
		m.recomputeCount(item.CategoryID)
	}

	if err := m.persistAfterMutation(); err != nil {
		return nil, err
	}

	updated := *item
	m.emit(Event{Name: EventTodoUpdated, Todo: &updated})
	return &updated, nil
}

// DeleteTodo removes the todo and recomputes the owning category's
// count.
func (m *Manager) DeleteTodo(id string) error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}

	index := m.findTodoIndex(id)
	if index < 0 {
		return todoNotFoundError(id)
	}

	categoryID := m.todos[index].CategoryID
	m.todos = append(m.todos[:index], m.todos[index+1:]...)
	m.recomputeCount(categoryID)

	if err := m.persistAfterMutation(); err != nil {
		return err
	}

	m.emit(Event{Name: EventTodoDeleted, ID: id})
	return nil
}

// ToggleCompletion flips a todo's completed flag through the normal
// update path.
func (m *Manager) ToggleCompletion(id string) (*Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	index := m.findTodoIndex(id)
	if index < 0 {
		return nil, todoNotFoundError(id)
	}

	completed := !m.todos[index].Completed
	return m.UpdateTodo(id, TodoUpdate{Completed: &completed})
}

// TodoByID returns a copy of the todo with the given ID.
func (m *Manager) TodoByID(id string) (*Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	index := m.findTodoIndex(id)
	if index < 0 {
		return nil, todoNotFoundError(id)
	}

	item := m.todos[index]
	return &item, nil
}

// AllTodos returns a copy of every todo.
func (m *Manager) AllTodos() ([]Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}
	return append([]Todo(nil), m.todos...), nil
}

// TodosByCategory returns the todos in the given category.
func (m *Manager) TodosByCategory(categoryID string) ([]Todo, error) {
	return m.filterTodos(func(item Todo) bool {
		return item.CategoryID == categoryID
	})
}

// TodosByStatus returns todos filtered by completion state.
func (m *Manager) TodosByStatus(completed bool) ([]Todo, error) {
	return m.filterTodos(func(item Todo) bool {
		return item.Completed == completed
	})
}

// TodosByPriority returns todos with the given priority.
func (m *Manager) TodosByPriority(priority Priority) ([]Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, validationError(err)
	}
	return m.filterTodos(func(item Todo) bool {
		return item.Priority == priority
	})
}

// OverdueTodos returns todos whose due date is in the past and are not
// completed.
func (m *Manager) OverdueTodos() ([]Todo, error) {
	now := m.now()
	return m.filterTodos(func(item Todo) bool {
		return item.IsOverdue(now)
	})
}

// SearchTodos returns todos whose title or description contains query
// as a case-sensitive substring.
func (m *Manager) SearchTodos(query string) ([]Todo, error) {
	return m.filterTodos(func(item Todo) bool {
		return strings.Contains(item.Title, query) || strings.Contains(item.Description, query)
	})
}

func (m *Manager) filterTodos(keep func(Todo) bool) ([]Todo, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	var result []Todo
	for _, item := range m.todos {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result, nil
}
