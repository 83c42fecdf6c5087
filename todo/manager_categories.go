package todo

import (
	"errors"
	"strings"
)

// buildCategory validates input and constructs a category with a fresh
// identity and a zero derived count. It does not mutate manager state.
func (m *Manager) buildCategory(input CategoryInput) (Category, error) {
	if err := ValidateCategoryName(input.Name, m.categories, ""); err != nil {
		return Category{}, err
	}
	if err := ValidateColor(input.Color); err != nil {
		return Category{}, err
	}

	return Category{
		ID:    GenerateID(input.Name, m.now()),
		Name:  strings.TrimSpace(input.Name),
		Color: NormalizeColor(input.Color),
	}, nil
}

// AddCategory validates name and color, assigns identity, and appends
// the category with a zero initial count.
func (m *Manager) AddCategory(input CategoryInput) (*Category, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	category, err := m.buildCategory(input)
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, duplicateNameError(input.Name, err)
		}
		return nil, validationError(err)
	}

	m.categories = append(m.categories, category)

	if err := m.persistAfterMutation(); err != nil {
		return nil, err
	}

	m.emit(Event{Name: EventCategoryAdded, Category: &category})
	return &category, nil
}

// CategoryUpdate describes a partial category update. Nil pointers mean
// "leave the field unchanged". There is deliberately no count field:
// TodoCount is derived state and can never be set by a caller.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// UpdateCategory re-validates any supplied name or color and applies
// the merged result. The uniqueness check for a new name excludes the
// category being updated.
func (m *Manager) UpdateCategory(id string, update CategoryUpdate) (*Category, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	index := m.findCategoryIndex(id)
	if index < 0 {
		return nil, categoryNotFoundError(id)
	}

	if update.Name != nil {
		if err := ValidateCategoryName(*update.Name, m.categories, id); err != nil {
			if errors.Is(err, ErrDuplicateName) {
				return nil, duplicateNameError(*update.Name, err)
			}
			return nil, validationError(err)
		}
	}
	if update.Color != nil {
		if err := ValidateColor(*update.Color); err != nil {
			return nil, validationError(err)
		}
	}

	category := &m.categories[index]
	if update.Name != nil {
		category.Name = strings.TrimSpace(*update.Name)
	}
	if update.Color != nil {
		category.Color = NormalizeColor(*update.Color)
	}

	if err := m.persistAfterMutation(); err != nil {
		return nil, err
	}

	updated := *category
	m.emit(Event{Name: EventCategoryUpdated, Category: &updated})
	return &updated, nil
}

// DeleteCategory removes a category. Its todos are first moved to
// reassignTo when given, or deleted otherwise, both through the normal
// todo paths so counts, persistence, and events follow the usual rules.
// Only after the todos are resolved is the category itself removed.
func (m *Manager) DeleteCategory(id string, reassignTo string) error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}

	if m.findCategoryIndex(id) < 0 {
		return categoryNotFoundError(id)
	}
	if reassignTo != "" && !m.hasCategory(reassignTo) {
		return categoryNotFoundError(reassignTo)
	}

	members, err := m.TodosByCategory(id)
	if err != nil {
		return err
	}
	for _, item := range members {
		if reassignTo != "" {
			if _, err := m.UpdateTodo(item.ID, TodoUpdate{CategoryID: &reassignTo}); err != nil {
				return err
			}
		} else if err := m.DeleteTodo(item.ID); err != nil {
			return err
		}
	}

	index := m.findCategoryIndex(id)
	m.categories = append(m.categories[:index], m.categories[index+1:]...)

	if err := m.persistAfterMutation(); err != nil {
		return err
	}

	m.emit(Event{Name: EventCategoryDeleted, ID: id})
	return nil
}

// CategoryByID returns a copy of the category with the given ID.
func (m *Manager) CategoryByID(id string) (*Category, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}

	index := m.findCategoryIndex(id)
	if index < 0 {
		return nil, categoryNotFoundError(id)
	}

	category := m.categories[index]
	return &category, nil
}

// AllCategories returns a copy of every category.
func (m *Manager) AllCategories() ([]Category, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, err
	}
	return append([]Category(nil), m.categories...), nil
}

// CategoryExists reports whether a category with the given ID exists.
func (m *Manager) CategoryExists(id string) (bool, error) {
	if err := m.ensureInitialized(); err != nil {
		return false, err
	}
	return m.hasCategory(id), nil
}
