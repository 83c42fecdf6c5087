package todo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tasknest/tasknest/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a todo title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a todo title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrDescriptionTooLong is returned when a description exceeds
	// MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrEmptyCategoryID is returned when a todo carries no category
	// reference.
	ErrEmptyCategoryID = errors.New("category id cannot be empty")

	// ErrInvalidDueDate is returned when a due date carries no usable
	// time value.
	ErrInvalidDueDate = errors.New("due date is not a valid time")

	// ErrEmptyCategoryName is returned when a category name is empty.
	ErrEmptyCategoryName = errors.New("category name cannot be empty")

	// ErrCategoryNameTooLong is returned when a category name exceeds
	// MaxCategoryNameLength.
	ErrCategoryNameTooLong = errors.New("category name exceeds maximum length")

	// ErrReservedCategoryName is returned when a category name collides
	// with a filter keyword.
	ErrReservedCategoryName = errors.New("category name is reserved")

	// ErrInvalidColor is returned when a color is not a 3- or 6-digit
	// hex code.
	ErrInvalidColor = errors.New("color must be a 3- or 6-digit hex code")
)

var colorPattern = regexp.MustCompile(`^#?(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTitle checks if a todo title is valid.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateDescription checks if a todo description is valid. An empty
// description is valid.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, len(description), MaxDescriptionLength)
	}
	return nil
}

// ValidatePriority checks if the priority is a member of the three-value
// enumeration.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return nil
}

// ValidateCategoryID checks that a todo references some category. Whether
// the category exists is the Manager's concern, not a shape check.
func ValidateCategoryID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyCategoryID
	}
	return nil
}

// ValidateDueDate checks that a due date, when present, carries a usable
// time value.
func ValidateDueDate(due *Timestamp) error {
	if due == nil {
		return nil
	}
	if due.IsZero() {
		return ErrInvalidDueDate
	}
	return nil
}

// ValidateCategoryName checks a category name's shape, reserved-word
// exclusion, and case-insensitive uniqueness against existing.
// excludeID skips the category being updated.
func ValidateCategoryName(name string, existing []Category, excludeID string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyCategoryName
	}
	if len(trimmed) > MaxCategoryNameLength {
		return fmt.Errorf("%w: %d > %d", ErrCategoryNameTooLong, len(trimmed), MaxCategoryNameLength)
	}

	lower := strings.ToLower(trimmed)
	for _, reserved := range ReservedCategoryNames() {
		if lower == reserved {
			return fmt.Errorf("%w: %q", ErrReservedCategoryName, trimmed)
		}
	}

	for _, category := range existing {
		if excludeID != "" && category.ID == excludeID {
			continue
		}
		if strings.EqualFold(category.Name, trimmed) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
		}
	}

	return nil
}

// ValidateColor checks if a color is a 3- or 6-digit hex code, with or
// without a leading '#'.
func ValidateColor(color string) error {
	if !colorPattern.MatchString(strings.TrimSpace(color)) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}

// NormalizeColor lowercases a hex color and ensures a leading '#'.
// The input is assumed to have passed ValidateColor.
func NormalizeColor(color string) string {
	value := strings.ToLower(strings.TrimSpace(color))
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	return value
}

// firstError returns the first non-nil error, so callers can compose
// multiple validations without nested control flow.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
