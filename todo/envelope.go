package todo

import (
	"encoding/json"
	"fmt"
)

// Envelope is the top-level persisted structure: both record sets plus
// format version and modification metadata.
type Envelope struct {
	Todos        []Todo     `json:"todos"`
	Categories   []Category `json:"categories"`
	Version      string     `json:"version"`
	LastModified Timestamp  `json:"lastModified"`
}

// envelopeShape mirrors the envelope with nilable fields so that a
// missing or null collection is distinguishable from an empty one.
type envelopeShape struct {
	Todos      *[]json.RawMessage `json:"todos"`
	Categories *[]json.RawMessage `json:"categories"`
	Version    *string            `json:"version"`
}

// validateEnvelopeShape checks the structural integrity of raw envelope
// JSON: object-ness of the envelope, array-ness of both collections, and
// the presence and type of the version marker.
func validateEnvelopeShape(data []byte) error {
	var shape envelopeShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return fmt.Errorf("envelope is not a valid JSON object: %w", err)
	}
	if shape.Todos == nil {
		return fmt.Errorf("envelope is missing the todos array")
	}
	if shape.Categories == nil {
		return fmt.Errorf("envelope is missing the categories array")
	}
	if shape.Version == nil {
		return fmt.Errorf("envelope is missing the version marker")
	}
	return nil
}

// validate checks the presence of every required scalar per record.
// Business rules (lengths, uniqueness, color format) are deliberately
// not checked here; they belong to the Manager's write path.
func (e *Envelope) validate() error {
	if e.Version == "" {
		return fmt.Errorf("envelope version is empty")
	}
	for i, item := range e.Todos {
		if item.ID == "" {
			return fmt.Errorf("todo %d has no id", i)
		}
		if item.Title == "" {
			return fmt.Errorf("todo %s has no title", item.ID)
		}
		if item.Priority == "" {
			return fmt.Errorf("todo %s has no priority", item.ID)
		}
		if item.CreatedAt.IsZero() {
			return fmt.Errorf("todo %s has no creation time", item.ID)
		}
	}
	for i, category := range e.Categories {
		if category.ID == "" {
			return fmt.Errorf("category %d has no id", i)
		}
		if category.Name == "" {
			return fmt.Errorf("category %s has no name", category.ID)
		}
	}
	return nil
}

// integrityWarnings reports todos whose category reference is dangling.
// Soft referential integrity: categories may be deleted independently
// and todos reassigned later, so this warns instead of failing.
func (e *Envelope) integrityWarnings() []string {
	known := make(map[string]bool, len(e.Categories))
	for _, category := range e.Categories {
		known[category.ID] = true
	}

	var warnings []string
	for _, item := range e.Todos {
		if item.CategoryID != "" && !known[item.CategoryID] {
			warnings = append(warnings, fmt.Sprintf("todo %s references missing category %s", item.ID, item.CategoryID))
		}
	}
	return warnings
}
