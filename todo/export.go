package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
)

const exportWrapWidth = 76

// Export loads the current data and writes a human-readable snapshot,
// including summary counts, to path.
func (s *Store) Export(path string) error {
	todos, categories, err := s.Load()
	if err != nil {
		return &Error{Code: CodeExport, Message: "export todo data", cause: err}
	}

	snapshot := renderExport(todos, categories, time.Now())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Code: CodeExport, Message: "export todo data", cause: fmt.Errorf("create export dir: %w", err)}
	}
	if err := os.WriteFile(path, []byte(snapshot), 0o644); err != nil {
		return &Error{Code: CodeExport, Message: "export todo data", cause: fmt.Errorf("write export: %w", err)}
	}

	return nil
}

func renderExport(todos []Todo, categories []Category, now time.Time) string {
	completed := 0
	for _, item := range todos {
		if item.Completed {
			completed++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tasknest export\n")
	fmt.Fprintf(&b, "generated: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "todos: %d (%d completed, %d pending)\n", len(todos), completed, len(todos)-completed)
	fmt.Fprintf(&b, "categories: %d\n", len(categories))

	byCategory := make(map[string][]Todo)
	for _, item := range todos {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	sorted := append([]Category(nil), categories...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	for _, category := range sorted {
		members := byCategory[category.ID]
		delete(byCategory, category.ID)
		fmt.Fprintf(&b, "\n## %s (%s) - %d todo(s)\n", category.Name, category.Color, len(members))
		writeExportTodos(&b, members)
	}

	// Todos whose category no longer exists still belong in the snapshot.
	var orphaned []Todo
	for _, members := range byCategory {
		orphaned = append(orphaned, members...)
	}
	if len(orphaned) > 0 {
		sort.Slice(orphaned, func(i, j int) bool { return orphaned[i].ID < orphaned[j].ID })
		fmt.Fprintf(&b, "\n## (no category) - %d todo(s)\n", len(orphaned))
		writeExportTodos(&b, orphaned)
	}

	return b.String()
}

func writeExportTodos(b *strings.Builder, todos []Todo) {
	for _, item := range todos {
		marker := " "
		if item.Completed {
			marker = "x"
		}

		var extras []string
		extras = append(extras, string(item.Priority))
		if item.DueDate != nil {
			extras = append(extras, "due "+item.DueDate.Format("2006-01-02"))
		}

		fmt.Fprintf(b, "[%s] %s  %s (%s)\n", marker, item.ID, item.Title, strings.Join(extras, ", "))
		if item.Description != "" {
			wrapped := wordwrap.String(item.Description, exportWrapWidth)
			for _, line := range strings.Split(wrapped, "\n") {
				fmt.Fprintf(b, "      %s\n", line)
			}
		}
	}
}
