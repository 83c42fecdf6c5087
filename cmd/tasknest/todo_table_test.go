package main

import (
	"strings"
	"testing"
	"time"

	"github.com/tasknest/tasknest/todo"
)

func sampleTodos(now time.Time) []todo.Todo {
	return []todo.Todo{
		{
			ID:         "abc12345",
			Title:      "First item",
			Priority:   todo.PriorityHigh,
			CategoryID: "cat1",
			CreatedAt:  todo.NewTimestamp(now.Add(-2 * time.Hour)),
		},
		{
			ID:         "abd45678",
			Title:      "Second item",
			Completed:  true,
			Priority:   todo.PriorityLow,
			CategoryID: "cat2",
			CreatedAt:  todo.NewTimestamp(now.Add(-48 * time.Hour)),
		},
	}
}

func TestFormatTodoTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	todos := sampleTodos(now)
	names := map[string]string{"cat1": "Work", "cat2": "Personal"}

	plain := formatTodoTable(todos, names, func(id string, prefix int) string { return id }, now)
	ansi := formatTodoTable(todos, names, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}, now)

	if stripEscapeCodes(ansi) != stripEscapeCodes(plain) {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestFormatTodoTableShowsCategoryNames(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	todos := sampleTodos(now)
	names := map[string]string{"cat1": "Work", "cat2": "Personal"}

	got := formatTodoTable(todos, names, func(id string, prefix int) string { return id }, now)

	if !strings.Contains(got, "Work") || !strings.Contains(got, "Personal") {
		t.Fatalf("expected category names in output:\n%s", got)
	}
}

func TestFormatTodoTableAges(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	todos := sampleTodos(now)

	got := formatTodoTable(todos, nil, func(id string, prefix int) string { return id }, now)

	if !strings.Contains(got, "2h") {
		t.Fatalf("expected 2h age in output:\n%s", got)
	}
	if !strings.Contains(got, "2d") {
		t.Fatalf("expected 2d age in output:\n%s", got)
	}
}

func TestDueCellMarksOverdue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	item := todo.Todo{
		ID:        "abc12345",
		Title:     "Late",
		DueDate:   todo.TimestampPtr(time.Date(2024, 12, 31, 12, 0, 0, 0, time.Local)),
		CreatedAt: todo.NewTimestamp(now.Add(-48 * time.Hour)),
	}

	got := dueCell(item, now)

	if !strings.Contains(stripEscapeCodes(got), "2024-12-31") {
		t.Fatalf("expected due date in cell, got %q", got)
	}
}

func TestDueCellDashWhenUnset(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := dueCell(todo.Todo{}, now); got != "-" {
		t.Fatalf("dueCell() = %q, want -", got)
	}
}

func stripEscapeCodes(value string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range value {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
