package main

import (
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/markdown"
	"github.com/tasknest/tasknest/internal/ui"
	"github.com/tasknest/tasknest/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(manager *todo.Manager, todos []todo.Todo, now time.Time) {
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return
	}

	fmt.Print(formatTodoTable(todos, categoryNames(manager), ui.HighlightID, now))
}

func formatTodoTable(todos []todo.Todo, names map[string]string, highlight func(string, int) string, now time.Time) string {
	table := ui.NewTable("ID", "S", "PRI", "AGE", "DUE", "CATEGORY", "TITLE")

	prefixLengths := todoPrefixLengths(todos)

	for _, t := range todos {
		table.Row(
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			statusCell(t),
			priorityCell(t.Priority),
			ui.FormatDurationShort(now.Sub(t.CreatedAt.Time)),
			dueCell(t, now),
			names[t.CategoryID],
			ui.TruncateCell(t.Title),
		)
	}

	return table.Render()
}

func todoPrefixLengths(todos []todo.Todo) map[string]int {
	recordIDs := make([]string, 0, len(todos))
	for _, t := range todos {
		recordIDs = append(recordIDs, t.ID)
	}
	return ui.UniqueIDPrefixLengths(recordIDs)
}

func categoryNames(manager *todo.Manager) map[string]string {
	names := map[string]string{}
	categories, err := manager.AllCategories()
	if err != nil {
		return names
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func statusCell(t todo.Todo) string {
	if t.Completed {
		return doneStyle.Render("x")
	}
	return " "
}

func priorityCell(p todo.Priority) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(string(p))
	}
	return string(p)
}

func dueCell(t todo.Todo, now time.Time) string {
	if t.DueDate == nil {
		return "-"
	}
	value := t.DueDate.Local().Format("2006-01-02")
	if t.IsOverdue(now) {
		return overdueStyle.Render(value)
	}
	return value
}

// todoHighlighter returns a function highlighting the unique prefix of
// any known todo ID.
func todoHighlighter(manager *todo.Manager) (func(string) string, error) {
	todos, err := manager.AllTodos()
	if err != nil {
		return nil, err
	}
	prefixLengths := todoPrefixLengths(todos)
	return func(id string) string {
		return ui.HighlightID(id, ui.PrefixLength(prefixLengths, id))
	}, nil
}

const todoDetailLineWidth = 80

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(manager *todo.Manager, t todo.Todo, highlight func(string) string) {
	fmt.Printf("ID:        %s\n", highlight(t.ID))
	fmt.Printf("Title:     %s\n", t.Title)
	fmt.Printf("Status:    %s\n", statusName(t))
	fmt.Printf("Priority:  %s\n", t.Priority)
	if category, err := manager.CategoryByID(t.CategoryID); err == nil {
		fmt.Printf("Category:  %s\n", categorySwatch(*category))
	}
	fmt.Printf("Created:   %s (%s)\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(t.CreatedAt.Time, time.Now()))

	if t.DueDate != nil {
		fmt.Printf("Due:       %s\n", t.DueDate.Local().Format("2006-01-02"))
	}
	if t.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", t.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	}

	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", markdown.Render(todoDetailLineWidth, 2, t.Description))
	}
}

func statusName(t todo.Todo) string {
	if t.Completed {
		return "completed"
	}
	return "active"
}
