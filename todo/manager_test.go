package todo

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()

	if opts.Store.DataFile == "" {
		dir := t.TempDir()
		opts.Store.DataFile = filepath.Join(dir, "todos.json")
		opts.Store.BackupDir = filepath.Join(dir, "backups")
	}

	manager, err := NewManager(opts)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := manager.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return manager
}

func addCategory(t *testing.T, m *Manager, name string) *Category {
	t.Helper()

	category, err := m.AddCategory(CategoryInput{Name: name, Color: "#4a90d9"})
	if err != nil {
		t.Fatalf("AddCategory(%q): %v", name, err)
	}
	return category
}

func addTodo(t *testing.T, m *Manager, input TodoInput) *Todo {
	t.Helper()

	item, err := m.AddTodo(input)
	if err != nil {
		t.Fatalf("AddTodo(%q): %v", input.Title, err)
	}
	return item
}

func TestOperationsBeforeInitialize(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(Options{
		Store: StoreOptions{DataFile: filepath.Join(dir, "todos.json")},
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := manager.AllTodos(); CodeOf(err) != CodeNotInitialized {
		t.Fatalf("AllTodos code = %q, want %q", CodeOf(err), CodeNotInitialized)
	}
	if _, err := manager.AddTodo(TodoInput{Title: "x"}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := manager.Save(); CodeOf(err) != CodeNotInitialized {
		t.Fatalf("Save code = %q, want %q", CodeOf(err), CodeNotInitialized)
	}
}

func TestInitializeSeedsDefaultCategories(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true, DefaultCategories: true})

	categories, err := manager.AllCategories()
	if err != nil {
		t.Fatalf("AllCategories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("expected 4 starter categories, got %d", len(categories))
	}

	wantNames := map[string]string{
		"Personal": "#4a90d9",
		"Work":     "#e06c75",
		"Shopping": "#98c379",
		"Health":   "#c678dd",
	}
	for _, category := range categories {
		color, ok := wantNames[category.Name]
		if !ok {
			t.Fatalf("unexpected starter category %q", category.Name)
		}
		if category.Color != color {
			t.Fatalf("category %q color = %q, want %q", category.Name, category.Color, color)
		}
		if category.TodoCount != 0 {
			t.Fatalf("starter category %q count = %d, want 0", category.Name, category.TodoCount)
		}
	}

	todos, err := manager.AllTodos()
	if err != nil {
		t.Fatalf("AllTodos: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected no todos on first run, got %d", len(todos))
	}
}

func TestSeedingSkippedWhenCategoriesExist(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "todos.json")

	first := newTestManager(t, Options{
		Store:    StoreOptions{DataFile: dataFile},
		AutoSave: true,
	})
	addCategory(t, first, "Only")

	second := newTestManager(t, Options{
		Store:             StoreOptions{DataFile: dataFile},
		AutoSave:          true,
		DefaultCategories: true,
	})
	categories, err := second.AllCategories()
	if err != nil {
		t.Fatalf("AllCategories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Only" {
		t.Fatalf("expected existing category set untouched, got %+v", categories)
	}
}

func TestAddTodoUpdatesCountsAndFilters(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Shopping")

	item := addTodo(t, manager, TodoInput{
		Title:      "Buy milk",
		Priority:   PriorityHigh,
		CategoryID: category.ID,
	})
	if item.ID == "" || item.CreatedAt.IsZero() {
		t.Fatalf("expected assigned identity, got %+v", item)
	}

	high, err := manager.TodosByPriority(PriorityHigh)
	if err != nil {
		t.Fatalf("TodosByPriority: %v", err)
	}
	if len(high) != 1 || high[0].Title != "Buy milk" {
		t.Fatalf("expected one high-priority todo, got %+v", high)
	}

	got, err := manager.CategoryByID(category.ID)
	if err != nil {
		t.Fatalf("CategoryByID: %v", err)
	}
	if got.TodoCount != 1 {
		t.Fatalf("TodoCount = %d, want 1", got.TodoCount)
	}
}

func TestAddTodoDefaultsPriorityToMedium(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")

	item := addTodo(t, manager, TodoInput{Title: "Unprioritized", CategoryID: category.ID})
	if item.Priority != PriorityMedium {
		t.Fatalf("Priority = %q, want %q", item.Priority, PriorityMedium)
	}
}

func TestAddTodoRejectsUnknownCategory(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})

	_, err := manager.AddTodo(TodoInput{Title: "Lost", CategoryID: "nope"})
	if CodeOf(err) != CodeCategoryNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeCategoryNotFound)
	}
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestAddTodoValidation(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")

	tests := []struct {
		name     string
		input    TodoInput
		sentinel error
	}{
		{
			name:     "empty title",
			input:    TodoInput{CategoryID: category.ID},
			sentinel: ErrEmptyTitle,
		},
		{
			name:     "long title",
			input:    TodoInput{Title: strings.Repeat("a", MaxTitleLength+1), CategoryID: category.ID},
			sentinel: ErrTitleTooLong,
		},
		{
			name:     "bad priority",
			input:    TodoInput{Title: "x", Priority: "urgent", CategoryID: category.ID},
			sentinel: ErrInvalidPriority,
		},
		{
			name:     "missing category",
			input:    TodoInput{Title: "x"},
			sentinel: ErrEmptyCategoryID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.AddTodo(tt.input)
			if CodeOf(err) != CodeValidation {
				t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeValidation)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}

	if todos, _ := manager.AllTodos(); len(todos) != 0 {
		t.Fatalf("rejected adds must not change state, got %d todos", len(todos))
	}
}

func TestUpdateTodoMovesCategoryCounts(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	from := addCategory(t, manager, "From")
	to := addCategory(t, manager, "To")
	item := addTodo(t, manager, TodoInput{Title: "Mover", CategoryID: from.ID})

	if _, err := manager.UpdateTodo(item.ID, TodoUpdate{CategoryID: &to.ID}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	gotFrom, _ := manager.CategoryByID(from.ID)
	gotTo, _ := manager.CategoryByID(to.ID)
	if gotFrom.TodoCount != 0 || gotTo.TodoCount != 1 {
		t.Fatalf("counts = %d/%d, want 0/1", gotFrom.TodoCount, gotTo.TodoCount)
	}
}

func TestUpdateTodoRejectedUpdateIsNotPartiallyApplied(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	item := addTodo(t, manager, TodoInput{Title: "Original", CategoryID: category.ID})

	newTitle := "Changed"
	badPriority := Priority("urgent")
	_, err := manager.UpdateTodo(item.ID, TodoUpdate{Title: &newTitle, Priority: &badPriority})
	if CodeOf(err) != CodeValidation {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeValidation)
	}

	got, _ := manager.TodoByID(item.ID)
	if got.Title != "Original" {
		t.Fatalf("rejected update changed title to %q", got.Title)
	}
}

func TestCompletionMaintainsCompletedAt(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	item := addTodo(t, manager, TodoInput{Title: "Finish me", CategoryID: category.ID})

	completed := true
	updated, err := manager.UpdateTodo(item.ID, TodoUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("expected completion timestamp, got %+v", updated)
	}
	firstCompletedAt := *updated.CompletedAt

	// Completing an already-completed todo keeps the original stamp.
	updated, err = manager.UpdateTodo(item.ID, TodoUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(firstCompletedAt.Time) {
		t.Fatalf("re-completion changed the timestamp: %+v", updated.CompletedAt)
	}

	pending := false
	updated, err = manager.UpdateTodo(item.ID, TodoUpdate{Completed: &pending})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.Completed || updated.CompletedAt != nil {
		t.Fatalf("expected cleared completion, got %+v", updated)
	}
}

func TestToggleCompletion(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	item := addTodo(t, manager, TodoInput{Title: "Flip", CategoryID: category.ID})

	toggled, err := manager.ToggleCompletion(item.ID)
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected completed after first toggle")
	}

	toggled, err = manager.ToggleCompletion(item.ID)
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if toggled.Completed {
		t.Fatal("expected pending after second toggle")
	}
}

func TestClearDueDate(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	item := addTodo(t, manager, TodoInput{
		Title:      "Dated",
		CategoryID: category.ID,
		DueDate:    TimestampPtr(time.Now().Add(24 * time.Hour)),
	})

	updated, err := manager.UpdateTodo(item.ID, TodoUpdate{ClearDueDate: true})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected cleared due date, got %+v", updated.DueDate)
	}
}

func TestDeleteTodoNotFound(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})

	err := manager.DeleteTodo("missing1")
	if CodeOf(err) != CodeTodoNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeTodoNotFound)
	}
}

func TestDuplicateCategoryNames(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	addCategory(t, manager, "Work")

	_, err := manager.AddCategory(CategoryInput{Name: "work", Color: "#123456"})
	if CodeOf(err) != CodeDuplicateName {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeDuplicateName)
	}
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestUpdateCategoryRenameToOwnNameAllowed(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Work")

	name := "Work"
	color := "E06C75"
	updated, err := manager.UpdateCategory(category.ID, CategoryUpdate{Name: &name, Color: &color})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Color != "#e06c75" {
		t.Fatalf("expected normalized color, got %q", updated.Color)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Doomed")
	addTodo(t, manager, TodoInput{Title: "Goes with it", CategoryID: category.ID})

	if err := manager.DeleteCategory(category.ID, ""); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	todos, _ := manager.AllTodos()
	if len(todos) != 0 {
		t.Fatalf("expected cascade delete, got %d todos", len(todos))
	}
	if _, err := manager.CategoryByID(category.ID); CodeOf(err) != CodeCategoryNotFound {
		t.Fatalf("expected category gone, got %v", err)
	}
}

func TestDeleteCategoryReassigns(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	doomed := addCategory(t, manager, "Doomed")
	haven := addCategory(t, manager, "Haven")
	item := addTodo(t, manager, TodoInput{Title: "Survivor", CategoryID: doomed.ID})

	if err := manager.DeleteCategory(doomed.ID, haven.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, err := manager.TodoByID(item.ID)
	if err != nil {
		t.Fatalf("TodoByID: %v", err)
	}
	if got.CategoryID != haven.ID {
		t.Fatalf("CategoryID = %q, want %q", got.CategoryID, haven.ID)
	}

	gotHaven, _ := manager.CategoryByID(haven.ID)
	if gotHaven.TodoCount != 1 {
		t.Fatalf("TodoCount = %d, want 1", gotHaven.TodoCount)
	}
}

func TestDeleteCategoryUnknownReassignTarget(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Solo")

	err := manager.DeleteCategory(category.ID, "missing1")
	if CodeOf(err) != CodeCategoryNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeCategoryNotFound)
	}
	if _, err := manager.CategoryByID(category.ID); err != nil {
		t.Fatalf("category must survive a rejected delete: %v", err)
	}
}

func TestSearchTodosIsCaseSensitive(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	addTodo(t, manager, TodoInput{Title: "Call Mom", CategoryID: category.ID})
	addTodo(t, manager, TodoInput{Title: "buy stamps", Description: "Call the post office", CategoryID: category.ID})

	matches, err := manager.SearchTodos("Call")
	if err != nil {
		t.Fatalf("SearchTodos: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	matches, err = manager.SearchTodos("call")
	if err != nil {
		t.Fatalf("SearchTodos: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected case-sensitive search, got %d matches", len(matches))
	}
}

func TestOverdueTodos(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")

	now := time.Now()
	addTodo(t, manager, TodoInput{Title: "Late", CategoryID: category.ID, DueDate: TimestampPtr(now.Add(-time.Hour))})
	addTodo(t, manager, TodoInput{Title: "On time", CategoryID: category.ID, DueDate: TimestampPtr(now.Add(time.Hour))})
	done := addTodo(t, manager, TodoInput{Title: "Late but done", CategoryID: category.ID, DueDate: TimestampPtr(now.Add(-time.Hour))})
	if _, err := manager.ToggleCompletion(done.ID); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}

	overdue, err := manager.OverdueTodos()
	if err != nil {
		t.Fatalf("OverdueTodos: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Title != "Late" {
		t.Fatalf("expected only the late pending todo, got %+v", overdue)
	}
}

func TestResolveTodoID(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")
	first := addTodo(t, manager, TodoInput{Title: "First", CategoryID: category.ID})

	resolved, err := manager.ResolveTodoID(first.ID[:4])
	if err != nil {
		t.Fatalf("ResolveTodoID: %v", err)
	}
	if resolved != first.ID {
		t.Fatalf("resolved %q, want %q", resolved, first.ID)
	}

	if _, err := manager.ResolveTodoID("zzzz9999"); CodeOf(err) != CodeTodoNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeTodoNotFound)
	}
}

func TestResolveCategoryIDByName(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Errands")

	resolved, err := manager.ResolveCategoryID("errands")
	if err != nil {
		t.Fatalf("ResolveCategoryID: %v", err)
	}
	if resolved != category.ID {
		t.Fatalf("resolved %q, want %q", resolved, category.ID)
	}

	if _, err := manager.ResolveCategoryID("nothing"); CodeOf(err) != CodeCategoryNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(err), CodeCategoryNotFound)
	}
}

func TestStatistics(t *testing.T) {
	manager := newTestManager(t, Options{AutoSave: true})
	category := addCategory(t, manager, "Inbox")

	now := time.Now()
	addTodo(t, manager, TodoInput{Title: "a", Priority: PriorityHigh, CategoryID: category.ID, DueDate: TimestampPtr(now.Add(-time.Hour))})
	addTodo(t, manager, TodoInput{Title: "b", Priority: PriorityLow, CategoryID: category.ID})
	done := addTodo(t, manager, TodoInput{Title: "c", CategoryID: category.ID})
	if _, err := manager.ToggleCompletion(done.ID); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}

	stats, err := manager.Statistics()
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	if stats.TotalTodos != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Fatalf("totals = %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Fatalf("Overdue = %d, want 1", stats.Overdue)
	}
	if stats.ByPriority[PriorityHigh] != 1 || stats.ByPriority[PriorityLow] != 1 || stats.ByPriority[PriorityMedium] != 1 {
		t.Fatalf("ByPriority = %+v", stats.ByPriority)
	}
	if stats.Categories != 1 {
		t.Fatalf("Categories = %d, want 1", stats.Categories)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "todos.json")

	first := newTestManager(t, Options{
		Store:    StoreOptions{DataFile: dataFile},
		AutoSave: true,
	})
	category := addCategory(t, first, "Persistent")
	item := addTodo(t, first, TodoInput{Title: "Still here", CategoryID: category.ID})

	second := newTestManager(t, Options{
		Store:    StoreOptions{DataFile: dataFile},
		AutoSave: true,
	})

	got, err := second.TodoByID(item.ID)
	if err != nil {
		t.Fatalf("TodoByID after restart: %v", err)
	}
	if got.Title != "Still here" || got.CategoryID != category.ID {
		t.Fatalf("restored todo = %+v", got)
	}

	gotCategory, err := second.CategoryByID(category.ID)
	if err != nil {
		t.Fatalf("CategoryByID after restart: %v", err)
	}
	if gotCategory.TodoCount != 1 {
		t.Fatalf("restored TodoCount = %d, want 1", gotCategory.TodoCount)
	}
}

func TestNoAutoSaveDefersPersistence(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "todos.json")

	manager := newTestManager(t, Options{
		Store: StoreOptions{DataFile: dataFile},
	})
	category := addCategory(t, manager, "Volatile")
	addTodo(t, manager, TodoInput{Title: "Unsaved", CategoryID: category.ID})

	stats, err := manager.StoreStats()
	if err != nil {
		t.Fatalf("StoreStats: %v", err)
	}
	if stats.Exists {
		t.Fatal("expected no data file before explicit save")
	}

	if err := manager.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	stats, err = manager.StoreStats()
	if err != nil {
		t.Fatalf("StoreStats: %v", err)
	}
	if !stats.Exists {
		t.Fatal("expected data file after explicit save")
	}
}
