package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/todo"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addDescription string
	addPriority    string
	addCategory    string
	addDue         string
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listCategory  string
	listPriority  string
	listCompleted bool
	listActive    bool
	listJSON      bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// done / undone
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more todos as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>...",
	Short: "Mark one or more todos as not completed",
	Aliases: []string{
		"reopen",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runUndone,
}

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a todo",
	Aliases: []string{
		"edit",
	},
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateCategory    string
	updateDue         string
	updateClearDue    bool
)

// rm
var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete one or more todos",
	Aliases: []string{
		"delete",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

// search
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search todos by title and description",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var searchJSON bool

// overdue
var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List todos that are past their due date",
	Args:  cobra.NoArgs,
	RunE:  runOverdue,
}

var overdueJSON bool

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, doneCmd, undoneCmd, updateCmd, rmCmd, searchCmd, overdueCmd)
	addDescriptionFlagAliases(addCmd, updateCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name or ID")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")

	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category name or ID")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "Show only completed todos")
	listCmd.Flags().BoolVar(&listActive, "active", false, "Show only active todos")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority (low, medium, high)")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "New category name or ID")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date (YYYY-MM-DD or RFC 3339)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "Remove the due date")

	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")

	overdueCmd.Flags().BoolVar(&overdueJSON, "json", false, "Output as JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	input := todo.TodoInput{
		Title:       args[0],
		Description: addDescription,
		Priority:    todo.Priority(strings.ToLower(addPriority)),
	}

	if addCategory != "" {
		categoryID, err := manager.ResolveCategoryID(addCategory)
		if err != nil {
			return err
		}
		input.CategoryID = categoryID
	} else if defaultID, ok := defaultCategoryID(manager); ok {
		input.CategoryID = defaultID
	}

	if addDue != "" {
		due, err := parseDueDate(addDue)
		if err != nil {
			return err
		}
		input.DueDate = due
	}

	created, err := manager.AddTodo(input)
	if err != nil {
		return err
	}

	highlight, err := todoHighlighter(manager)
	if err != nil {
		return err
	}
	fmt.Printf("Added todo %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	todos, err := manager.AllTodos()
	if err != nil {
		return err
	}

	if listCategory != "" {
		categoryID, err := manager.ResolveCategoryID(listCategory)
		if err != nil {
			return err
		}
		todos = filterTodoSlice(todos, func(t todo.Todo) bool { return t.CategoryID == categoryID })
	}
	if listPriority != "" {
		priority := todo.Priority(strings.ToLower(listPriority))
		if !priority.IsValid() {
			return fmt.Errorf("invalid priority %q (valid: %s)", listPriority, strings.Join(prioritiesAsStrings(), ", "))
		}
		todos = filterTodoSlice(todos, func(t todo.Todo) bool { return t.Priority == priority })
	}
	if listCompleted && listActive {
		return fmt.Errorf("--completed and --active are mutually exclusive")
	}
	if listCompleted {
		todos = filterTodoSlice(todos, func(t todo.Todo) bool { return t.Completed })
	}
	if listActive {
		todos = filterTodoSlice(todos, func(t todo.Todo) bool { return !t.Completed })
	}

	if listJSON {
		return encodeJSONToStdout(todos)
	}

	printTodoTable(manager, todos, time.Now())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	items := make([]todo.Todo, 0, len(args))
	for _, arg := range args {
		id, err := manager.ResolveTodoID(arg)
		if err != nil {
			return err
		}
		item, err := manager.TodoByID(id)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	if showJSON {
		if len(items) == 1 {
			return encodeJSONToStdout(items[0])
		}
		return encodeJSONToStdout(items)
	}

	highlight, err := todoHighlighter(manager)
	if err != nil {
		return err
	}
	for i, item := range items {
		if i > 0 {
			fmt.Println()
		}
		printTodoDetail(manager, item, highlight)
	}
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return setCompletion(args, true, "Completed")
}

func runUndone(cmd *cobra.Command, args []string) error {
	return setCompletion(args, false, "Reopened")
}

func setCompletion(args []string, completed bool, verb string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	highlight, err := todoHighlighter(manager)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := manager.ResolveTodoID(arg)
		if err != nil {
			return err
		}
		updated, err := manager.UpdateTodo(id, todo.TodoUpdate{Completed: &completed})
		if err != nil {
			return err
		}
		fmt.Printf("%s todo %s: %s\n", verb, highlight(updated.ID), updated.Title)
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	id, err := manager.ResolveTodoID(args[0])
	if err != nil {
		return err
	}

	var update todo.TodoUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		update.Description = &updateDescription
	}
	if cmd.Flags().Changed("priority") {
		priority := todo.Priority(strings.ToLower(updatePriority))
		update.Priority = &priority
	}
	if cmd.Flags().Changed("category") {
		categoryID, err := manager.ResolveCategoryID(updateCategory)
		if err != nil {
			return err
		}
		update.CategoryID = &categoryID
	}
	if updateClearDue {
		update.ClearDueDate = true
	} else if cmd.Flags().Changed("due") {
		due, err := parseDueDate(updateDue)
		if err != nil {
			return err
		}
		update.DueDate = due
	}

	updated, err := manager.UpdateTodo(id, update)
	if err != nil {
		return err
	}

	highlight, err := todoHighlighter(manager)
	if err != nil {
		return err
	}
	fmt.Printf("Updated todo %s: %s\n", highlight(updated.ID), updated.Title)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	highlight, err := todoHighlighter(manager)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := manager.ResolveTodoID(arg)
		if err != nil {
			return err
		}
		item, err := manager.TodoByID(id)
		if err != nil {
			return err
		}
		if err := manager.DeleteTodo(id); err != nil {
			return err
		}
		fmt.Printf("Deleted todo %s: %s\n", highlight(id), item.Title)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	todos, err := manager.SearchTodos(args[0])
	if err != nil {
		return err
	}

	if searchJSON {
		return encodeJSONToStdout(todos)
	}

	printTodoTable(manager, todos, time.Now())
	return nil
}

func runOverdue(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	todos, err := manager.OverdueTodos()
	if err != nil {
		return err
	}

	if overdueJSON {
		return encodeJSONToStdout(todos)
	}

	printTodoTable(manager, todos, time.Now())
	return nil
}

// parseDueDate accepts either a bare date or a full RFC 3339 timestamp.
// Bare dates resolve to end of day local time so a todo due "today" is
// not overdue all day.
func parseDueDate(value string) (*todo.Timestamp, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return todo.TimestampPtr(parsed), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD or RFC 3339)", value)
	}
	endOfDay := parsed.Add(24*time.Hour - time.Second)
	return todo.TimestampPtr(endOfDay), nil
}

func filterTodoSlice(todos []todo.Todo, keep func(todo.Todo) bool) []todo.Todo {
	filtered := make([]todo.Todo, 0, len(todos))
	for _, t := range todos {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func prioritiesAsStrings() []string {
	priorities := todo.ValidPriorities()
	values := make([]string, 0, len(priorities))
	for _, p := range priorities {
		values = append(values, string(p))
	}
	return values
}
