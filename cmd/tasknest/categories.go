package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/ui"
	"github.com/tasknest/tasknest/todo"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
	Aliases: []string{
		"cat",
	},
}

// category add
var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryAddColor string

// category list
var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with todo counts",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryListJSON bool

// category update
var categoryUpdateCmd = &cobra.Command{
	Use:   "update <name-or-id>",
	Short: "Rename or recolor a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryUpdate,
}

var (
	categoryUpdateName  string
	categoryUpdateColor string
)

// category rm
var categoryRmCmd = &cobra.Command{
	Use:   "rm <name-or-id>",
	Short: "Delete a category and its todos",
	Long: `Delete a category.

Todos in the category are deleted with it unless --reassign names
another category to move them to.`,
	Aliases: []string{
		"delete",
	},
	Args: cobra.ExactArgs(1),
	RunE: runCategoryRm,
}

var (
	categoryRmReassign string
	categoryRmYes      bool
)

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryUpdateCmd, categoryRmCmd)

	categoryAddCmd.Flags().StringVar(&categoryAddColor, "color", "", "Hex color (e.g. #4a90d9)")

	categoryListCmd.Flags().BoolVar(&categoryListJSON, "json", false, "Output as JSON")

	categoryUpdateCmd.Flags().StringVar(&categoryUpdateName, "name", "", "New name")
	categoryUpdateCmd.Flags().StringVar(&categoryUpdateColor, "color", "", "New hex color")

	categoryRmCmd.Flags().StringVar(&categoryRmReassign, "reassign", "", "Move todos to this category instead of deleting them")
	categoryRmCmd.Flags().BoolVarP(&categoryRmYes, "yes", "y", false, "Skip the confirmation prompt")
}

const defaultCategoryColor = "#808080"

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	color := categoryAddColor
	if color == "" {
		color = defaultCategoryColor
	}

	created, err := manager.AddCategory(todo.CategoryInput{
		Name:  args[0],
		Color: color,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added category %s: %s\n", created.ID, categorySwatch(*created))
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	categories, err := manager.AllCategories()
	if err != nil {
		return err
	}

	if categoryListJSON {
		return encodeJSONToStdout(categories)
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	table := ui.NewTable("ID", "NAME", "COLOR", "TODOS")
	for _, c := range categories {
		table.Row(c.ID, categorySwatch(c), c.Color, strconv.Itoa(c.TodoCount))
	}
	fmt.Print(table.Render())
	return nil
}

func runCategoryUpdate(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	id, err := manager.ResolveCategoryID(args[0])
	if err != nil {
		return err
	}

	var update todo.CategoryUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &categoryUpdateName
	}
	if cmd.Flags().Changed("color") {
		update.Color = &categoryUpdateColor
	}

	updated, err := manager.UpdateCategory(id, update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated category %s: %s\n", updated.ID, categorySwatch(*updated))
	return nil
}

func runCategoryRm(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	id, err := manager.ResolveCategoryID(args[0])
	if err != nil {
		return err
	}
	category, err := manager.CategoryByID(id)
	if err != nil {
		return err
	}

	reassignTo := ""
	if categoryRmReassign != "" {
		reassignTo, err = manager.ResolveCategoryID(categoryRmReassign)
		if err != nil {
			return err
		}
	}

	members, err := manager.TodosByCategory(id)
	if err != nil {
		return err
	}
	if len(members) > 0 && reassignTo == "" && !categoryRmYes {
		prompt := fmt.Sprintf("Delete category %q and its %d todo(s)?", category.Name, len(members))
		confirmed, err := confirm(prompt)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := manager.DeleteCategory(id, reassignTo); err != nil {
		return err
	}

	switch {
	case reassignTo != "":
		fmt.Printf("Deleted category %s, moved %d todo(s)\n", category.Name, len(members))
	default:
		fmt.Printf("Deleted category %s and %d todo(s)\n", category.Name, len(members))
	}
	return nil
}

// confirm asks a yes/no question on stdin. Non-interactive sessions
// refuse rather than silently deleting.
func confirm(prompt string) (bool, error) {
	if !stdinInteractive() {
		return false, fmt.Errorf("refusing to delete without confirmation; pass --yes to proceed")
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
