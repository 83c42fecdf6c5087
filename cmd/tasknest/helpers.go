package main

import (
	"encoding/json"
	"os"

	"golang.org/x/term"

	"github.com/tasknest/tasknest/todo"
)

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func stdinInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// defaultCategoryID returns the first category when none was named on
// the command line.
func defaultCategoryID(manager *todo.Manager) (string, bool) {
	categories, err := manager.AllCategories()
	if err != nil || len(categories) == 0 {
		return "", false
	}
	return categories[0].ID, true
}
