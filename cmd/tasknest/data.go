package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/todo"
)

// stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo and data file statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

// export
var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export todos to a plain-text report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

// backup
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup of the data file",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

// save
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the current state to disk",
	Args:  cobra.NoArgs,
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(statsCmd, exportCmd, backupCmd, saveCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	stats, err := manager.Statistics()
	if err != nil {
		return err
	}
	fileStats, err := manager.StoreStats()
	if err != nil {
		return err
	}

	if statsJSON {
		return encodeJSONToStdout(struct {
			Todos todo.Statistics `json:"todos"`
			File  todo.FileStats  `json:"file"`
		}{stats, fileStats})
	}

	fmt.Printf("Todos:       %d (%d active, %d completed)\n", stats.TotalTodos, stats.Pending, stats.Completed)
	fmt.Printf("Overdue:     %d\n", stats.Overdue)
	fmt.Printf("Categories:  %d\n", stats.Categories)
	for _, p := range todo.ValidPriorities() {
		fmt.Printf("  %-9s  %d\n", p, stats.ByPriority[p])
	}

	if fileStats.Exists {
		fmt.Printf("Data file:   %d bytes, modified %s\n", fileStats.SizeBytes, fileStats.ModifiedAt.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Data file:   not yet written")
	}
	fmt.Printf("Backups:     %d\n", fileStats.BackupCount)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	path := defaultExportPath(time.Now())
	if len(args) > 0 {
		path = args[0]
	}

	if err := manager.Export(path); err != nil {
		return err
	}

	fmt.Printf("Exported todos to %s\n", path)
	return nil
}

func defaultExportPath(now time.Time) string {
	return filepath.Join(".", fmt.Sprintf("todos-%s.txt", now.Format("2006-01-02")))
}

func runBackup(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	path, err := manager.Backup()
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("Nothing to back up yet.")
		return nil
	}

	fmt.Printf("Created backup %s\n", path)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	manager, err := openManager()
	if err != nil {
		return err
	}

	if err := manager.Save(); err != nil {
		return err
	}

	fmt.Println("Saved.")
	return nil
}
