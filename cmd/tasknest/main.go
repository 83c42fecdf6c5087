// Package main implements the tasknest CLI tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/todo"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tasknest",
	Short:         "Tasknest - a personal todo tracker",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootDataFile   string
	rootConfigFile string
	rootNoAutoSave bool
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDataFile, "data", "", "Path to the data file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootConfigFile, "config", "", "Path to a config file (skips the global/project merge)")
	rootCmd.PersistentFlags().BoolVar(&rootNoAutoSave, "no-auto-save", false, "Do not persist automatically after each change")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable diagnostic output")
}

// openManager loads configuration, opens the store, and initializes an
// in-memory manager from the data file.
func openManager() (*todo.Manager, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	var cfg *config.Resolved
	if rootConfigFile != "" {
		cfg, err = config.LoadFile(rootConfigFile)
	} else {
		cfg, err = config.Load(cwd)
	}
	if err != nil {
		return nil, err
	}

	if rootDataFile != "" {
		cfg.DataFile = rootDataFile
		cfg.BackupDir = filepath.Join(filepath.Dir(rootDataFile), "backups")
	}
	if rootNoAutoSave {
		cfg.AutoSave = false
	}

	logger := log.New(os.Stderr)
	if rootVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	manager, err := todo.NewManager(todo.Options{
		Store: todo.StoreOptions{
			DataFile:   cfg.DataFile,
			BackupDir:  cfg.BackupDir,
			AutoBackup: cfg.AutoBackup,
			MaxBackups: cfg.MaxBackups,
		},
		AutoSave:          cfg.AutoSave,
		DefaultCategories: cfg.DefaultCategories,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}

	if err := manager.Initialize(); err != nil {
		return nil, err
	}
	return manager, nil
}
