// Package config handles loading tasknest.toml configuration files.
//
// Configuration merges two sources, project over global, with defaults
// filling anything left undefined:
//
//	~/.config/tasknest/config.toml   (global)
//	./tasknest.toml                  (project)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tasknest/tasknest/internal/paths"
)

// DefaultMaxBackups is the backup retention cap applied when no config
// file overrides it.
const DefaultMaxBackups = 5

// Config represents the tasknest.toml configuration file.
type Config struct {
	Data Data `toml:"data"`
}

// Data contains storage-related configuration.
type Data struct {
	// File is the path of the todo data file.
	File string `toml:"file"`

	// BackupDir is where backup snapshots are kept.
	BackupDir string `toml:"backup-dir"`

	// AutoBackup snapshots the data file before every save.
	AutoBackup bool `toml:"auto-backup"`

	// MaxBackups caps retained snapshots.
	MaxBackups int `toml:"max-backups"`

	// AutoSave persists after every mutation.
	AutoSave bool `toml:"auto-save"`

	// DefaultCategories seeds the starter categories on first run.
	DefaultCategories bool `toml:"default-categories"`
}

// Resolved is the effective configuration after merging and defaulting.
type Resolved struct {
	DataFile          string
	BackupDir         string
	AutoBackup        bool
	MaxBackups        int
	AutoSave          bool
	DefaultCategories bool
}

// Load loads configuration from projectDir and the global config file,
// applying defaults for anything neither defines.
func Load(projectDir string) (*Resolved, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, "tasknest.toml"))
	if err != nil {
		return nil, err
	}

	return resolve(globalCfg, projectCfg, globalMeta, projectMeta)
}

// LoadFile loads configuration from a single explicit file, skipping
// the global/project merge. The file must exist.
func LoadFile(path string) (*Resolved, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg, meta, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	return resolve(&Config{}, cfg, toml.MetaData{}, meta)
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func resolve(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) (*Resolved, error) {
	defaultFile, err := paths.DefaultDataFile()
	if err != nil {
		return nil, err
	}
	defaultBackups, err := paths.DefaultBackupDir()
	if err != nil {
		return nil, err
	}

	resolved := Resolved{
		DataFile:          defaultFile,
		BackupDir:         defaultBackups,
		AutoBackup:        true,
		MaxBackups:        DefaultMaxBackups,
		AutoSave:          true,
		DefaultCategories: true,
	}

	pick := func(key string) *Config {
		if projectMeta.IsDefined("data", key) {
			return projectCfg
		}
		if globalMeta.IsDefined("data", key) {
			return globalCfg
		}
		return nil
	}

	if cfg := pick("file"); cfg != nil {
		resolved.DataFile = cfg.Data.File
	}
	if cfg := pick("backup-dir"); cfg != nil {
		resolved.BackupDir = cfg.Data.BackupDir
	}
	if cfg := pick("auto-backup"); cfg != nil {
		resolved.AutoBackup = cfg.Data.AutoBackup
	}
	if cfg := pick("max-backups"); cfg != nil {
		resolved.MaxBackups = cfg.Data.MaxBackups
	}
	if cfg := pick("auto-save"); cfg != nil {
		resolved.AutoSave = cfg.Data.AutoSave
	}
	if cfg := pick("default-categories"); cfg != nil {
		resolved.DefaultCategories = cfg.Data.DefaultCategories
	}

	if resolved.DataFile == "" {
		return nil, fmt.Errorf("config: data file path cannot be empty")
	}
	if resolved.AutoBackup && resolved.BackupDir == "" {
		return nil, fmt.Errorf("config: auto-backup requires a backup directory")
	}
	if resolved.MaxBackups < 0 {
		return nil, fmt.Errorf("config: max-backups cannot be negative")
	}

	return &resolved, nil
}
