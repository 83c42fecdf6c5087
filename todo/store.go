package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	backupPrefix = "todos-backup-"

	// backupTimeLayout encodes the snapshot time into the backup file
	// name. Lexicographic order of names matches chronological order.
	backupTimeLayout = "20060102-150405.000000000"
)

// StoreOptions configures the persistence store.
type StoreOptions struct {
	// DataFile is the path of the JSON envelope file.
	DataFile string

	// BackupDir is where backup snapshots are kept. Empty disables
	// backups and backup-based recovery.
	BackupDir string

	// AutoBackup snapshots the current data file before every save.
	AutoBackup bool

	// MaxBackups caps the number of retained snapshots; older ones are
	// rotated out after each backup. Zero or negative disables rotation.
	MaxBackups int
}

// Store maps the in-memory record sets to a single file on disk, plus a
// rolling set of backup snapshots. It owns the data file and the backup
// directory exclusively and never calls back into the Manager.
type Store struct {
	opts StoreOptions
	log  *log.Logger
}

// NewStore validates opts eagerly and returns a store. logger receives
// diagnostic output for soft failures; nil discards it.
func NewStore(opts StoreOptions, logger *log.Logger) (*Store, error) {
	if opts.DataFile == "" {
		return nil, fmt.Errorf("store: data file path is required")
	}
	if opts.AutoBackup && opts.BackupDir == "" {
		return nil, fmt.Errorf("store: auto-backup requires a backup directory")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{opts: opts, log: logger}, nil
}

// Save persists todos and categories as a versioned envelope, replacing
// the data file atomically so no reader ever observes a partial write.
// When auto-backup is on, the current file is snapshotted first; a
// snapshot failure is logged and never blocks the save.
func (s *Store) Save(todos []Todo, categories []Category) error {
	if s.opts.AutoBackup {
		if _, err := s.Backup(); err != nil {
			s.log.Warn("backup before save failed", "err", err)
		}
	}

	env := Envelope{
		Todos:        todos,
		Categories:   categories,
		Version:      DataVersion,
		LastModified: Now(),
	}
	if env.Todos == nil {
		env.Todos = []Todo{}
	}
	if env.Categories == nil {
		env.Categories = []Category{}
	}
	if err := env.validate(); err != nil {
		return saveError(err)
	}

	data, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return saveError(fmt.Errorf("encode envelope: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(s.opts.DataFile), 0o755); err != nil {
		return saveError(fmt.Errorf("create data dir: %w", err))
	}
	if err := writeFileAtomic(s.opts.DataFile, data); err != nil {
		return saveError(err)
	}

	return nil
}

func saveError(cause error) *Error {
	return &Error{Code: CodeSave, Message: "save todo data", cause: cause}
}

// writeFileAtomic writes data to a temp file next to path, then renames
// it over path. The target is either fully the old content or fully the
// new content at all times.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Load reads the record sets from the data file. A missing or empty
// file is the first-run case and yields empty sets without error. On
// any read, parse, or validation failure the newest backup snapshot is
// tried before the failure is surfaced as a LOAD error.
func (s *Store) Load() ([]Todo, []Category, error) {
	data, err := os.ReadFile(s.opts.DataFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return s.recoverFromBackup(&Error{Code: CodeLoad, Message: "load todo data", cause: fmt.Errorf("read data file: %w", err)})
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, nil
	}

	env, err := s.decodeEnvelope(data)
	if err != nil {
		return s.recoverFromBackup(&Error{Code: CodeLoad, Message: "load todo data", cause: err})
	}

	return env.Todos, env.Categories, nil
}

// decodeEnvelope parses and validates raw envelope JSON. Loaded data
// that fails business rules but passes structural checks is accepted
// as-is; dangling category references are warned about, not rejected.
func (s *Store) decodeEnvelope(data []byte) (*Envelope, error) {
	if err := validateEnvelopeShape(data); err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	for _, warning := range env.integrityWarnings() {
		s.log.Warn("referential integrity", "detail", warning)
	}

	s.migrate(&env)
	return &env, nil
}

// migrate applies the version-migration step. There is a single format
// version, so this is a passthrough that flags anything unrecognized.
func (s *Store) migrate(env *Envelope) {
	if env.Version != DataVersion {
		s.log.Warn("unrecognized data version, loading as-is", "version", env.Version, "expected", DataVersion)
	}
}

// recoverFromBackup tries the most recent backup snapshot after a load
// failure. Without a configured backup directory, or when recovery also
// fails, the original failure is surfaced with recovery context.
func (s *Store) recoverFromBackup(cause *Error) ([]Todo, []Category, error) {
	if s.opts.BackupDir == "" {
		return nil, nil, cause
	}

	s.log.Warn("load failed, attempting backup recovery", "err", cause)
	env, err := s.loadLatestBackup()
	if err != nil {
		return nil, nil, &Error{
			Code:    cause.Code,
			Message: fmt.Sprintf("%s (backup recovery also failed: %v)", cause.Message, err),
			cause:   cause.cause,
		}
	}

	s.log.Info("recovered todo data from backup", "todos", len(env.Todos), "categories", len(env.Categories))
	return env.Todos, env.Categories, nil
}

// loadLatestBackup reads the most recent backup snapshot, selected by
// the timestamp encoding in the file name.
func (s *Store) loadLatestBackup() (*Envelope, error) {
	names, err := s.backupNames()
	if err != nil {
		return nil, &Error{Code: CodeBackupLoad, Message: "list backups", cause: err}
	}
	if len(names) == 0 {
		return nil, &Error{Code: CodeNoBackups, Message: "recover from backup", cause: ErrNoBackups}
	}

	name := names[len(names)-1]
	data, err := os.ReadFile(filepath.Join(s.opts.BackupDir, name))
	if err != nil {
		return nil, &Error{Code: CodeBackupLoad, Message: fmt.Sprintf("read backup %s", name), cause: err}
	}

	env, err := s.decodeEnvelope(data)
	if err != nil {
		return nil, &Error{Code: CodeBackupLoad, Message: fmt.Sprintf("load backup %s", name), cause: err}
	}
	return env, nil
}

// Backup snapshots the current data file into the backup directory and
// rotates old snapshots. It returns the snapshot path, or "" when there
// is no data file to snapshot yet.
func (s *Store) Backup() (string, error) {
	if s.opts.BackupDir == "" {
		return "", &Error{Code: CodeNoBackupPath, Message: "backup todo data", cause: ErrNoBackupPath}
	}

	data, err := os.ReadFile(s.opts.DataFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}

	if err := os.MkdirAll(s.opts.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := backupPrefix + time.Now().UTC().Format(backupTimeLayout) + ".json"
	path := filepath.Join(s.opts.BackupDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	s.rotateBackups()
	return path, nil
}

// rotateBackups deletes the oldest snapshots beyond MaxBackups.
// Best effort: failures are logged, never raised.
func (s *Store) rotateBackups() {
	if s.opts.MaxBackups <= 0 {
		return
	}

	names, err := s.backupNames()
	if err != nil {
		s.log.Warn("list backups for rotation", "err", err)
		return
	}

	for len(names) > s.opts.MaxBackups {
		name := names[0]
		names = names[1:]
		if err := os.Remove(filepath.Join(s.opts.BackupDir, name)); err != nil {
			s.log.Warn("delete old backup", "backup", name, "err", err)
		}
	}
}

// backupNames lists backup files sorted oldest first.
func (s *Store) backupNames() ([]string, error) {
	entries, err := os.ReadDir(s.opts.BackupDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), backupPrefix) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// FileStats describes the on-disk state of the store.
type FileStats struct {
	Exists      bool
	SizeBytes   int64
	ModifiedAt  time.Time
	BackupCount int
}

// Stats reports data file presence, size, modification time, and backup
// count. It never fails; the zero "absent" value is returned when the
// file is missing or unreadable.
func (s *Store) Stats() FileStats {
	var stats FileStats

	info, err := os.Stat(s.opts.DataFile)
	if err == nil && !info.IsDir() {
		stats.Exists = true
		stats.SizeBytes = info.Size()
		stats.ModifiedAt = info.ModTime()
	}

	if names, err := s.backupNames(); err == nil {
		stats.BackupCount = len(names)
	} else {
		s.log.Debug("count backups", "err", err)
	}

	return stats
}
