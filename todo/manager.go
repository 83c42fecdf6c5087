package todo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tasknest/tasknest/internal/ids"
)

// Options configures a Manager.
type Options struct {
	// Store configures the persistence layer.
	Store StoreOptions

	// AutoSave persists through the store after every mutation, so each
	// mutation is observably durable before its call returns.
	AutoSave bool

	// DefaultCategories seeds the starter categories when the loaded
	// category set is empty.
	DefaultCategories bool

	// Logger receives diagnostic output. Nil discards it.
	Logger *log.Logger
}

// Manager is the authoritative holder of the in-memory record sets. It
// composes the Store and the domain validators to provide CRUD with
// referential-integrity checks, derived-count recomputation, auto-save,
// and change notifications.
//
// A Manager is single-threaded by design: all operations run to
// completion on one logical thread of control, matching the store's
// single-writer assumption. It must be Initialized before use.
type Manager struct {
	opts  Options
	store *Store
	log   *log.Logger

	todos       []Todo
	categories  []Category
	initialized bool

	subs      []*Subscription
	nextSubID int

	// now is stubbed in tests.
	now func() time.Time
}

// NewManager validates opts and constructs an uninitialized manager.
// Initialize must be called before any other operation.
func NewManager(opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store, err := NewStore(opts.Store, logger)
	if err != nil {
		return nil, err
	}

	return &Manager{
		opts:  opts,
		store: store,
		log:   logger,
		now:   time.Now,
	}, nil
}

// Initialize loads persisted state, seeds the starter categories on
// first run, recomputes every category's derived count, and starts
// accepting operations. There is no path back to uninitialized.
func (m *Manager) Initialize() error {
	todos, categories, err := m.store.Load()
	if err != nil {
		return err
	}

	m.todos = todos
	m.categories = categories

	if len(m.categories) == 0 && m.opts.DefaultCategories {
		m.seedDefaultCategories()
	}

	m.recomputeAllCounts()
	m.initialized = true
	m.emit(Event{Name: EventDataLoaded})
	return nil
}

// seedDefaultCategories creates the starter set. A failure to create
// one category is logged and does not block the rest. The seeded set is
// persisted immediately when auto-save is on so a first run leaves a
// data file behind; a persist failure here is also not fatal.
func (m *Manager) seedDefaultCategories() {
	for _, input := range DefaultCategories() {
		category, err := m.buildCategory(input)
		if err != nil {
			m.log.Warn("create default category", "name", input.Name, "err", err)
			continue
		}
		m.categories = append(m.categories, category)
	}

	if m.opts.AutoSave && len(m.categories) > 0 {
		if err := m.store.Save(m.todos, m.categories); err != nil {
			m.log.Warn("persist default categories", "err", err)
		}
	}
}

func (m *Manager) ensureInitialized() error {
	if !m.initialized {
		return notInitializedError()
	}
	return nil
}

// persistAfterMutation saves through the store when auto-save is on.
func (m *Manager) persistAfterMutation() error {
	if !m.opts.AutoSave {
		return nil
	}
	if err := m.store.Save(m.todos, m.categories); err != nil {
		return err
	}
	m.emit(Event{Name: EventDataSaved})
	return nil
}

// Save persists the current record sets regardless of the auto-save
// setting.
func (m *Manager) Save() error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}
	if err := m.store.Save(m.todos, m.categories); err != nil {
		return err
	}
	m.emit(Event{Name: EventDataSaved})
	return nil
}

// Backup forces a backup snapshot of the data file and returns the
// snapshot path, or "" when there is nothing to snapshot yet.
func (m *Manager) Backup() (string, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", err
	}
	path, err := m.store.Backup()
	if err != nil {
		return "", err
	}
	if path != "" {
		m.emit(Event{Name: EventBackupCreated, ID: path})
	}
	return path, nil
}

// Export writes a human-readable snapshot of the persisted data to path.
func (m *Manager) Export(path string) error {
	if err := m.ensureInitialized(); err != nil {
		return err
	}
	return m.store.Export(path)
}

// StoreStats reports the on-disk state of the store.
func (m *Manager) StoreStats() (FileStats, error) {
	if err := m.ensureInitialized(); err != nil {
		return FileStats{}, err
	}
	return m.store.Stats(), nil
}

// Statistics summarizes the in-memory record sets.
type Statistics struct {
	TotalTodos int
	Completed  int
	Pending    int
	Overdue    int
	ByPriority map[Priority]int
	Categories int
}

// Statistics computes aggregate counts from current in-memory state.
// It never reads from disk.
func (m *Manager) Statistics() (Statistics, error) {
	if err := m.ensureInitialized(); err != nil {
		return Statistics{}, err
	}

	stats := Statistics{ByPriority: make(map[Priority]int, len(ValidPriorities()))}
	now := m.now()
	for _, item := range m.todos {
		stats.TotalTodos++
		if item.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if item.IsOverdue(now) {
			stats.Overdue++
		}
		stats.ByPriority[item.Priority]++
	}
	stats.Categories = len(m.categories)

	return stats, nil
}

// recomputeAllCounts rebuilds every category's derived todo count.
func (m *Manager) recomputeAllCounts() {
	counts := make(map[string]int, len(m.categories))
	for _, item := range m.todos {
		counts[item.CategoryID]++
	}
	for i := range m.categories {
		m.categories[i].TodoCount = counts[m.categories[i].ID]
	}
}

// recomputeCount rebuilds the derived count for a single category.
func (m *Manager) recomputeCount(categoryID string) {
	count := 0
	for _, item := range m.todos {
		if item.CategoryID == categoryID {
			count++
		}
	}
	for i := range m.categories {
		if m.categories[i].ID == categoryID {
			m.categories[i].TodoCount = count
			return
		}
	}
}

// ResolveTodoID expands a unique todo ID prefix to the full ID.
func (m *Manager) ResolveTodoID(prefix string) (string, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", err
	}

	todoIDs := make([]string, 0, len(m.todos))
	for _, item := range m.todos {
		todoIDs = append(todoIDs, item.ID)
	}

	match, found, ambiguous := ids.MatchPrefix(todoIDs, prefix)
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}
	if !found {
		return "", todoNotFoundError(prefix)
	}
	return match, nil
}

// ResolveCategoryID expands a category reference to the full category
// ID. References match by ID prefix first, then by case-insensitive
// name.
func (m *Manager) ResolveCategoryID(ref string) (string, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", err
	}

	categoryIDs := make([]string, 0, len(m.categories))
	for _, category := range m.categories {
		categoryIDs = append(categoryIDs, category.ID)
	}

	match, found, ambiguous := ids.MatchPrefix(categoryIDs, ref)
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, ref)
	}
	if found {
		return match, nil
	}

	for _, category := range m.categories {
		if strings.EqualFold(category.Name, strings.TrimSpace(ref)) {
			return category.ID, nil
		}
	}

	return "", categoryNotFoundError(ref)
}

func (m *Manager) findTodoIndex(id string) int {
	for i := range m.todos {
		if m.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) findCategoryIndex(id string) int {
	for i := range m.categories {
		if m.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) hasCategory(id string) bool {
	return m.findCategoryIndex(id) >= 0
}
