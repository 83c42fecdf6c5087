package todo

// EventName identifies a change notification delivered to subscribers.
type EventName string

const (
	// EventTodoAdded is emitted after a todo is created.
	EventTodoAdded EventName = "todo-added"

	// EventTodoUpdated is emitted after a todo is modified.
	EventTodoUpdated EventName = "todo-updated"

	// EventTodoDeleted is emitted after a todo is removed.
	EventTodoDeleted EventName = "todo-deleted"

	// EventCategoryAdded is emitted after a category is created.
	EventCategoryAdded EventName = "category-added"

	// EventCategoryUpdated is emitted after a category is modified.
	EventCategoryUpdated EventName = "category-updated"

	// EventCategoryDeleted is emitted after a category is removed.
	EventCategoryDeleted EventName = "category-deleted"

	// EventDataLoaded is emitted once Initialize completes.
	EventDataLoaded EventName = "data-loaded"

	// EventDataSaved is emitted after each successful persist.
	EventDataSaved EventName = "data-saved"

	// EventBackupCreated is emitted after a manual backup snapshot.
	EventBackupCreated EventName = "backup-created"
)

// Event carries the record or identifier relevant to a change.
type Event struct {
	Name EventName

	// Todo is set for todo-added and todo-updated.
	Todo *Todo

	// Category is set for category-added and category-updated.
	Category *Category

	// ID is set for todo-deleted and category-deleted (the removed
	// record's ID) and backup-created (the snapshot path).
	ID string
}

// Subscription is a handle to a registered event listener.
type Subscription struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to receive every event the manager emits, in
// subscription order. The returned handle is used to unsubscribe.
func (m *Manager) Subscribe(fn func(Event)) *Subscription {
	m.nextSubID++
	sub := &Subscription{id: m.nextSubID, fn: fn}
	m.subs = append(m.subs, sub)
	return sub
}

// Unsubscribe removes a previously registered listener by handle.
// Unknown or nil handles are ignored.
func (m *Manager) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	for i, existing := range m.subs {
		if existing.id == sub.id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}

// emit delivers event to every subscriber. A listener that panics is
// isolated: delivery continues to the others and the triggering
// operation's outcome is unaffected.
func (m *Manager) emit(event Event) {
	subs := append([]*Subscription(nil), m.subs...)
	for _, sub := range subs {
		m.deliver(sub, event)
	}
}

func (m *Manager) deliver(sub *Subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("event listener panicked", "event", event.Name, "panic", r)
		}
	}()
	sub.fn(event)
}
