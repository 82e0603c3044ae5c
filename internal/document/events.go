package document

import "sync"

// Listener receives typed change notifications from an editing session.
// Nil callbacks are skipped, so subscribers set only what they care about.
// This keeps the model free of any toolkit dependency; a GUI layer wires
// these to its own signals.
type Listener struct {
	// ElementAdded fires after an element is inserted into a page.
	ElementAdded func(pageUID string, el Element)

	// ElementRemoved fires after an element is removed from a page.
	ElementRemoved func(pageUID, elementID string)

	// ElementChanged fires after geometry or property edits to an
	// existing element.
	ElementChanged func(pageUID string, el Element)

	// PageChanged fires after page metadata (label, note) edits and
	// after a page is added or removed.
	PageChanged func(pageUID string)

	// PagesReordered fires after the page order changes.
	PagesReordered func()
}

// Bus fan-outs change notifications to subscribed listeners. Callbacks run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	mu        sync.Mutex
	nextToken int
	listeners map[int]*Listener
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]*Listener)}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Bus) Subscribe(l *Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	token := b.nextToken
	b.nextToken++
	b.listeners[token] = l
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, token)
	}
}

func (b *Bus) snapshot() []*Listener {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Listener, 0, len(b.listeners))
	for i := 0; i < b.nextToken; i++ {
		if l, ok := b.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

// ElementAdded notifies all listeners of an inserted element.
func (b *Bus) ElementAdded(pageUID string, el Element) {
	for _, l := range b.snapshot() {
		if l.ElementAdded != nil {
			l.ElementAdded(pageUID, el)
		}
	}
}

// ElementRemoved notifies all listeners of a removed element.
func (b *Bus) ElementRemoved(pageUID, elementID string) {
	for _, l := range b.snapshot() {
		if l.ElementRemoved != nil {
			l.ElementRemoved(pageUID, elementID)
		}
	}
}

// ElementChanged notifies all listeners of an edited element.
func (b *Bus) ElementChanged(pageUID string, el Element) {
	for _, l := range b.snapshot() {
		if l.ElementChanged != nil {
			l.ElementChanged(pageUID, el)
		}
	}
}

// PageChanged notifies all listeners of a page-level change.
func (b *Bus) PageChanged(pageUID string) {
	for _, l := range b.snapshot() {
		if l.PageChanged != nil {
			l.PageChanged(pageUID)
		}
	}
}

// PagesReordered notifies all listeners that the page order changed.
func (b *Bus) PagesReordered() {
	for _, l := range b.snapshot() {
		if l.PagesReordered != nil {
			l.PagesReordered()
		}
	}
}
