// Package memory holds the storage layers of the query pipeline: the
// in-process working memory (TTL+LRU cache), the durable query pattern
// store, and the durable query history store.
package memory

import (
	"container/list"
	"log/slog"
	"sync"
	"time"
)

type workingEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func (e *workingEntry[V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// WorkingMemory is a thread-safe TTL+LRU cache used as per-session working
// memory. Entries are evicted when the cache reaches maximum size (least
// recently used first) or when they expire, whichever comes first. A janitor
// goroutine sweeps expired entries between accesses; Close stops it.
type WorkingMemory[V any] struct {
	mu         sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	items      map[string]*list.Element
	order      *list.List // front = most recently used

	shutdown chan struct{}
	done     chan struct{}
	closed   bool
}

// NewWorkingMemory creates a working memory cache. sweepInterval controls
// how often the janitor removes expired entries; zero disables the janitor
// (expiry is then enforced lazily on access only).
func NewWorkingMemory[V any](maxSize int, defaultTTL, sweepInterval time.Duration) *WorkingMemory[V] {
	w := &WorkingMemory[V]{
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
	if sweepInterval > 0 {
		go w.janitor(sweepInterval)
	} else {
		close(w.done)
	}
	slog.Debug("working memory initialized", "max_size", maxSize, "default_ttl", defaultTTL)
	return w
}

// Get returns the value for key if present and unexpired, updating LRU
// order.
func (w *WorkingMemory[V]) Get(key string) (V, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var zero V
	element, ok := w.items[key]
	if !ok {
		return zero, false
	}
	entry := element.Value.(*workingEntry[V])
	if entry.expired(time.Now()) {
		w.removeElement(element)
		return zero, false
	}
	w.order.MoveToFront(element)
	return entry.value, true
}

// Set stores value under key. A non-positive ttl uses the default. Inserting
// beyond maxSize evicts the least recently used entry.
func (w *WorkingMemory[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = w.defaultTTL
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if element, ok := w.items[key]; ok {
		entry := element.Value.(*workingEntry[V])
		entry.value = value
		entry.expiresAt = time.Now().Add(ttl)
		w.order.MoveToFront(element)
		return
	}

	if w.maxSize > 0 && len(w.items) >= w.maxSize {
		if oldest := w.order.Back(); oldest != nil {
			w.removeElement(oldest)
		}
	}

	entry := &workingEntry[V]{key: key, value: value, expiresAt: time.Now().Add(ttl)}
	w.items[key] = w.order.PushFront(entry)
}

// Delete removes key, reporting whether it was present.
func (w *WorkingMemory[V]) Delete(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	element, ok := w.items[key]
	if !ok {
		return false
	}
	w.removeElement(element)
	return true
}

// Clear removes every entry.
func (w *WorkingMemory[V]) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = make(map[string]*list.Element)
	w.order.Init()
}

// Len returns the number of entries, including any not yet swept.
func (w *WorkingMemory[V]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Close stops the janitor goroutine. The cache remains usable afterwards;
// expiry is then only enforced lazily.
func (w *WorkingMemory[V]) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.shutdown)
	<-w.done
}

func (w *WorkingMemory[V]) removeElement(element *list.Element) {
	entry := element.Value.(*workingEntry[V])
	delete(w.items, entry.key)
	w.order.Remove(element)
}

func (w *WorkingMemory[V]) janitor(interval time.Duration) {
	defer close(w.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *WorkingMemory[V]) sweep() {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	for element := w.order.Back(); element != nil; {
		prev := element.Prev()
		if element.Value.(*workingEntry[V]).expired(now) {
			w.removeElement(element)
		}
		element = prev
	}
}
