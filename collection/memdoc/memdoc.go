// Package memdoc provides an in-memory filedock.Collection, used in tests
// and small tools where no database is available.
package memdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/filedock"
	"github.com/google/uuid"
)

// Collection keeps documents in a map guarded by a mutex. Reads hand out
// deep copies so callers never share internal state.
type Collection struct {
	name string

	mu     sync.RWMutex
	docs   map[string]*filedock.Document
	stores map[string]filedock.Store
}

// New creates an empty collection with the given name.
func New(name string) *Collection {
	return &Collection{
		name:   name,
		docs:   make(map[string]*filedock.Document),
		stores: make(map[string]filedock.Store),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Insert stores a document and returns its identifier, assigning a fresh
// one when the document has none.
func (c *Collection) Insert(ctx context.Context, doc *filedock.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("insert: nil document")
	}
	cp := doc.Clone()
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.docs[cp.ID] = cp
	c.mu.Unlock()
	return cp.ID, nil
}

// FindOne returns a deep copy of the document with the given identifier.
func (c *Collection) FindOne(ctx context.Context, id string) (*filedock.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, filedock.ErrNotFound
	}
	return doc.Clone(), nil
}

// Update applies a field-level modifier to the stored document. Paths are
// applied on a JSON map representation so nested copy entries work the same
// way they do against a real document store.
func (c *Collection) Update(ctx context.Context, id string, mod filedock.Modifier) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return filedock.ErrNotFound
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}

	for p, v := range mod.Set {
		setPath(m, strings.Split(p, "."), v)
	}
	for _, p := range mod.Unset {
		unsetPath(m, strings.Split(p, "."))
	}

	raw, err = json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal modified document: %w", err)
	}
	updated := &filedock.Document{}
	if err := json.Unmarshal(raw, updated); err != nil {
		return fmt.Errorf("unmarshal modified document: %w", err)
	}
	updated.ID = id
	c.docs[id] = updated
	return nil
}

// Remove deletes the document with the given identifier.
func (c *Collection) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return filedock.ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

// RegisterStore makes a storage backend reachable through GetStore.
func (c *Collection) RegisterStore(s filedock.Store) {
	c.mu.Lock()
	c.stores[s.Name()] = s
	c.mu.Unlock()
}

// GetStore resolves a registered storage backend by name.
func (c *Collection) GetStore(name string) (filedock.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stores[name]
	if !ok {
		return nil, fmt.Errorf("store %q: %w", name, filedock.ErrNotFound)
	}
	return s, nil
}

func setPath(m map[string]any, parts []string, v any) {
	for i := 0; i < len(parts)-1; i++ {
		next, ok := m[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[parts[i]] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func unsetPath(m map[string]any, parts []string) {
	for i := 0; i < len(parts)-1; i++ {
		next, ok := m[parts[i]].(map[string]any)
		if !ok {
			return
		}
		m = next
	}
	delete(m, parts[len(parts)-1])
}
