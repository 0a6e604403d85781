// Package node defines the boundary contracts between the attribute framework
// and the storage engine that owns file metadata: the per-file attribute
// store (Node) and the live re-resolving handle to it (Lookup). It also
// provides MemNode, the in-memory implementation used by memfs and tests.
package node

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotExist is returned by a Lookup whose target file has been deleted.
var ErrNotExist = errors.New("file no longer exists")

// Node is a per-file attribute store keyed by qualified attribute name
// ("view:attribute"). Get and set of a single key are atomic; there is no
// cross-key transaction guarantee.
type Node interface {
	// Attribute returns the value stored under key, or ok=false if the key
	// has never been set.
	Attribute(key string) (value any, ok bool)

	// SetAttribute stores value under key, replacing any previous value.
	SetAttribute(key string, value any)
}

// Lookup resolves the node a view is currently bound to. It is called fresh
// on every view operation, never cached, so a view handle built before a
// rename or move still addresses the relocated node afterward. It returns
// ErrNotExist once the file is gone.
type Lookup func() (Node, error)

// MemNode is the in-memory Node implementation. Each attribute access locks
// the node, giving the per-key atomicity the attribute framework relies on.
type MemNode struct {
	id uuid.UUID

	mu      sync.RWMutex
	attrs   map[string]any
	content []byte
}

// NewMemNode returns an empty node with a fresh identity.
func NewMemNode() *MemNode {
	return &MemNode{
		id:    uuid.New(),
		attrs: make(map[string]any),
	}
}

// ID returns the node's stable identity. The identity does not change when
// the file is renamed or moved.
func (n *MemNode) ID() uuid.UUID { return n.id }

// Attribute implements Node.
func (n *MemNode) Attribute(key string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.attrs[key]
	return v, ok
}

// SetAttribute implements Node.
func (n *MemNode) SetAttribute(key string, value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs[key] = value
}

// SeedAttributes writes a batch of initial attribute values, typically the
// merged defaults computed at file creation. Seeding is not atomic across
// keys; it happens before the node is exposed to any view.
func (n *MemNode) SeedAttributes(values map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for k, v := range values {
		n.attrs[k] = v
	}
}

// Content returns a copy of the node's byte content.
func (n *MemNode) Content() []byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]byte, len(n.content))
	copy(out, n.content)
	return out
}

// SetContent replaces the node's byte content and returns the new size.
func (n *MemNode) SetContent(data []byte) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.content = make([]byte, len(data))
	copy(n.content, data)
	return int64(len(data))
}
