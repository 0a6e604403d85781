// Package memfs is a minimal in-memory filesystem hosting the attribute
// framework: a directory tree of MemNodes with create, rename and remove,
// plus live attribute views bound to file identity rather than path.
package memfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/attrfs/pkg/attrfs/attr"
	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
)

// FS is an in-memory filesystem. Tree structure is guarded by one RWMutex;
// attribute access on individual nodes stays per-key atomic inside MemNode.
type FS struct {
	registry *attr.Registry
	defaults map[string]any
	clock    func() time.Time
	logger   zerolog.Logger

	mu   sync.RWMutex
	root *dirent
	byID map[uuid.UUID]*node.MemNode
}

type dirent struct {
	node     *node.MemNode
	dir      bool
	children map[string]*dirent
}

// Option configures an FS.
type Option func(*FS)

// WithClock replaces the clock used for new-file timestamps.
func WithClock(clock func() time.Time) Option {
	return func(f *FS) { f.clock = clock }
}

// WithLogger sets the filesystem's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *FS) { f.logger = logger }
}

// WithDefaults overrides built-in default attribute values for every new
// file, keyed by qualified attribute name. Unlike per-create attributes,
// these are filesystem-wide configuration and bypass no validation: each
// provider checks the override's type the first time a file is created.
func WithDefaults(overrides map[string]any) Option {
	return func(f *FS) { f.defaults = overrides }
}

// New builds an empty filesystem using the given registry for attribute
// dispatch and new-file defaults.
func New(registry *attr.Registry, opts ...Option) (*FS, error) {
	f := &FS{
		registry: registry,
		clock:    time.Now,
		logger:   zerolog.Nop(),
		byID:     make(map[uuid.UUID]*node.MemNode),
	}
	for _, opt := range opts {
		opt(f)
	}

	rootNode, err := f.newNode(true)
	if err != nil {
		return nil, err
	}
	f.root = &dirent{node: rootNode, dir: true, children: make(map[string]*dirent)}
	f.byID[rootNode.ID()] = rootNode
	return f, nil
}

// Registry returns the attribute registry the filesystem dispatches through.
func (f *FS) Registry() *attr.Registry { return f.registry }

// newNode seeds a fresh node with the merged defaults (honoring the
// filesystem-wide overrides) plus the structural attributes owned by the
// hosting filesystem.
func (f *FS) newNode(dir bool) (*node.MemNode, error) {
	defaults, err := f.registry.Defaults(f.defaults)
	if err != nil {
		return nil, err
	}
	n := node.NewMemNode()
	n.SeedAttributes(defaults)
	n.SetAttribute(core.JoinKey(attr.ViewBasic, "size"), int64(0))
	n.SetAttribute(core.JoinKey(attr.ViewBasic, "isDirectory"), dir)
	n.SetAttribute(core.JoinKey(attr.ViewBasic, "isRegularFile"), !dir)
	n.SetAttribute(core.JoinKey(attr.ViewBasic, "isSymbolicLink"), false)
	return n, nil
}

// Create adds a regular file. attrs are applied through the generic set path
// with the creation flag raised, so creation-restricted attributes (posix
// group, every dos flag) are rejected here; they must be changed after the
// file exists.
func (f *FS) Create(name string, attrs map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.create(name, attrs, false)
}

// Mkdir adds a directory.
func (f *FS) Mkdir(name string, attrs map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.create(name, attrs, true)
}

func (f *FS) create(name string, attrs map[string]any, dir bool) error {
	parent, base, err := f.resolveParent(name)
	if err != nil {
		return err
	}
	if _, exists := parent.children[base]; exists {
		return &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
	}

	n, err := f.newNode(dir)
	if err != nil {
		return err
	}
	for key, value := range attrs {
		if err := f.registry.SetAttribute(n, key, value, true); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}

	d := &dirent{node: n, dir: dir}
	if dir {
		d.children = make(map[string]*dirent)
	}
	parent.children[base] = d
	f.byID[n.ID()] = n

	f.logger.Debug().Str("path", name).Bool("dir", dir).Msg("created")
	return nil
}

// Rename moves a file or directory. Nodes keep their identity, so attribute
// views held across the rename keep working.
func (f *FS) Rename(oldname, newname string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	oldParent, oldBase, err := f.resolveParent(oldname)
	if err != nil {
		return err
	}
	d, ok := oldParent.children[oldBase]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldname, Err: fs.ErrNotExist}
	}

	newParent, newBase, err := f.resolveParent(newname)
	if err != nil {
		return err
	}
	if _, exists := newParent.children[newBase]; exists {
		return &fs.PathError{Op: "rename", Path: newname, Err: fs.ErrExist}
	}

	delete(oldParent.children, oldBase)
	newParent.children[newBase] = d

	f.logger.Debug().Str("from", oldname).Str("to", newname).Msg("renamed")
	return nil
}

// Remove deletes a file or an empty directory. Lookups bound to the removed
// node start failing with node.ErrNotExist.
func (f *FS) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	parent, base, err := f.resolveParent(name)
	if err != nil {
		return err
	}
	d, ok := parent.children[base]
	if !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if d.dir && len(d.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: fmt.Errorf("directory not empty")}
	}

	delete(parent.children, base)
	delete(f.byID, d.node.ID())
	return nil
}

// WriteFile replaces a file's content, updating size and modification time.
func (f *FS) WriteFile(name string, data []byte) error {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return err
	}
	if d.dir {
		return &fs.PathError{Op: "write", Path: name, Err: fmt.Errorf("is a directory")}
	}
	size := d.node.SetContent(data)
	d.node.SetAttribute(core.JoinKey(attr.ViewBasic, "size"), size)
	d.node.SetAttribute(core.JoinKey(attr.ViewBasic, "lastModifiedTime"), f.clock())
	return nil
}

// ReadFile returns a copy of a file's content, updating access time.
func (f *FS) ReadFile(name string) ([]byte, error) {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if d.dir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fmt.Errorf("is a directory")}
	}
	d.node.SetAttribute(core.JoinKey(attr.ViewBasic, "lastAccessTime"), f.clock())
	return d.node.Content(), nil
}

// Lookup returns a live handle bound to the file's identity. Resolution
// happens on every call: the handle follows the node through renames and
// fails with node.ErrNotExist after removal.
func (f *FS) Lookup(name string) (node.Lookup, error) {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	id := d.node.ID()
	return func() (node.Node, error) {
		f.mu.RLock()
		defer f.mu.RUnlock()
		n, ok := f.byID[id]
		if !ok {
			return nil, node.ErrNotExist
		}
		return n, nil
	}, nil
}

// View builds the named attribute view for a file.
func (f *FS) View(name, view string) (attr.View, error) {
	lookup, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.registry.View(view, lookup)
}

// ReadAttributes takes a point-in-time attribute snapshot for a file.
func (f *FS) ReadAttributes(name, view string) (attr.Attributes, error) {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return f.registry.ReadAttributes(view, d.node)
}

// GetAttribute reads one attribute by qualified key or bare name.
func (f *FS) GetAttribute(name, attribute string) (any, bool, error) {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return nil, false, err
	}
	value, ok := f.registry.GetAttribute(d.node, attribute)
	return value, ok, nil
}

// SetAttribute writes one attribute by qualified key or bare name. This is
// the post-creation path; creation restrictions do not apply.
func (f *FS) SetAttribute(name, attribute string, value any) error {
	f.mu.RLock()
	d, err := f.resolve(name)
	f.mu.RUnlock()
	if err != nil {
		return err
	}
	return f.registry.SetAttribute(d.node, attribute, value, false)
}

// resolve walks the tree to a dirent. Callers hold f.mu.
func (f *FS) resolve(name string) (*dirent, error) {
	if name == "." || name == "" {
		return f.root, nil
	}
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	d := f.root
	for _, part := range strings.Split(path.Clean(name), "/") {
		if !d.dir {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		child, ok := d.children[part]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		d = child
	}
	return d, nil
}

// resolveParent resolves the directory containing name. Callers hold f.mu.
func (f *FS) resolveParent(name string) (*dirent, string, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	dir, base := path.Split(path.Clean(name))
	parent, err := f.resolve(strings.TrimSuffix(dir, "/"))
	if err != nil {
		return nil, "", err
	}
	if !parent.dir {
		return nil, "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return parent, base, nil
}
