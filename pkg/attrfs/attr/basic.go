package attr

import (
	"time"

	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
)

// ViewBasic is the name of the basic attribute view.
const ViewBasic = "basic"

var basicAttributes = []string{
	"lastModifiedTime",
	"lastAccessTime",
	"creationTime",
	"size",
	"isDirectory",
	"isRegularFile",
	"isSymbolicLink",
}

// basicTimeAttributes are the settable subset; size and the type flags are
// structural facts written by the hosting filesystem, not by callers.
var basicTimeAttributes = []string{"lastModifiedTime", "lastAccessTime", "creationTime"}

// BasicProvider implements the "basic" view: timestamps plus the structural
// attributes every file has. Every other view inherits it for timestamp
// delegation.
type BasicProvider struct {
	clock func() time.Time
	owned map[string]bool
	specs map[string]attrSpec
}

// NewBasicProvider returns the basic provider. clock supplies the default
// timestamps for new files; nil means time.Now.
func NewBasicProvider(clock func() time.Time) *BasicProvider {
	if clock == nil {
		clock = time.Now
	}
	specs := make(map[string]attrSpec, len(basicTimeAttributes))
	for _, name := range basicTimeAttributes {
		specs[name] = attrSpec{convert: convertTime}
	}
	return &BasicProvider{
		clock: clock,
		owned: ownedSet(basicAttributes),
		specs: specs,
	}
}

func (p *BasicProvider) Name() string { return ViewBasic }
func (p *BasicProvider) Inherits() []string { return nil }
func (p *BasicProvider) Attributes() []string { return basicAttributes }

// Defaults seeds the three timestamps, all from one clock reading unless
// overridden.
func (p *BasicProvider) Defaults(overrides map[string]any) (map[string]any, error) {
	now := p.clock()
	defaults := make(map[string]any, len(basicTimeAttributes))
	for _, name := range basicTimeAttributes {
		key := core.JoinKey(ViewBasic, name)
		if v, ok := overrides[key]; ok {
			canonical, err := convertTime(ViewBasic, name, v)
			if err != nil {
				return nil, err
			}
			defaults[key] = canonical
			continue
		}
		defaults[key] = now
	}
	return defaults, nil
}

func (p *BasicProvider) Get(n node.Node, attribute string) (any, bool) {
	return genericGet(n, ViewBasic, p.owned, attribute)
}

func (p *BasicProvider) Set(n node.Node, view, attribute string, value any, create bool) error {
	return genericSet(n, ViewBasic, p.specs, view, attribute, value, create)
}

func (p *BasicProvider) View(lookup node.Lookup, inherited map[string]View) View {
	return &BasicView{lookup: lookup}
}

func (p *BasicProvider) ReadAttributes(n node.Node) (Attributes, error) {
	return readBasicAttributes(n), nil
}

// BasicView is the live handle for the basic view.
type BasicView struct {
	lookup node.Lookup
}

func (v *BasicView) Name() string { return ViewBasic }

// ReadAttributes takes a fresh snapshot of the current node.
func (v *BasicView) ReadAttributes() (*BasicAttributes, error) {
	n, err := v.lookup()
	if err != nil {
		return nil, err
	}
	return readBasicAttributes(n), nil
}

// SetTimes updates any of the three timestamps; nil arguments leave the
// corresponding timestamp unchanged.
func (v *BasicView) SetTimes(modified, accessed, created *time.Time) error {
	n, err := v.lookup()
	if err != nil {
		return err
	}
	if modified != nil {
		n.SetAttribute(core.JoinKey(ViewBasic, "lastModifiedTime"), *modified)
	}
	if accessed != nil {
		n.SetAttribute(core.JoinKey(ViewBasic, "lastAccessTime"), *accessed)
	}
	if created != nil {
		n.SetAttribute(core.JoinKey(ViewBasic, "creationTime"), *created)
	}
	return nil
}

// BasicAttributes is the immutable snapshot of the basic view.
type BasicAttributes struct {
	modTime    time.Time
	accessTime time.Time
	createTime time.Time
	size       int64
	dir        bool
	regular    bool
	symlink    bool
}

func readBasicAttributes(n node.Node) *BasicAttributes {
	return &BasicAttributes{
		modTime:    timeAttr(n, core.JoinKey(ViewBasic, "lastModifiedTime")),
		accessTime: timeAttr(n, core.JoinKey(ViewBasic, "lastAccessTime")),
		createTime: timeAttr(n, core.JoinKey(ViewBasic, "creationTime")),
		size:       int64Attr(n, core.JoinKey(ViewBasic, "size")),
		dir:        boolAttr(n, core.JoinKey(ViewBasic, "isDirectory")),
		regular:    boolAttr(n, core.JoinKey(ViewBasic, "isRegularFile")),
		symlink:    boolAttr(n, core.JoinKey(ViewBasic, "isSymbolicLink")),
	}
}

func (a *BasicAttributes) View() string { return ViewBasic }
func (a *BasicAttributes) ModTime() time.Time { return a.modTime }
func (a *BasicAttributes) AccessTime() time.Time { return a.accessTime }
func (a *BasicAttributes) CreationTime() time.Time { return a.createTime }
func (a *BasicAttributes) Size() int64 { return a.size }
func (a *BasicAttributes) IsDir() bool { return a.dir }
func (a *BasicAttributes) IsRegular() bool { return a.regular }
func (a *BasicAttributes) IsSymlink() bool { return a.symlink }

func timeAttr(n node.Node, key string) time.Time {
	if v, ok := n.Attribute(key); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func boolAttr(n node.Node, key string) bool {
	if v, ok := n.Attribute(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func int64Attr(n node.Node, key string) int64 {
	if v, ok := n.Attribute(key); ok {
		if i, ok := v.(int64); ok {
			return i
		}
	}
	return 0
}
