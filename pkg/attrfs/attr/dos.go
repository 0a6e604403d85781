package attr

import (
	"time"

	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
)

// ViewDos is the name of the DOS attribute view.
const ViewDos = "dos"

var dosAttributes = []string{"readonly", "hidden", "archive", "system"}

// DosProvider implements the "dos" view: four boolean flags, all false by
// default. None of the flags may be injected through the generic set path at
// file creation; the typed setters on DosView flip them afterward.
type DosProvider struct {
	owned map[string]bool
	specs map[string]attrSpec
}

func NewDosProvider() *DosProvider {
	specs := make(map[string]attrSpec, len(dosAttributes))
	for _, name := range dosAttributes {
		specs[name] = attrSpec{convert: convertBool, createRestricted: true}
	}
	return &DosProvider{
		owned: ownedSet(dosAttributes),
		specs: specs,
	}
}

func (p *DosProvider) Name() string { return ViewDos }
func (p *DosProvider) Inherits() []string { return []string{ViewBasic} }
func (p *DosProvider) Attributes() []string { return dosAttributes }

func (p *DosProvider) Defaults(overrides map[string]any) (map[string]any, error) {
	defaults := make(map[string]any, len(dosAttributes))
	for _, name := range dosAttributes {
		key := core.JoinKey(ViewDos, name)
		if v, ok := overrides[key]; ok {
			canonical, err := convertBool(ViewDos, name, v)
			if err != nil {
				return nil, err
			}
			defaults[key] = canonical
			continue
		}
		defaults[key] = false
	}
	return defaults, nil
}

func (p *DosProvider) Get(n node.Node, attribute string) (any, bool) {
	return genericGet(n, ViewDos, p.owned, attribute)
}

func (p *DosProvider) Set(n node.Node, view, attribute string, value any, create bool) error {
	return genericSet(n, ViewDos, p.specs, view, attribute, value, create)
}

func (p *DosProvider) View(lookup node.Lookup, inherited map[string]View) View {
	return &DosView{
		lookup: lookup,
		basic:  inherited[ViewBasic].(*BasicView),
	}
}

func (p *DosProvider) ReadAttributes(n node.Node) (Attributes, error) {
	return readDosAttributes(n), nil
}

// DosView is the live handle for the dos view. The typed setters write the
// node directly: the creation restriction only guards the generic set path,
// a held view can always flip a flag.
type DosView struct {
	lookup node.Lookup
	basic  *BasicView
}

func (v *DosView) Name() string { return ViewDos }

// ReadAttributes takes a fresh snapshot of the current node.
func (v *DosView) ReadAttributes() (*DosAttributes, error) {
	n, err := v.lookup()
	if err != nil {
		return nil, err
	}
	return readDosAttributes(n), nil
}

// SetTimes delegates to the basic view.
func (v *DosView) SetTimes(modified, accessed, created *time.Time) error {
	return v.basic.SetTimes(modified, accessed, created)
}

func (v *DosView) SetReadOnly(value bool) error { return v.setFlag("readonly", value) }
func (v *DosView) SetHidden(value bool) error { return v.setFlag("hidden", value) }
func (v *DosView) SetArchive(value bool) error { return v.setFlag("archive", value) }
func (v *DosView) SetSystem(value bool) error { return v.setFlag("system", value) }

func (v *DosView) setFlag(name string, value bool) error {
	n, err := v.lookup()
	if err != nil {
		return err
	}
	n.SetAttribute(core.JoinKey(ViewDos, name), value)
	return nil
}

// DosAttributes is the immutable snapshot of the dos view, including the
// inherited basic values.
type DosAttributes struct {
	BasicAttributes
	readonly bool
	hidden   bool
	archive  bool
	system   bool
}

func readDosAttributes(n node.Node) *DosAttributes {
	return &DosAttributes{
		BasicAttributes: *readBasicAttributes(n),
		readonly:        boolAttr(n, core.JoinKey(ViewDos, "readonly")),
		hidden:          boolAttr(n, core.JoinKey(ViewDos, "hidden")),
		archive:         boolAttr(n, core.JoinKey(ViewDos, "archive")),
		system:          boolAttr(n, core.JoinKey(ViewDos, "system")),
	}
}

func (a *DosAttributes) View() string { return ViewDos }
func (a *DosAttributes) ReadOnly() bool { return a.readonly }
func (a *DosAttributes) Hidden() bool { return a.hidden }
func (a *DosAttributes) Archive() bool { return a.archive }
func (a *DosAttributes) System() bool { return a.system }
