package attr

import (
	"time"

	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/identity"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
	"github.com/arthur-debert/attrfs/pkg/attrfs/perms"
)

// ViewPosix is the name of the POSIX attribute view.
const ViewPosix = "posix"

var (
	posixGroupKey = core.JoinKey(ViewPosix, "group")
	posixPermsKey = core.JoinKey(ViewPosix, "permissions")

	defaultGroup = identity.Group("group")
)

// defaultPermissions is rw-r--r--.
var defaultPermissions = perms.New(
	perms.OwnerRead, perms.OwnerWrite,
	perms.GroupRead,
	perms.OtherRead,
)

// PosixProvider implements the "posix" view: group identity and permission
// flags. Timestamps come from the inherited basic view and ownership from
// the inherited owner view; this provider stores neither itself.
//
// The group attribute may not be supplied through the generic set path at
// file creation; permissions may, so create-with-permissions stays atomic.
type PosixProvider struct {
	owned map[string]bool
	specs map[string]attrSpec
}

func NewPosixProvider() *PosixProvider {
	return &PosixProvider{
		owned: ownedSet([]string{"group", "permissions"}),
		specs: map[string]attrSpec{
			"group":       {convert: convertGroup, createRestricted: true},
			"permissions": {convert: convertPermissions},
		},
	}
}

func (p *PosixProvider) Name() string { return ViewPosix }
func (p *PosixProvider) Inherits() []string { return []string{ViewBasic, ViewOwner} }
func (p *PosixProvider) Attributes() []string { return []string{"group", "permissions"} }

func (p *PosixProvider) Defaults(overrides map[string]any) (map[string]any, error) {
	group := any(defaultGroup)
	if v, ok := overrides[posixGroupKey]; ok {
		canonical, err := convertGroup(ViewPosix, "group", v)
		if err != nil {
			return nil, err
		}
		group = canonical
	}

	permissions := any(defaultPermissions.Clone())
	if v, ok := overrides[posixPermsKey]; ok {
		canonical, err := convertPermissions(ViewPosix, "permissions", v)
		if err != nil {
			return nil, err
		}
		permissions = canonical
	}

	return map[string]any{
		posixGroupKey: group,
		posixPermsKey: permissions,
	}, nil
}

func (p *PosixProvider) Get(n node.Node, attribute string) (any, bool) {
	v, ok := genericGet(n, ViewPosix, p.owned, attribute)
	if set, isSet := v.(perms.Set); isSet {
		// Readers get a copy; the stored set is never exposed.
		return set.Clone(), ok
	}
	return v, ok
}

func (p *PosixProvider) Set(n node.Node, view, attribute string, value any, create bool) error {
	return genericSet(n, ViewPosix, p.specs, view, attribute, value, create)
}

func (p *PosixProvider) View(lookup node.Lookup, inherited map[string]View) View {
	return &PosixView{
		lookup: lookup,
		basic:  inherited[ViewBasic].(*BasicView),
		owner:  inherited[ViewOwner].(*OwnerView),
	}
}

func (p *PosixProvider) ReadAttributes(n node.Node) (Attributes, error) {
	return readPosixAttributes(n), nil
}

// PosixView is the live handle for the posix view. Owner operations delegate
// to the inherited owner view and SetTimes to the inherited basic view.
type PosixView struct {
	lookup node.Lookup
	basic  *BasicView
	owner  *OwnerView
}

func (v *PosixView) Name() string { return ViewPosix }

// ReadAttributes takes a fresh snapshot of the current node.
func (v *PosixView) ReadAttributes() (*PosixAttributes, error) {
	n, err := v.lookup()
	if err != nil {
		return nil, err
	}
	return readPosixAttributes(n), nil
}

// SetTimes delegates to the basic view.
func (v *PosixView) SetTimes(modified, accessed, created *time.Time) error {
	return v.basic.SetTimes(modified, accessed, created)
}

// Owner delegates to the owner view.
func (v *PosixView) Owner() (*identity.Identity, error) {
	return v.owner.Owner()
}

// SetOwner delegates to the owner view.
func (v *PosixView) SetOwner(owner *identity.Identity) error {
	return v.owner.SetOwner(owner)
}

// SetGroup replaces the file's group.
func (v *PosixView) SetGroup(group *identity.Identity) error {
	n, err := v.lookup()
	if err != nil {
		return err
	}
	n.SetAttribute(posixGroupKey, identity.Group(group.Name()))
	return nil
}

// SetPermissions replaces the permission set. The caller's set is cloned;
// mutating it afterward does not affect the stored value.
func (v *PosixView) SetPermissions(set perms.Set) error {
	n, err := v.lookup()
	if err != nil {
		return err
	}
	n.SetAttribute(posixPermsKey, set.Clone())
	return nil
}

// PosixAttributes is the immutable snapshot of the posix view, including the
// inherited basic and owner values.
type PosixAttributes struct {
	BasicAttributes
	owner       *identity.Identity
	group       *identity.Identity
	permissions perms.Set
}

func readPosixAttributes(n node.Node) *PosixAttributes {
	a := &PosixAttributes{
		BasicAttributes: *readBasicAttributes(n),
		owner:           ownerAttr(n),
		group:           defaultGroup,
		permissions:     perms.New(),
	}
	if v, ok := n.Attribute(posixGroupKey); ok {
		if g, ok := v.(*identity.Identity); ok {
			a.group = g
		}
	}
	if v, ok := n.Attribute(posixPermsKey); ok {
		if set, ok := v.(perms.Set); ok {
			a.permissions = set.Clone()
		}
	}
	return a
}

func (a *PosixAttributes) View() string { return ViewPosix }
func (a *PosixAttributes) Owner() *identity.Identity { return a.owner }
func (a *PosixAttributes) Group() *identity.Identity { return a.group }

// Permissions returns a copy of the snapshot's permission set.
func (a *PosixAttributes) Permissions() perms.Set { return a.permissions.Clone() }
