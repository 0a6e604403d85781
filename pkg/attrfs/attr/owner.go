package attr

import (
	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/identity"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
)

// ViewOwner is the name of the file-owner attribute view.
const ViewOwner = "owner"

var ownerKey = core.JoinKey(ViewOwner, "owner")

var defaultOwner = identity.User("user")

// OwnerProvider implements the "owner" view: a single owner identity
// attribute. The posix view delegates its owner operations here.
type OwnerProvider struct {
	owned map[string]bool
	specs map[string]attrSpec
}

func NewOwnerProvider() *OwnerProvider {
	return &OwnerProvider{
		owned: ownedSet([]string{"owner"}),
		specs: map[string]attrSpec{
			"owner": {convert: convertUser},
		},
	}
}

func (p *OwnerProvider) Name() string { return ViewOwner }
func (p *OwnerProvider) Inherits() []string { return nil }
func (p *OwnerProvider) Attributes() []string { return []string{"owner"} }

func (p *OwnerProvider) Defaults(overrides map[string]any) (map[string]any, error) {
	owner := any(defaultOwner)
	if v, ok := overrides[ownerKey]; ok {
		canonical, err := convertUser(ViewOwner, "owner", v)
		if err != nil {
			return nil, err
		}
		owner = canonical
	}
	return map[string]any{ownerKey: owner}, nil
}

func (p *OwnerProvider) Get(n node.Node, attribute string) (any, bool) {
	return genericGet(n, ViewOwner, p.owned, attribute)
}

func (p *OwnerProvider) Set(n node.Node, view, attribute string, value any, create bool) error {
	return genericSet(n, ViewOwner, p.specs, view, attribute, value, create)
}

func (p *OwnerProvider) View(lookup node.Lookup, inherited map[string]View) View {
	return &OwnerView{lookup: lookup}
}

func (p *OwnerProvider) ReadAttributes(n node.Node) (Attributes, error) {
	return &OwnerAttributes{owner: ownerAttr(n)}, nil
}

// OwnerView is the live handle for the owner view.
type OwnerView struct {
	lookup node.Lookup
}

func (v *OwnerView) Name() string { return ViewOwner }

// Owner returns the file's current owner.
func (v *OwnerView) Owner() (*identity.Identity, error) {
	n, err := v.lookup()
	if err != nil {
		return nil, err
	}
	return ownerAttr(n), nil
}

// SetOwner replaces the file's owner.
func (v *OwnerView) SetOwner(owner *identity.Identity) error {
	n, err := v.lookup()
	if err != nil {
		return err
	}
	n.SetAttribute(ownerKey, identity.User(owner.Name()))
	return nil
}

// OwnerAttributes is the immutable snapshot of the owner view.
type OwnerAttributes struct {
	owner *identity.Identity
}

func (a *OwnerAttributes) View() string { return ViewOwner }
func (a *OwnerAttributes) Owner() *identity.Identity { return a.owner }

func ownerAttr(n node.Node) *identity.Identity {
	if v, ok := n.Attribute(ownerKey); ok {
		if id, ok := v.(*identity.Identity); ok {
			return id
		}
	}
	return defaultOwner
}
