package attr

import (
	"time"

	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/identity"
	"github.com/arthur-debert/attrfs/pkg/attrfs/perms"
)

func convertBool(view, attribute string, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, &core.TypeError{View: view, Attribute: attribute, Expected: "bool", Actual: value}
	}
	return b, nil
}

func convertTime(view, attribute string, value any) (any, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, &core.TypeError{View: view, Attribute: attribute, Expected: "time.Time", Actual: value}
	}
	return t, nil
}

// convertUser accepts an identity or, as a convenience, a bare name string.
// Group principals are re-interned as users.
func convertUser(view, attribute string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return identity.User(v), nil
	case *identity.Identity:
		return identity.User(v.Name()), nil
	}
	return nil, &core.TypeError{View: view, Attribute: attribute, Expected: "string or *identity.Identity", Actual: value}
}

// convertGroup is the group-flavored counterpart of convertUser.
func convertGroup(view, attribute string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return identity.Group(v), nil
	case *identity.Identity:
		return identity.Group(v.Name()), nil
	}
	return nil, &core.TypeError{View: view, Attribute: attribute, Expected: "string or *identity.Identity", Actual: value}
}

// convertPermissions accepts a "rwxr-xr-x" style string or a perms.Set. Sets
// are cloned so the stored value never aliases the caller's.
func convertPermissions(view, attribute string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		set, err := perms.FromString(v)
		if err != nil {
			return nil, err
		}
		return set, nil
	case perms.Set:
		return v.Clone(), nil
	}
	return nil, &core.TypeError{View: view, Attribute: attribute, Expected: "string or perms.Set", Actual: value}
}
