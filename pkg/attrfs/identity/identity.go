// Package identity provides user and group principals for file ownership
// attributes. Identities are interned: two calls with the same name return
// the same instance, so identities compare with ==.
package identity

import "sync"

// Identity is a named user or group principal.
type Identity struct {
	name  string
	group bool
}

var (
	mu     sync.Mutex
	users  = map[string]*Identity{}
	groups = map[string]*Identity{}
)

// User returns the user principal with the given name.
func User(name string) *Identity {
	mu.Lock()
	defer mu.Unlock()
	id, ok := users[name]
	if !ok {
		id = &Identity{name: name}
		users[name] = id
	}
	return id
}

// Group returns the group principal with the given name.
func Group(name string) *Identity {
	mu.Lock()
	defer mu.Unlock()
	id, ok := groups[name]
	if !ok {
		id = &Identity{name: name, group: true}
		groups[name] = id
	}
	return id
}

// Name returns the principal's name.
func (id *Identity) Name() string { return id.name }

// IsGroup reports whether this is a group principal.
func (id *Identity) IsGroup() bool { return id.group }

func (id *Identity) String() string {
	if id.group {
		return "group:" + id.name
	}
	return "user:" + id.name
}
