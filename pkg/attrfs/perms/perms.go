// Package perms implements POSIX-style permission flag sets for the posix
// attribute view.
package perms

import "fmt"

// Flag is one of the nine POSIX permission flags.
type Flag uint8

const (
	OwnerRead Flag = iota
	OwnerWrite
	OwnerExecute
	GroupRead
	GroupWrite
	GroupExecute
	OtherRead
	OtherWrite
	OtherExecute

	flagCount
)

var flagNames = [flagCount]string{
	"owner:read", "owner:write", "owner:execute",
	"group:read", "group:write", "group:execute",
	"other:read", "other:write", "other:execute",
}

func (f Flag) String() string {
	if f < flagCount {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

// Set is a mutable set of permission flags. Values stored on or read from a
// node are always defensive copies (Clone), so no caller-held Set aliases
// stored state.
type Set map[Flag]struct{}

// New builds a Set containing the given flags.
func New(flags ...Flag) Set {
	s := make(Set, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

// FromString parses the conventional nine-character permission string, e.g.
// "rw-r--r--".
func FromString(str string) (Set, error) {
	if len(str) != int(flagCount) {
		return nil, fmt.Errorf("invalid permission string %q: must be 9 characters", str)
	}
	s := make(Set)
	for i := Flag(0); i < flagCount; i++ {
		c := str[i]
		if c == '-' {
			continue
		}
		var want byte
		switch i % 3 {
		case 0:
			want = 'r'
		case 1:
			want = 'w'
		case 2:
			want = 'x'
		}
		if c != want {
			return nil, fmt.Errorf("invalid permission string %q: unexpected character %q at index %d", str, c, i)
		}
		s[i] = struct{}{}
	}
	return s, nil
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}

// Has reports whether the set contains the flag.
func (s Set) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// Add inserts a flag into the set.
func (s Set) Add(f Flag) { s[f] = struct{}{} }

// Remove deletes a flag from the set.
func (s Set) Remove(f Flag) { delete(s, f) }

// Len returns the number of flags in the set.
func (s Set) Len() int { return len(s) }

// Equal reports whether both sets contain exactly the same flags.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for f := range s {
		if _, ok := other[f]; !ok {
			return false
		}
	}
	return true
}

// String renders the set in the conventional "rwxrwxrwx" form.
func (s Set) String() string {
	buf := []byte("---------")
	for f := range s {
		switch f % 3 {
		case 0:
			buf[f] = 'r'
		case 1:
			buf[f] = 'w'
		case 2:
			buf[f] = 'x'
		}
	}
	return string(buf)
}
