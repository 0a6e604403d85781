package core

import "fmt"

// TypeError reports a caller-supplied attribute value whose type does not
// match the attribute's declared type. It names the expected type so the
// caller can see what conversion was attempted.
type TypeError struct {
	View      string
	Attribute string
	Expected  string
	Actual    any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("invalid type %T for attribute '%s:%s': expected %s",
		e.Actual, e.View, e.Attribute, e.Expected)
}

// CreateRestrictedError reports an attempt to supply a creation-restricted
// attribute through the generic set path at file-creation time. It is
// distinct from TypeError: the value may be perfectly valid, the timing is
// not.
type CreateRestrictedError struct {
	View      string
	Attribute string
}

func (e *CreateRestrictedError) Error() string {
	return fmt.Sprintf("cannot set attribute '%s:%s' during file creation",
		e.View, e.Attribute)
}

// UnknownViewError reports a request to build a view or snapshot for a view
// name no registered provider owns. Note that attribute-level get/set on
// unknown names is deliberately NOT an error (absent / no-op); only view
// construction by name fails loudly.
type UnknownViewError struct {
	View string
}

func (e *UnknownViewError) Error() string {
	return fmt.Sprintf("no attribute view registered with name '%s'", e.View)
}
