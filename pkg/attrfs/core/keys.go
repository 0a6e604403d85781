package core

import "strings"

// JoinKey builds the qualified attribute key used to store an attribute on a
// node, e.g. JoinKey("posix", "group") == "posix:group".
func JoinKey(view, attribute string) string {
	return view + ":" + attribute
}

// SplitKey splits a qualified attribute key into its view and attribute parts.
// It returns ok=false for bare attribute names (no view prefix).
func SplitKey(key string) (view, attribute string, ok bool) {
	i := strings.IndexByte(key, ':')
	if i < 0 {
		return "", key, false
	}
	return key[:i], key[i+1:], true
}
