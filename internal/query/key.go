package query

import (
	"fmt"
	"strings"
)

// Key identifies a cache entry. The first element is the entity name and
// later elements narrow it, so ["contracts"] is a prefix of
// ["contracts", "paged", params].
type Key []any

func K(parts ...any) Key {
	return Key(parts)
}

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = encodePart(p)
	}
	return strings.Join(parts, "/")
}

// encodePart prints names and ids as is. Anything else, parameter structs
// in particular, uses the Go-syntax form so quoted fields cannot run together.
func encodePart(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprint(v)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// HasPrefix compares element-wise on the encoded form, so a struct of
// parameters matches any equal struct.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if encodePart(k[i]) != encodePart(prefix[i]) {
			return false
		}
	}
	return true
}

func (k Key) Equal(other Key) bool {
	return len(k) == len(other) && k.HasPrefix(other)
}

// Append returns a new key; k is never modified.
func (k Key) Append(parts ...any) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}
