package cache

import (
	"errors"
	"strings"
)

// ErrEmptyKey is returned when a key would normalize to the empty string.
var ErrEmptyKey = errors.New("cache key cannot be empty")

// Key is a normalized composite cache key. Two keys are equal iff their
// normalized string forms are equal; comparison is case-sensitive.
type Key struct {
	value string
}

// NewKey joins the non-empty trimmed parts with colons. It fails when no
// part survives normalization.
func NewKey(parts ...string) (Key, error) {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return Key{}, ErrEmptyKey
	}
	return Key{value: strings.Join(kept, ":")}, nil
}

// KeyFromString wraps an already-joined key string.
func KeyFromString(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, ErrEmptyKey
	}
	return Key{value: s}, nil
}

func (k Key) String() string { return k.value }
