package app

import "github.com/nhle/okr-dashboard/internal/keys"

// KeyMap is re-exported from the keys package so the root model and
// its subviews share one binding set.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
