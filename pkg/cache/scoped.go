package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when several decks or tenants share one Redis instance and need separate
// cache namespaces.
//
// Example usage:
//
//	// Deck-specific keys
//	deckKeyer := NewScopedKeyer(NewDefaultKeyer(), "deck:q3-review:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout results.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// InputKey generates a prefixed key for input documents.
func (k *ScopedKeyer) InputKey(slideID string) string {
	return k.prefix + k.inner.InputKey(slideID)
}
