package cache

// ScopedKeyer wraps a Keyer with a prefix so separate runs or tenants can
// share one backing store without key collisions.
//
// Example usage:
//
//	// Site-specific keys when several clinics share one redis
//	siteKeyer := NewScopedKeyer(NewDefaultKeyer(), "site:main:")
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

// PlanKey generates a prefixed key for analysis result caching.
func (k *ScopedKeyer) PlanKey(contentHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(contentHash, opts)
}
