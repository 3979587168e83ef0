package cache

// Keyer generates cache keys for the different lookup types.
// Implementations must be deterministic: the same inputs always produce
// the same key.
type Keyer interface {
	// ProjectKey generates a key for a single project lookup.
	ProjectKey(instance, ref string) string

	// ProjectsKey generates a key for a project listing with filter options.
	ProjectsKey(instance string, opts ProjectsKeyOpts) string
}

// ProjectsKeyOpts holds the filter options that distinguish project listings.
// Listings with different options must never share a cache entry.
type ProjectsKeyOpts struct {
	Owned      bool   `json:"owned"`
	Membership bool   `json:"membership"`
	Starred    bool   `json:"starred"`
	Search     string `json:"search"`
	Namespace  string `json:"namespace"`
	Visibility string `json:"visibility"`
	Topic      string `json:"topic"`
	OrderBy    string `json:"order_by"`
	Sort       string `json:"sort"`
	Limit      int    `json:"limit"`
}

// DefaultKeyer is the standard key generator.
// Keys are namespaced by the GitLab instance URL so that multiple instances
// can safely share a backend.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ProjectKey generates a key for a single project lookup.
func (k *DefaultKeyer) ProjectKey(instance, ref string) string {
	return hashKey("project", instance, ref)
}

// ProjectsKey generates a key for a project listing.
func (k *DefaultKeyer) ProjectsKey(instance string, opts ProjectsKeyOpts) string {
	return hashKey("projects", instance, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or tokens
// need separate cache namespaces.
//
// Example usage:
//
//	// Token-specific keys for private project listings
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
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

// ProjectKey generates a prefixed key for a single project lookup.
func (k *ScopedKeyer) ProjectKey(instance, ref string) string {
	return k.prefix + k.inner.ProjectKey(instance, ref)
}

// ProjectsKey generates a prefixed key for a project listing.
func (k *ScopedKeyer) ProjectsKey(instance string, opts ProjectsKeyOpts) string {
	return k.prefix + k.inner.ProjectsKey(instance, opts)
}
