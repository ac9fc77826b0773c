package paint

// Resource is anything a callback keeps alive between frames.
type Resource interface {
	Destroy()
}

// Resources is the per-session cache that callbacks populate during
// Prepare and read during Paint. Entries persist across frames until the
// session is reset.
type Resources struct {
	entries map[string]Resource
}

// NewResources returns an empty cache.
func NewResources() *Resources {
	return &Resources{entries: make(map[string]Resource)}
}

// Get returns the entry stored under key.
func (r *Resources) Get(key string) (Resource, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// Set stores v under key, destroying a different previous entry.
func (r *Resources) Set(key string, v Resource) {
	if old, ok := r.entries[key]; ok && old != v {
		old.Destroy()
	}
	r.entries[key] = v
}

// Delete destroys and removes the entry stored under key.
func (r *Resources) Delete(key string) {
	if old, ok := r.entries[key]; ok {
		old.Destroy()
		delete(r.entries, key)
	}
}

// Len returns the number of entries.
func (r *Resources) Len() int { return len(r.entries) }

// Clear destroys every entry.
func (r *Resources) Clear() {
	for k, v := range r.entries {
		v.Destroy()
		delete(r.entries, k)
	}
}

// Get returns the entry stored under key when it has type T.
func Get[T Resource](r *Resources, key string) (T, bool) {
	v, ok := r.entries[key].(T)
	return v, ok
}
