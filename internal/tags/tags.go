// Package tags maps plan executors to Telegram handles.
package tags

import "strings"

// DefaultPrefix marks a name that is already a Telegram handle.
const DefaultPrefix = "@"

// Resolver resolves display names through a fixed name→handle table.
type Resolver struct {
	handles map[string]string
	prefix  string
}

// NewResolver copies handles so later changes to the caller's map have no effect.
func NewResolver(handles map[string]string, prefix string) *Resolver {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	m := make(map[string]string, len(handles))
	for name, handle := range handles {
		m[strings.TrimSpace(name)] = handle
	}
	return &Resolver{handles: m, prefix: prefix}
}

// Resolve returns the handle for name, name itself when it is already a
// handle, or "" when the name is unknown.
func (r *Resolver) Resolve(name string) string {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return ""
	}
	if handle, ok := r.handles[clean]; ok {
		return handle
	}
	if strings.HasPrefix(clean, r.prefix) {
		return clean
	}
	return ""
}

// ResolveAll resolves every whitespace-separated name in field.
func (r *Resolver) ResolveAll(field string) []string {
	var out []string
	for _, name := range strings.Fields(field) {
		if handle := r.Resolve(name); handle != "" {
			out = append(out, handle)
		}
	}
	return out
}

// Set is a set of handles that remembers insertion order.
type Set struct {
	seen  map[string]struct{}
	order []string
}

// NewSet returns a set seeded with handles.
func NewSet(handles ...string) *Set {
	s := &Set{seen: make(map[string]struct{})}
	s.Add(handles...)
	return s
}

// Add inserts handles not yet present. Empty strings are ignored.
func (s *Set) Add(handles ...string) {
	for _, h := range handles {
		if h == "" {
			continue
		}
		if _, ok := s.seen[h]; ok {
			continue
		}
		s.seen[h] = struct{}{}
		s.order = append(s.order, h)
	}
}

// Len returns the number of handles.
func (s *Set) Len() int { return len(s.order) }

// Values returns the handles in insertion order.
func (s *Set) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// String joins the handles with single spaces.
func (s *Set) String() string {
	return strings.Join(s.order, " ")
}
