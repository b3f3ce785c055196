// Package host implements the "host" spec.md treats as an external
// collaborator (spec.md §6: "provides primitive operators, property
// access, iteration protocol and the async/IO primitives"). evalkit ships
// a small, real one so the module runs standalone rather than requiring an
// embedder to supply every primitive.
package host

import "evalkit/pkg/value"

// Record is an ordered, string-keyed property bag: the host object
// ObjectExpression and MemberExpression property access produce and
// consume. Insertion order is preserved for ForInStatement enumeration,
// grounded on the teacher's MapObject/ordered-map convention
// (pkg/values in the teacher keeps insertion order for objects).
type Record struct {
	keys    []string
	entries map[string]value.Value
}

func NewRecord() *Record {
	return &Record{entries: make(map[string]value.Value)}
}

func (r *Record) TypeName() string { return "Object" }

func (r *Record) String() string {
	return "[object Object]"
}

func (r *Record) Get(key string) (value.Value, bool) {
	v, ok := r.entries[key]
	return v, ok
}

func (r *Record) Set(key string, v value.Value) {
	if _, exists := r.entries[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = v
}

func (r *Record) Delete(key string) {
	if _, exists := r.entries[key]; !exists {
		return
	}
	delete(r.entries, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the property names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
