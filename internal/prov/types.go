package prov

import "strings"

// Document is one PROV-JSON scope: the top-level document or the body of a
// named bundle. Field order mirrors declaration order in the input.
type Document struct {
	// Prefix maps short prefixes to namespace IRIs. Nil when the scope
	// declares no prefix block (a bundle then inherits its parent's table).
	Prefix *Table

	// Sections holds the kind-keyed record collections (entity, activity,
	// wasGeneratedBy, ...) in declaration order. The same kind may appear
	// more than once; consumers merge in order.
	Sections []Section

	// Bundles holds nested named documents in declaration order.
	Bundles []Bundle
}

// Table is an insertion-ordered prefix table.
type Table struct {
	keys []string
	vals map[string]string
}

// NewTable creates an empty prefix table.
func NewTable() *Table {
	return &Table{vals: make(map[string]string)}
}

// Set adds or replaces a prefix binding, preserving first-insertion order.
func (t *Table) Set(prefix, iri string) {
	if _, ok := t.vals[prefix]; !ok {
		t.keys = append(t.keys, prefix)
	}
	t.vals[prefix] = iri
}

// Get returns the namespace IRI bound to prefix.
func (t *Table) Get(prefix string) (string, bool) {
	if t == nil {
		return "", false
	}
	iri, ok := t.vals[prefix]
	return iri, ok
}

// Keys returns the prefixes in declaration order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Section is one kind-keyed record collection, e.g. all "entity" records
// or all "wasGeneratedBy" records declared under a single JSON key.
type Section struct {
	Kind    string
	Records []Record
}

// Record is a single element or relation record: an identifier mapped to
// an ordered attribute set.
type Record struct {
	// ID is the record's qualified name (the JSON object key). May be
	// empty for relation records that omit an identifier.
	ID    string
	Attrs []Attr
}

// Get returns the first attribute value for key.
func (r Record) Get(key string) (any, bool) {
	for _, a := range r.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Attr is one attribute of a record. Value is one of: string, bool,
// json.Number, nil, map[string]any (composite value), or []any.
type Attr struct {
	Key   string
	Value any
}

// Bundle is a named nested document.
type Bundle struct {
	ID       string
	Document *Document
}

// SplitQName splits a qualified name into its prefix and local parts.
// Returns ok=false when the name carries no prefix separator.
func SplitQName(name string) (prefix, local string, ok bool) {
	i := strings.Index(name, ":")
	if i < 0 {
		return "", name, false
	}
	return name[:i], name[i+1:], true
}

// IsBlank reports whether a qualified name is a blank identifier (_:local).
func IsBlank(name string) bool {
	return strings.HasPrefix(name, "_:")
}
