package jsonld

// Object is an insertion-ordered JSON object. Members serialize in the
// order they were first set, which is how the converter realizes its
// deterministic-output contract (@type and @id first, then attributes in
// input declaration order).
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set adds or replaces a member, preserving first-insertion order.
// Returns the object for chaining.
func (o *Object) Set(key string, value any) *Object {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = value
	return o
}

// Get returns the member value for key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether the object has a member for key.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Keys returns the member keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON implements json.Marshaler with insertion-ordered members.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}
