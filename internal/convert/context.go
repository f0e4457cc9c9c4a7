package convert

import (
	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/vocab"
)

// scope is the active prefix table for one document scope. A bundle with
// its own prefix block gets a fresh scope; a bundle without one inherits
// the parent's scope unchanged.
type scope struct {
	table *prov.Table
}

// resolve checks that a qualified name's prefix resolves in this scope.
// Names without a prefix separator pass through untouched: there is
// nothing to resolve. Blank names (_:local) and prefixes defined by the
// canonical remote context are always valid.
func (s scope) resolve(name string, path RecordPath) error {
	prefix, _, ok := prov.SplitQName(name)
	if !ok {
		return nil
	}
	if vocab.BuiltinPrefixes[prefix] {
		return nil
	}
	if _, ok := s.table.Get(prefix); ok {
		return nil
	}
	return &PrefixError{Path: path, Name: name, Prefix: prefix}
}

// buildContext assembles an @context array: the local prefix mapping
// object first (declaration order preserved), then the canonical context
// URL appended last. With no local prefixes the array is just the URL.
func buildContext(table *prov.Table, contextURL string) []any {
	ctx := make([]any, 0, 2)
	if table.Len() > 0 {
		obj := jsonld.NewObject()
		for _, prefix := range table.Keys() {
			iri, _ := table.Get(prefix)
			obj.Set(prefix, iri)
		}
		ctx = append(ctx, obj)
	}
	return append(ctx, contextURL)
}
