package convert

import (
	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/vocab"
)

// Options configures a conversion. The zero value uses the canonical
// PROV-JSONLD context URL.
type Options struct {
	// ContextURL overrides the canonical remote context URL appended to
	// every emitted @context array.
	ContextURL string
}

// Result is a successful conversion: the output document plus every
// recoverable condition recorded along the way.
type Result struct {
	// Document is the full {"@context": ..., "@graph": [...]} object.
	Document *jsonld.Object

	// Warnings lists recoverable conditions in encounter order.
	Warnings []Warning
}

// converter carries per-conversion state: options and the accumulated
// warning list. A fresh converter is built per call; nothing is shared.
type converter struct {
	opts     Options
	warnings []Warning
}

// Convert transforms a decoded PROV-JSON document into PROV-JSONLD.
func Convert(doc *prov.Document) (*Result, error) {
	return ConvertWith(doc, Options{})
}

// ConvertWith is Convert with explicit options.
func ConvertWith(doc *prov.Document, opts Options) (*Result, error) {
	if opts.ContextURL == "" {
		opts.ContextURL = vocab.ContextURL
	}

	c := &converter{opts: opts}
	graph, err := c.convertScope(doc, scope{table: doc.Prefix}, RecordPath{})
	if err != nil {
		return nil, err
	}

	out := jsonld.NewObject().
		Set("@context", buildContext(doc.Prefix, opts.ContextURL)).
		Set("@graph", graph)

	return &Result{Document: out, Warnings: c.warnings}, nil
}

// convertScope emits one document scope's @graph array: elements in kind
// order, then relations in the canonical 14-kind order, then nested
// bundles in declaration order. Declaration order is preserved within
// each kind.
func (c *converter) convertScope(doc *prov.Document, sc scope, path RecordPath) ([]any, error) {
	graph := make([]any, 0)
	seen := make(map[string]bool)

	for _, kind := range vocab.ElementKinds {
		for _, section := range doc.Sections {
			if section.Kind != kind {
				continue
			}
			for _, rec := range section.Records {
				node, err := c.mapElement(sc, kind, rec, path)
				if err != nil {
					return nil, err
				}
				if c.claimID(seen, node, kind, path) {
					graph = append(graph, node)
				}
			}
		}
	}

	for _, kind := range vocab.RelationKinds {
		for _, section := range doc.Sections {
			if section.Kind != kind {
				continue
			}
			for _, rec := range section.Records {
				link, err := c.mapRelation(sc, kind, rec, path)
				if err != nil {
					return nil, err
				}
				if c.claimID(seen, link, kind, path) {
					graph = append(graph, link)
				}
			}
		}
	}

	for _, section := range doc.Sections {
		if vocab.IsElementKind(section.Kind) || vocab.IsRelationKind(section.Kind) {
			continue
		}
		c.warnUnknownKind(section, path)
	}

	for _, bundle := range doc.Bundles {
		node, err := c.convertBundle(bundle, sc, path)
		if err != nil {
			return nil, err
		}
		if c.claimID(seen, node, "bundle", path) {
			graph = append(graph, node)
		}
	}

	return graph, nil
}

// claimID registers a node's @id in its graph scope. A repeated
// identifier keeps the first declaration and drops this one with a
// warning, so @id stays unique within each @graph array.
func (c *converter) claimID(seen map[string]bool, node *jsonld.Object, kind string, path RecordPath) bool {
	v, _ := node.Get("@id")
	id, ok := v.(string)
	if !ok || id == "" {
		return true
	}
	if seen[id] {
		dupPath := path
		dupPath.Kind = kind
		dupPath.ID = id
		c.warn(WarnDuplicateID, dupPath, "identifier already declared in this graph; record skipped")
		return false
	}
	seen[id] = true
	return true
}

// convertBundle recursively re-applies the pipeline to a nested document
// and wraps the result as a named graph. A bundle declaring its own
// prefixes resolves in a fresh scope and emits its own @context; one
// without inherits the parent's scope and emits none. Bundle contents
// never leak into the parent's @graph.
func (c *converter) convertBundle(bundle prov.Bundle, parent scope, path RecordPath) (*jsonld.Object, error) {
	bundlePath := path
	bundlePath.Kind = "bundle"
	bundlePath.ID = bundle.ID

	if err := parent.resolve(bundle.ID, bundlePath); err != nil {
		return nil, err
	}

	sc := parent
	if bundle.Document.Prefix != nil {
		sc = scope{table: bundle.Document.Prefix}
	}

	childPath := RecordPath{Bundle: bundle.ID}
	if path.Bundle != "" {
		childPath.Bundle = path.Bundle + "." + bundle.ID
	}

	graph, err := c.convertScope(bundle.Document, sc, childPath)
	if err != nil {
		return nil, err
	}

	node := jsonld.NewObject().
		Set("@id", bundle.ID).
		Set("@type", "prov:Bundle")
	if bundle.Document.Prefix != nil {
		node.Set("@context", buildContext(bundle.Document.Prefix, c.opts.ContextURL))
	}
	node.Set("@graph", graph)

	return node, nil
}

// warnUnknownKind records a skipped record collection. The two warning
// codes are told apart by shape: a collection whose records carry any
// reserved role key reads as a relation extension, anything else as an
// element extension.
func (c *converter) warnUnknownKind(section prov.Section, path RecordPath) {
	code := WarnUnknownElementKind
	for _, rec := range section.Records {
		for _, attr := range rec.Attrs {
			if vocab.IsRoleKey(attr.Key) {
				code = WarnUnknownRelationKind
				break
			}
		}
		if code == WarnUnknownRelationKind {
			break
		}
	}

	kindPath := path
	kindPath.Kind = section.Kind
	c.warn(code, kindPath, "unknown record kind; collection skipped")
}
