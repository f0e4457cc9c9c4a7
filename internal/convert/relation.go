package convert

import (
	"github.com/google/uuid"

	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/vocab"
)

// blankIDNamespace is the fixed UUID namespace for synthesized relation
// identifiers, derived from the canonical context URL so the scheme is
// stable across builds.
var blankIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(vocab.ContextURL))

// mapRelation converts one relation record into a JSON-LD link object:
// @type from the dispatch table, role keys renamed to their short forms
// in table order, remaining attributes normalized in declaration order.
func (c *converter) mapRelation(sc scope, kind string, rec prov.Record, path RecordPath) (*jsonld.Object, error) {
	rel := vocab.Relations[kind]

	id := rec.ID
	if id == "" {
		id = SynthesizeID(kind, rec)
	}

	path.Kind = kind
	path.ID = id

	if err := sc.resolve(id, path); err != nil {
		return nil, err
	}

	obj := jsonld.NewObject().
		Set("@type", rel.Type).
		Set("@id", id)

	// Roles first, in dispatch-table order.
	for _, roleKey := range rel.RoleOrder {
		raw, ok := rec.Get(roleKey)
		if !ok {
			continue
		}
		fieldPath := path
		fieldPath.Field = roleKey

		short := rel.Roles[roleKey]
		if vocab.LiteralRoles[roleKey] {
			val, err := c.normalizeValue(sc, raw, fieldPath)
			if err != nil {
				return nil, err
			}
			obj.Set(short, val)
			continue
		}

		if ref, isString := raw.(string); isString {
			if err := sc.resolve(ref, fieldPath); err != nil {
				return nil, err
			}
			obj.Set(short, ref)
			continue
		}

		// A list of strings is a reference list (membership relations
		// take several entities in one record); each member resolves.
		if refs, ok := referenceList(raw); ok {
			for _, ref := range refs {
				if err := sc.resolve(ref, fieldPath); err != nil {
					return nil, err
				}
			}
			obj.Set(short, raw)
			continue
		}

		// The role interpretation wins over a literal reading of the key;
		// a non-string value suggests the record meant a literal attribute.
		c.warn(WarnRoleShadowed, fieldPath, "reserved role key carries a non-reference value; role interpretation kept")
		val, err := c.normalizeValue(sc, raw, fieldPath)
		if err != nil {
			return nil, err
		}
		obj.Set(short, val)
	}

	// Then everything that is not a role, in declaration order.
	for _, attr := range rec.Attrs {
		if _, isRole := rel.Roles[attr.Key]; isRole {
			continue
		}
		fieldPath := path
		fieldPath.Field = attr.Key
		if err := c.setAttribute(sc, obj, attr, fieldPath); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// referenceList reports whether a role value is a non-empty array of
// qualified-name strings.
func referenceList(raw any) ([]string, bool) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	refs := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		refs = append(refs, s)
	}
	return refs, true
}

// SynthesizeID derives a deterministic blank identifier for a relation
// record whose input supplies none. The identifier is content-addressed:
// a v5 UUID over the record's kind and its attributes in declaration
// order, so the same record always yields the same identifier and
// distinct records collide only if they are byte-identical.
func SynthesizeID(kind string, rec prov.Record) string {
	obj := jsonld.NewObject()
	for _, attr := range rec.Attrs {
		obj.Set(attr.Key, attr.Value)
	}

	payload, err := jsonld.Marshal(obj)
	if err != nil {
		// Attribute values are decoder-produced JSON values; the encoder
		// accepts all of them. Keep a stable fallback anyway.
		payload = []byte(kind)
	}

	name := make([]byte, 0, len(kind)+1+len(payload))
	name = append(name, kind...)
	name = append(name, '\n')
	name = append(name, payload...)

	return "_:" + kind + "-" + uuid.NewSHA1(blankIDNamespace, name).String()
}
