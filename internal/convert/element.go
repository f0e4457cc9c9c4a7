package convert

import (
	"strings"

	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/vocab"
)

// Activity lifespan attributes rename to their JSON-LD short keys.
const (
	attrStartTime = "prov:startTime"
	attrEndTime   = "prov:endTime"
)

// mapElement converts one entity/activity/agent record into a JSON-LD
// node object: @type fixed by kind, @id the input qualified name
// verbatim, attributes normalized in declaration order.
func (c *converter) mapElement(sc scope, kind string, rec prov.Record, path RecordPath) (*jsonld.Object, error) {
	path.Kind = kind
	path.ID = rec.ID

	if err := sc.resolve(rec.ID, path); err != nil {
		return nil, err
	}

	obj := jsonld.NewObject().
		Set("@type", vocab.ElementTypes[kind]).
		Set("@id", rec.ID)

	for _, attr := range rec.Attrs {
		fieldPath := path
		fieldPath.Field = attr.Key

		if kind == vocab.KindActivity && (attr.Key == attrStartTime || attr.Key == attrEndTime) {
			val, err := c.normalizeValue(sc, attr.Value, fieldPath)
			if err != nil {
				return nil, err
			}
			obj.Set(strings.TrimPrefix(attr.Key, "prov:"), val)
			continue
		}

		if err := c.setAttribute(sc, obj, attr, fieldPath); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// setAttribute emits one generic attribute: the key must be a qualified
// name resolving in the active scope; the value runs through the
// normalizer. Unqualified keys are skipped with a warning.
func (c *converter) setAttribute(sc scope, obj *jsonld.Object, attr prov.Attr, path RecordPath) error {
	if _, _, ok := prov.SplitQName(attr.Key); !ok {
		c.warn(WarnMalformedAttribute, path, "attribute key is not a qualified name; skipped")
		return nil
	}
	if err := sc.resolve(attr.Key, path); err != nil {
		return err
	}

	val, err := c.normalizeValue(sc, attr.Value, path)
	if err != nil {
		return err
	}
	obj.Set(attr.Key, val)
	return nil
}
