package prov

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a PROV-JSON document from r, preserving the declaration
// order of every object it contains. Returns a *ParseError when the input
// is not well-formed JSON or violates the PROV-JSON record shape.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	doc, err := decodeDocument(dec, "")
	if err != nil {
		return nil, err
	}

	// Anything after the closing brace is a shape violation.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{
			Message: "trailing content after document",
			Offset:  dec.InputOffset(),
		}
	}

	return doc, nil
}

// DecodeBytes decodes a PROV-JSON document from b.
func DecodeBytes(b []byte) (*Document, error) {
	return Decode(bytes.NewReader(b))
}

func decodeDocument(dec *json.Decoder, path string) (*Document, error) {
	if err := expectDelim(dec, '{', path, "document must be a JSON object"); err != nil {
		return nil, err
	}

	doc := &Document{}
	for dec.More() {
		key, err := decodeKey(dec, path)
		if err != nil {
			return nil, err
		}

		switch key {
		case "prefix":
			table, err := decodePrefix(dec, join(path, key))
			if err != nil {
				return nil, err
			}
			doc.Prefix = table
		case "bundle":
			bundles, err := decodeBundles(dec, join(path, key))
			if err != nil {
				return nil, err
			}
			doc.Bundles = append(doc.Bundles, bundles...)
		default:
			section, err := decodeSection(dec, key, join(path, key))
			if err != nil {
				return nil, err
			}
			doc.Sections = append(doc.Sections, section)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(dec, path, err)
	}
	return doc, nil
}

func decodePrefix(dec *json.Decoder, path string) (*Table, error) {
	if err := expectDelim(dec, '{', path, "prefix must be an object of strings"); err != nil {
		return nil, err
	}

	table := NewTable()
	for dec.More() {
		prefix, err := decodeKey(dec, path)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxError(dec, path, err)
		}
		iri, ok := tok.(string)
		if !ok {
			return nil, &ParseError{
				Path:    join(path, prefix),
				Message: fmt.Sprintf("namespace IRI must be a string, got %s", tokenKind(tok)),
				Offset:  dec.InputOffset(),
			}
		}
		table.Set(prefix, iri)
	}

	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(dec, path, err)
	}
	return table, nil
}

func decodeSection(dec *json.Decoder, kind, path string) (Section, error) {
	section := Section{Kind: kind}

	if err := expectDelim(dec, '{', path, "record collection must be an object"); err != nil {
		return section, err
	}

	for dec.More() {
		id, err := decodeKey(dec, path)
		if err != nil {
			return section, err
		}
		rec, err := decodeRecord(dec, id, join(path, id))
		if err != nil {
			return section, err
		}
		section.Records = append(section.Records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return section, syntaxError(dec, path, err)
	}
	return section, nil
}

func decodeRecord(dec *json.Decoder, id, path string) (Record, error) {
	rec := Record{ID: id}

	if err := expectDelim(dec, '{', path, "record body must be an object"); err != nil {
		return rec, err
	}

	for dec.More() {
		key, err := decodeKey(dec, path)
		if err != nil {
			return rec, err
		}
		val, err := decodeValue(dec, join(path, key))
		if err != nil {
			return rec, err
		}
		rec.Attrs = append(rec.Attrs, Attr{Key: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return rec, syntaxError(dec, path, err)
	}
	return rec, nil
}

func decodeBundles(dec *json.Decoder, path string) ([]Bundle, error) {
	if err := expectDelim(dec, '{', path, "bundle must be an object of documents"); err != nil {
		return nil, err
	}

	var bundles []Bundle
	for dec.More() {
		id, err := decodeKey(dec, path)
		if err != nil {
			return nil, err
		}
		child, err := decodeDocument(dec, join(path, id))
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, Bundle{ID: id, Document: child})
	}

	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(dec, path, err)
	}
	return bundles, nil
}

// decodeValue decodes an arbitrary attribute value. Composite objects
// decode into map[string]any (their key order is not load-bearing),
// arrays into []any, scalars into string/bool/json.Number/nil.
func decodeValue(dec *json.Decoder, path string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(dec, path, err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := make(map[string]any)
		for dec.More() {
			key, err := decodeKey(dec, path)
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(dec, join(path, key))
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, syntaxError(dec, path, err)
		}
		return m, nil
	case '[':
		var arr []any
		for dec.More() {
			val, err := decodeValue(dec, path)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, syntaxError(dec, path, err)
		}
		return arr, nil
	default:
		return nil, &ParseError{
			Path:    path,
			Message: fmt.Sprintf("unexpected delimiter %q", delim.String()),
			Offset:  dec.InputOffset(),
		}
	}
}

// decodeKey reads an object key token.
func decodeKey(dec *json.Decoder, path string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", syntaxError(dec, path, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", &ParseError{
			Path:    path,
			Message: fmt.Sprintf("expected object key, got %s", tokenKind(tok)),
			Offset:  dec.InputOffset(),
		}
	}
	return key, nil
}

// expectDelim consumes the next token and requires it to be the given
// delimiter, reporting msg otherwise.
func expectDelim(dec *json.Decoder, want json.Delim, path, msg string) error {
	tok, err := dec.Token()
	if err != nil {
		return syntaxError(dec, path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return &ParseError{
			Path:    path,
			Message: fmt.Sprintf("%s, got %s", msg, tokenKind(tok)),
			Offset:  dec.InputOffset(),
		}
	}
	return nil
}

func syntaxError(dec *json.Decoder, path string, err error) error {
	if err == io.EOF {
		return &ParseError{
			Path:    path,
			Message: "unexpected end of input",
			Offset:  dec.InputOffset(),
			Err:     err,
		}
	}
	return &ParseError{
		Path:    path,
		Message: "malformed JSON",
		Offset:  dec.InputOffset(),
		Err:     err,
	}
}

func tokenKind(tok json.Token) string {
	switch t := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		if t == '{' {
			return "object"
		}
		return "array"
	case string:
		return fmt.Sprintf("string %q", t)
	case json.Number:
		return fmt.Sprintf("number %s", t)
	case bool:
		return fmt.Sprintf("bool %v", t)
	default:
		return fmt.Sprintf("%T", tok)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
