package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RecordPath locates a record (and optionally a field) in the input
// document, for error and warning reporting.
type RecordPath struct {
	// Bundle is the enclosing bundle identifier, empty at the top level.
	Bundle string

	// Kind is the record collection kind ("entity", "wasGeneratedBy", ...).
	Kind string

	// ID is the record identifier.
	ID string

	// Field is the attribute or role key, when the condition is local to
	// one field.
	Field string
}

// String renders the path in a compact human-readable form.
func (p RecordPath) String() string {
	var parts []string
	if p.Bundle != "" {
		parts = append(parts, "bundle "+p.Bundle)
	}
	if p.Kind != "" {
		if p.ID != "" {
			parts = append(parts, p.Kind+" "+p.ID)
		} else {
			parts = append(parts, p.Kind)
		}
	}
	if p.Field != "" {
		parts = append(parts, "field "+p.Field)
	}
	if len(parts) == 0 {
		return "document"
	}
	return strings.Join(parts, " > ")
}

// PrefixError reports a qualified name whose prefix is absent from the
// active prefix table. Fatal: an unresolvable prefix makes the identifier
// ambiguous, so conversion aborts.
type PrefixError struct {
	// Path locates the record carrying the name.
	Path RecordPath

	// Name is the full qualified name.
	Name string

	// Prefix is the unresolved prefix.
	Prefix string
}

// Error implements the error interface.
func (e *PrefixError) Error() string {
	return fmt.Sprintf("unresolved prefix %q in %q (%s)", e.Prefix, e.Name, e.Path)
}

// IsPrefixError reports whether err is (or wraps) a PrefixError.
func IsPrefixError(err error) bool {
	var pe *PrefixError
	return errors.As(err, &pe)
}

// Warning codes for recoverable conditions.
const (
	// WarnMalformedAttribute marks a typed-literal or language-tagged
	// value missing its required sub-field, or an attribute key that is
	// not a qualified name. The attribute degrades to a best-effort
	// scalar or is skipped.
	WarnMalformedAttribute = "MALFORMED_ATTRIBUTE"

	// WarnUnknownElementKind marks a record collection whose kind is not
	// in the element vocabulary. The collection is skipped.
	WarnUnknownElementKind = "UNKNOWN_ELEMENT_KIND"

	// WarnUnknownRelationKind marks a record collection whose kind is not
	// in the 14-kind relation vocabulary. The collection is skipped.
	WarnUnknownRelationKind = "UNKNOWN_RELATION_KIND"

	// WarnRoleShadowed marks a reserved role key whose value shape
	// suggests a literal attribute was intended. The role interpretation
	// wins.
	WarnRoleShadowed = "ROLE_KEY_SHADOWED"

	// WarnDuplicateID marks a record whose identifier already names a
	// node or link in the same graph scope. The first declaration wins;
	// the duplicate is skipped to keep @id unique within each @graph.
	WarnDuplicateID = "DUPLICATE_ID"
)

// Warning is one recoverable condition recorded during conversion.
type Warning struct {
	Code    string
	Path    RecordPath
	Message string
}

// String renders the warning for human-readable output.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Code, w.Message, w.Path)
}

// MarshalJSON flattens the path into a single string for CLI output.
func (w Warning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    string `json:"code"`
		Path    string `json:"path"`
		Message string `json:"message"`
	}{w.Code, w.Path.String(), w.Message})
}
