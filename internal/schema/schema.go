// Package schema validates the PROV-JSON record shape ahead of
// conversion, using a CUE schema compiled once per process. Violations
// carry input positions so CLI output can point at the offending line.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed prov.cue
var schemaSrc string

// Violation is one schema violation with its input position.
type Violation struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// String renders the violation for text output.
func (v Violation) String() string {
	switch {
	case v.Path != "" && v.Line > 0:
		return fmt.Sprintf("%s (line %d): %s", v.Path, v.Line, v.Message)
	case v.Path != "":
		return fmt.Sprintf("%s: %s", v.Path, v.Message)
	case v.Line > 0:
		return fmt.Sprintf("line %d: %s", v.Line, v.Message)
	default:
		return v.Message
	}
}

var (
	compileOnce sync.Once
	documentDef cue.Value
)

// document compiles the embedded schema and returns the #Document
// definition. The CUE context is shared; cue.Value is immutable.
func document() cue.Value {
	compileOnce.Do(func() {
		ctx := cuecontext.New()
		documentDef = ctx.CompileString(schemaSrc, cue.Filename("prov.cue")).
			LookupPath(cue.ParsePath("#Document"))
	})
	return documentDef
}

// Validate checks raw PROV-JSON bytes against the record-shape schema.
// filename labels positions in the returned violations. A nil slice
// means the input is well-formed and shape-valid.
func Validate(filename string, data []byte) []Violation {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return toViolations(err)
	}

	schemaVal := document()
	if err := schemaVal.Err(); err != nil {
		return toViolations(err)
	}

	value := schemaVal.Context().BuildExpr(expr)
	if err := value.Err(); err != nil {
		return toViolations(err)
	}

	unified := schemaVal.Unify(value)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return toViolations(err)
	}

	return nil
}

// toViolations flattens a CUE error list into positioned violations.
func toViolations(err error) []Violation {
	var out []Violation
	for _, e := range cueerrors.Errors(err) {
		v := Violation{Message: e.Error()}
		if path := e.Path(); len(path) > 0 {
			v.Path = strings.Join(path, ".")
		}
		if pos := e.Position(); pos.IsValid() {
			v.Line = pos.Line()
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		out = []Violation{{Message: err.Error()}}
	}
	return out
}
