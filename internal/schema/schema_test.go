package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", `{}`},
		{"elements_and_relations", `{
			"prefix": {"ex": "http://example.org/"},
			"entity": {"ex:e1": {"ex:weight": {"$": "12.5", "type": "xsd:float"}}},
			"activity": {"ex:a1": {}},
			"wasGeneratedBy": {"_:g1": {"prov:entity": "ex:e1", "prov:activity": "ex:a1"}}
		}`},
		{"bundle", `{"bundle": {"ex:b1": {"entity": {"ex:e2": {}}}}}`},
		{"unknown_kind_tolerated", `{"wasSomethingElse": {"_:x": {"prov:entity": "ex:e1"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(tt.name+".json", []byte(tt.input))
			assert.Empty(t, violations)
		})
	}
}

func TestValidateRejectsShapeViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"prefix_value_not_string", `{"prefix": {"ex": 42}}`},
		{"entity_collection_not_object", `{"entity": "nope"}`},
		{"record_body_not_object", `{"entity": {"ex:e1": 7}}`},
		{"relation_body_not_object", `{"used": {"_:u1": ["ex:e1"]}}`},
		{"bundle_not_object", `{"bundle": {"ex:b1": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(tt.name+".json", []byte(tt.input))
			require.NotEmpty(t, violations)
			assert.NotEmpty(t, violations[0].Message)
		})
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	violations := Validate("bad.json", []byte(`{"entity": `))
	require.NotEmpty(t, violations)
}

func TestViolationString(t *testing.T) {
	assert.Equal(t, "entity.ex:e1 (line 3): conflicting values",
		Violation{Path: "entity.ex:e1", Line: 3, Message: "conflicting values"}.String())
	assert.Equal(t, "boom", Violation{Message: "boom"}.String())
}
