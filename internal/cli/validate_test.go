package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsCleanDocument(t *testing.T) {
	input := writeInput(t, sampleProvJSON)

	out, stderr, err := execute(t, nil, "validate", input)
	require.NoError(t, err)
	assert.Contains(t, out, input+": valid")
	assert.Empty(t, stderr)
}

func TestValidateReportsWarnings(t *testing.T) {
	input := writeInput(t, `{
	  "prefix": {"ex": "https://example.org/"},
	  "entity": {"ex:e1": {"ex:note": {"type": "xsd:string"}}}
	}`)

	out, stderr, err := execute(t, nil, "validate", input)
	require.NoError(t, err)
	assert.Contains(t, out, "valid (1 warning(s))")
	assert.Contains(t, stderr, "MALFORMED_ATTRIBUTE")
}

func TestValidateRejectsSchemaViolation(t *testing.T) {
	input := writeInput(t, `{"prefix": {"ex": 42}}`)

	out, _, err := execute(t, nil, "validate", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, input+": invalid")
	assert.Contains(t, out, "[SCHEMA_VIOLATION]")
}

func TestValidateRejectsUnresolvedPrefix(t *testing.T) {
	input := writeInput(t, `{"entity": {"bad:e1": {}}}`)

	out, _, err := execute(t, nil, "validate", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "[PREFIX_RESOLUTION]")
	assert.Contains(t, out, `unresolved prefix "bad"`)
}

func TestValidateJSONEnvelope(t *testing.T) {
	input := writeInput(t, sampleProvJSON)

	out, _, err := execute(t, nil, "--format", "json", "validate", input)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"valid":true`)
}

func TestValidateJSONEnvelopeInvalid(t *testing.T) {
	input := writeInput(t, `{"entity": {"bad:e1": {}}}`)

	out, _, err := execute(t, nil, "--format", "json", "validate", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"valid":false`)
	assert.Contains(t, out, `"PREFIX_RESOLUTION"`)
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := execute(t, nil, "validate", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateFromStdin(t *testing.T) {
	out, _, err := execute(t, strings.NewReader(sampleProvJSON), "validate", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "-: valid")
}
