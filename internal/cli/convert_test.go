package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provtools/prov2ld/internal/journal"
)

const sampleProvJSON = `{
  "prefix": {"ex": "https://example.org/"},
  "entity": {"ex:e1": {}},
  "activity": {"ex:a1": {}},
  "wasGeneratedBy": {"_:gen1": {"prov:entity": "ex:e1", "prov:activity": "ex:a1"}}
}`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFileToFile(t *testing.T) {
	input := writeInput(t, sampleProvJSON)
	output := filepath.Join(t.TempDir(), "doc.jsonld")

	_, stderr, err := execute(t, nil, "convert", input, output)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	got := string(data)
	assert.True(t, strings.HasSuffix(got, "\n"))
	assert.Contains(t, got, `{"@type":"prov:Entity","@id":"ex:e1"}`)
	assert.Contains(t, got, `{"@type":"prov:Generation","@id":"_:gen1","entity":"ex:e1","activity":"ex:a1"}`)
	assert.Contains(t, got, `"https://openprovenance.org/prov-jsonld/context.json"`)
}

func TestConvertStdinToStdout(t *testing.T) {
	out, _, err := execute(t, strings.NewReader(sampleProvJSON), "convert", "-", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"@graph":[`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestConvertIndent(t *testing.T) {
	out, _, err := execute(t, strings.NewReader(sampleProvJSON), "convert", "-", "-", "--indent")
	require.NoError(t, err)
	assert.Contains(t, out, "  \"@context\"")
}

func TestConvertWarningsGoToStderrExitZero(t *testing.T) {
	doc := `{
	  "prefix": {"ex": "https://example.org/"},
	  "entity": {"ex:e1": {"ex:note": {"type": "xsd:string"}}}
	}`

	out, stderr, err := execute(t, strings.NewReader(doc), "convert", "-", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "MALFORMED_ATTRIBUTE")
	// the datatype marker survives; only the literal degrades
	assert.Contains(t, out, `"ex:note":{"@value":"","@type":"xsd:string"}`)
}

func TestConvertUnresolvedPrefixFails(t *testing.T) {
	doc := `{"entity": {"bad:e1": {}}}`

	_, stderr, err := execute(t, strings.NewReader(doc), "convert", "-", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "bad")
}

func TestConvertSchemaViolationFails(t *testing.T) {
	doc := `{"prefix": {"ex": 42}}`

	_, stderr, err := execute(t, strings.NewReader(doc), "convert", "-", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [SCHEMA_VIOLATION]")
}

func TestConvertMissingInputFails(t *testing.T) {
	_, _, err := execute(t, nil, "convert", filepath.Join(t.TempDir(), "nope.json"), "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertJournalRecordsRun(t *testing.T) {
	input := writeInput(t, sampleProvJSON)
	dir := t.TempDir()
	output := filepath.Join(dir, "doc.jsonld")
	dbPath := filepath.Join(dir, "journal.db")

	_, _, err := execute(t, nil, "convert", input, output, "--journal", dbPath)
	require.NoError(t, err)

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	runs, err := j.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, input, runs[0].InputPath)
	assert.Equal(t, output, runs[0].OutputPath)
	assert.Len(t, runs[0].InputSHA256, 64)
	assert.Positive(t, runs[0].OutputBytes)
	assert.Zero(t, runs[0].WarningCount)
}

func TestConvertJSONFormatEnvelope(t *testing.T) {
	input := writeInput(t, sampleProvJSON)
	output := filepath.Join(t.TempDir(), "doc.jsonld")

	out, _, err := execute(t, nil, "--format", "json", "convert", input, output)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"output_bytes"`)
}
