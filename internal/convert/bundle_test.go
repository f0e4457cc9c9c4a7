package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/vocab"
)

func TestBundleWithOwnPrefixesGetsOwnContext(t *testing.T) {
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:b1": {
			"prefix": {"sub": "http://example.org/sub/"},
			"entity": {"sub:e1": {}}
		}}
	}`)

	graph := graphOf(t, result)
	bundle := graph[0].(*jsonld.Object)

	ctx, ok := bundle.Get("@context")
	require.True(t, ok)
	arr := ctx.([]any)
	require.Len(t, arr, 2)
	assert.Equal(t, `{"sub":"http://example.org/sub/"}`, marshal(t, arr[0]))
	assert.Equal(t, vocab.ContextURL, arr[1])
}

func TestBundleWithoutPrefixesInheritsParentScope(t *testing.T) {
	// "ex" is declared only at the top level; the bundle omits its prefix
	// block, so it resolves against the parent table and emits no
	// @context of its own.
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:b1": {"entity": {"ex:e1": {}}}}
	}`)

	graph := graphOf(t, result)
	bundle := graph[0].(*jsonld.Object)
	assert.False(t, bundle.Has("@context"))

	nested, _ := bundle.Get("@graph")
	assert.Equal(t, `{"@type":"prov:Entity","@id":"ex:e1"}`, marshal(t, nested.([]any)[0]))
}

func TestBundleOwnPrefixesNotMergedWithAncestors(t *testing.T) {
	// A bundle that declares its own table resolves in its own scope;
	// the parent's "ex" is not visible inside.
	doc, err := prov.DecodeBytes([]byte(`{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:b1": {
			"prefix": {"sub": "http://example.org/sub/"},
			"entity": {"ex:e1": {}}
		}}
	}`))
	require.NoError(t, err)

	_, err = Convert(doc)
	require.Error(t, err)
	assert.True(t, IsPrefixError(err))

	var pe *PrefixError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "ex", pe.Prefix)
	assert.Equal(t, "ex:b1", pe.Path.Bundle)
}

func TestSiblingBundlesAreSeparateScopes(t *testing.T) {
	// The same identifier may appear in sibling bundles without conflict.
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {
			"ex:b1": {"entity": {"ex:shared": {}}},
			"ex:b2": {"entity": {"ex:shared": {}}}
		}
	}`)

	graph := graphOf(t, result)
	require.Len(t, graph, 2)

	for i, want := range []string{"ex:b1", "ex:b2"} {
		bundle := graph[i].(*jsonld.Object)
		id, _ := bundle.Get("@id")
		assert.Equal(t, want, id)
		nested, _ := bundle.Get("@graph")
		assert.Len(t, nested.([]any), 1)
	}
}

func TestBundlesFollowTopLevelRecords(t *testing.T) {
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:b1": {"entity": {"ex:e2": {}}}},
		"entity": {"ex:e1": {}}
	}`)

	graph := graphOf(t, result)
	require.Len(t, graph, 2)

	first, _ := graph[0].(*jsonld.Object).Get("@type")
	assert.Equal(t, "prov:Entity", first)
	second, _ := graph[1].(*jsonld.Object).Get("@type")
	assert.Equal(t, "prov:Bundle", second)
}

func TestDeeplyNestedBundles(t *testing.T) {
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:outer": {
			"bundle": {"ex:inner": {
				"entity": {"ex:deep": {}}
			}}
		}}
	}`)

	outer := graphOf(t, result)[0].(*jsonld.Object)
	outerGraph, _ := outer.Get("@graph")
	inner := outerGraph.([]any)[0].(*jsonld.Object)

	id, _ := inner.Get("@id")
	assert.Equal(t, "ex:inner", id)
	innerGraph, _ := inner.Get("@graph")
	assert.Equal(t, `{"@type":"prov:Entity","@id":"ex:deep"}`, marshal(t, innerGraph.([]any)[0]))
}

func TestBundleWarningsCarryBundlePath(t *testing.T) {
	result := mustConvert(t, `{
		"prefix": {"ex": "http://example.org/"},
		"bundle": {"ex:b1": {
			"entity": {"ex:e1": {"ex:w": {"type": "xsd:float"}}}
		}}
	}`)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "ex:b1", result.Warnings[0].Path.Bundle)
	assert.Equal(t, "ex:e1", result.Warnings[0].Path.ID)
}
