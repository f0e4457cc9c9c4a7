// Package viz renders a PROV-JSONLD document as a Graphviz DOT graph:
// elements become styled nodes, relation link objects become edges
// between the nodes their renamed role keys reference, and bundles
// become clustered subgraphs.
package viz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeStyle describes how one element type renders.
type NodeStyle struct {
	Shape     string `yaml:"shape"`
	FillColor string `yaml:"fillcolor"`
}

// EdgeStyle describes how one relation type renders.
type EdgeStyle struct {
	Label     string `yaml:"label"`
	Style     string `yaml:"style"`
	Dir       string `yaml:"dir"`
	Color     string `yaml:"color,omitempty"`
	Arrowhead string `yaml:"arrowhead,omitempty"`
}

// StyleSheet maps type IRIs to render styles. Zero-value entries fall
// back to neutral defaults at render time.
type StyleSheet struct {
	Nodes map[string]NodeStyle `yaml:"nodes"`
	Edges map[string]EdgeStyle `yaml:"edges"`
}

// DefaultStyles returns the built-in PROV style sheet.
func DefaultStyles() StyleSheet {
	return StyleSheet{
		Nodes: map[string]NodeStyle{
			"prov:Entity":   {Shape: "ellipse", FillColor: "#FFFC87"},
			"prov:Activity": {Shape: "box", FillColor: "#9FB1FC"},
			"prov:Agent":    {Shape: "house", FillColor: "#FDB266"},
		},
		Edges: map[string]EdgeStyle{
			"prov:Generation":         {Label: "wasGeneratedBy", Style: "solid", Dir: "back", Color: "#006400"},
			"prov:Usage":              {Label: "used", Style: "solid", Dir: "forward", Color: "#8b0101"},
			"prov:Communication":      {Label: "wasInformedBy", Style: "solid", Dir: "back"},
			"prov:Start":              {Label: "wasStartedBy", Style: "solid", Dir: "back"},
			"prov:End":                {Label: "wasEndedBy", Style: "solid", Dir: "back"},
			"prov:Invalidation":       {Label: "wasInvalidatedBy", Style: "solid", Dir: "back"},
			"prov:Derivation":         {Label: "wasDerivedFrom", Style: "solid", Dir: "back"},
			"prov:Attribution":        {Label: "wasAttributedTo", Style: "dashed", Dir: "back"},
			"prov:Association":        {Label: "wasAssociatedWith", Style: "solid", Dir: "forward", Color: "#fed37f"},
			"prov:Delegation":         {Label: "actedOnBehalfOf", Style: "dashed", Dir: "back"},
			"prov:Influence":          {Label: "wasInfluencedBy", Style: "dotted", Dir: "back"},
			"provext:Specialization":  {Label: "specializationOf", Style: "solid", Dir: "back", Arrowhead: "onormal"},
			"provext:Alternate":       {Label: "alternateOf", Style: "dashed", Dir: "none"},
			"provext:Membership":      {Label: "hadMember", Style: "dotted", Dir: "forward"},
		},
	}
}

// LoadStyles reads a YAML style sheet and merges it over the defaults:
// present entries replace the default for that type, absent types keep
// theirs.
func LoadStyles(path string) (StyleSheet, error) {
	styles := DefaultStyles()

	data, err := os.ReadFile(path)
	if err != nil {
		return styles, fmt.Errorf("read style sheet: %w", err)
	}

	var overrides StyleSheet
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return styles, fmt.Errorf("parse style sheet: %w", err)
	}

	for typ, style := range overrides.Nodes {
		styles.Nodes[typ] = style
	}
	for typ, style := range overrides.Edges {
		styles.Edges[typ] = style
	}
	return styles, nil
}
