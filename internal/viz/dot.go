package viz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/provtools/prov2ld/internal/vocab"
)

// endpoints maps each relation type to the role keys providing the DOT
// edge's source and target node identifiers.
var endpoints = map[string][2]string{
	"prov:Generation":        {"activity", "entity"},
	"prov:Usage":             {"activity", "entity"},
	"prov:Communication":     {"informant", "informed"},
	"prov:Start":             {"trigger", "activity"},
	"prov:End":               {"trigger", "activity"},
	"prov:Invalidation":      {"activity", "entity"},
	"prov:Derivation":        {"usedEntity", "generatedEntity"},
	"prov:Attribution":       {"entity", "agent"},
	"prov:Association":       {"activity", "agent"},
	"prov:Delegation":        {"responsible", "delegate"},
	"prov:Influence":         {"influencer", "influencee"},
	"provext:Specialization": {"generalEntity", "specificEntity"},
	"provext:Alternate":      {"alternate1", "alternate2"},
	"provext:Membership":     {"collection", "entity"},
}

// referenceProps are the short role keys whose values reference other
// nodes; they never render as node attribute text.
var referenceProps = func() map[string]bool {
	props := make(map[string]bool)
	for _, rel := range vocab.Relations {
		for _, short := range rel.Roles {
			props[short] = true
		}
	}
	delete(props, "time")
	return props
}()

var labelProps = []string{"prov:label", "rdfs:label", "foaf:name", "dcterms:title", "name", "title"}

// Renderer converts PROV-JSONLD bytes into Graphviz DOT.
type Renderer struct {
	// Styles is the active style sheet; zero value means DefaultStyles.
	Styles StyleSheet

	// Direction is the rankdir, defaulting to "LR".
	Direction string

	// ShowAttributes appends attribute lines to node labels.
	ShowAttributes bool
}

type dotEdge struct {
	source, target string
	style          EdgeStyle
	label          string
}

type builder struct {
	r          *Renderer
	namespaces map[string]string
	lines      []string
	edges      []dotEdge
	clusterSeq int
}

// Render parses a PROV-JSONLD document and returns its DOT rendition.
// Bundles render as clustered subgraphs; relations whose role references
// are absent are skipped.
func (r *Renderer) Render(data []byte) (string, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parse PROV-JSONLD: %w", err)
	}

	if r.Styles.Nodes == nil && r.Styles.Edges == nil {
		r.Styles = DefaultStyles()
	}
	direction := r.Direction
	if direction == "" {
		direction = "LR"
	}

	b := &builder{r: r, namespaces: make(map[string]string)}
	b.extractNamespaces(doc["@context"])

	graph, _ := doc["@graph"].([]any)
	b.writeScope(graph, "  ")

	var sb strings.Builder
	sb.WriteString("digraph PROV {\n")
	fmt.Fprintf(&sb, "  rankdir=%s;\n", direction)
	sb.WriteString("  node [fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\"];\n")
	sb.WriteString("\n")

	for _, line := range b.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, e := range b.edges {
		props := []string{}
		if e.label != "" {
			props = append(props, "label="+dotQuote(e.label))
		}
		props = append(props, "style="+e.style.Style, "dir="+e.style.Dir)
		if e.style.Color != "" {
			props = append(props, fmt.Sprintf("color=%q", e.style.Color))
		}
		if e.style.Arrowhead != "" {
			props = append(props, "arrowhead="+e.style.Arrowhead)
		}
		fmt.Fprintf(&sb, "  %s -> %s [%s];\n", safeID(e.source), safeID(e.target), strings.Join(props, ", "))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func (b *builder) extractNamespaces(ctx any) {
	entries, _ := ctx.([]any)
	for _, entry := range entries {
		if m, ok := entry.(map[string]any); ok {
			for prefix, iri := range m {
				if s, ok := iri.(string); ok {
					b.namespaces[prefix] = s
				}
			}
		}
	}
}

// shorten compacts a full IRI to prefix:local form when a context
// namespace matches, so node identities line up whichever form the
// document used.
func (b *builder) shorten(iri string) string {
	if !strings.Contains(iri, "://") {
		return iri
	}
	for prefix, ns := range b.namespaces {
		if ns != "" && strings.HasPrefix(iri, ns) {
			return prefix + ":" + strings.TrimPrefix(iri, ns)
		}
	}
	return iri
}

// writeScope emits node statements for one graph scope, descending into
// bundles as clusters; edges collect globally and emit after all scopes.
func (b *builder) writeScope(items []any, indent string) {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		typ, _ := item["@type"].(string)

		if nested, ok := item["@graph"].([]any); ok {
			id, _ := item["@id"].(string)
			b.lines = append(b.lines, fmt.Sprintf("%ssubgraph cluster_%d {", indent, b.clusterSeq))
			b.clusterSeq++
			b.lines = append(b.lines,
				fmt.Sprintf("%s  label=%q;", indent, id),
				indent+"  style=dashed;")
			b.writeScope(nested, indent+"  ")
			b.lines = append(b.lines, indent+"}")
			continue
		}

		if _, isNode := b.r.Styles.Nodes[typ]; isNode {
			b.writeNode(item, typ, indent)
			continue
		}

		if strings.HasPrefix(typ, "prov:") || strings.HasPrefix(typ, "provext:") {
			b.collectEdge(item, typ)
		}
	}
}

func (b *builder) writeNode(item map[string]any, typ, indent string) {
	id, _ := item["@id"].(string)
	if id == "" {
		id = fmt.Sprintf("anon_%d", len(b.lines))
	}
	id = b.shorten(id)

	label := b.nodeLabel(item, id)
	if b.r.ShowAttributes {
		if attrs := b.attributeText(item); len(attrs) > 0 {
			if len(attrs) > 5 {
				attrs = attrs[:5]
			}
			label = label + "\\n" + strings.Join(attrs, "\\n")
		}
	}

	style := b.r.Styles.Nodes[typ]
	if style.Shape == "" {
		style.Shape = "ellipse"
	}
	if style.FillColor == "" {
		style.FillColor = "#FFFFFF"
	}

	b.lines = append(b.lines, fmt.Sprintf("%s%s [label=%s, shape=%s, style=filled, fillcolor=%q];",
		indent, safeID(id), dotQuote(label), style.Shape, style.FillColor))
}

func (b *builder) collectEdge(item map[string]any, typ string) {
	roles, ok := endpoints[typ]
	if !ok {
		return
	}
	source, _ := item[roles[0]].(string)
	target, _ := item[roles[1]].(string)
	if source == "" || target == "" {
		return
	}
	source, target = b.shorten(source), b.shorten(target)

	style, ok := b.r.Styles.Edges[typ]
	if !ok {
		style = EdgeStyle{Style: "solid", Dir: "forward"}
	}
	if style.Style == "" {
		style.Style = "solid"
	}
	if style.Dir == "" {
		style.Dir = "forward"
	}

	label := style.Label
	if label == "" {
		if _, local, ok := strings.Cut(typ, ":"); ok {
			label = local
		} else {
			label = typ
		}
	}

	if extra := edgeExtras(item); len(extra) > 0 {
		label = fmt.Sprintf("%s\\n(%s)", label, strings.Join(extra, ", "))
	}

	b.edges = append(b.edges, dotEdge{source: source, target: target, style: style, label: label})
}

// edgeExtras pulls qualifier annotations (role, time) onto the edge label.
func edgeExtras(item map[string]any) []string {
	var extra []string
	if role := firstString(item["prov:role"]); role != "" {
		extra = append(extra, "role:"+role)
	}

	timeVal := item["time"]
	if timeVal == nil {
		timeVal = item["prov:time"]
	}
	if ts, ok := timeVal.(string); ok && strings.Contains(ts, "T") {
		part := strings.SplitN(ts, "T", 2)[1]
		part = strings.SplitN(part, ".", 2)[0]
		extra = append(extra, "@"+part)
	}
	return extra
}

// firstString unwraps the first plain-text value from a string, value
// object, or list of either.
func firstString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		if len(val) > 0 {
			return firstString(val[0])
		}
	case map[string]any:
		return firstString(val["@value"])
	}
	return ""
}

// dotQuote wraps a DOT label, escaping quotes but leaving the \n line
// breaks the label text carries.
func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// nodeLabel picks a display label: prov:label first, then the common
// label vocabularies, then the local part of the identifier.
func (b *builder) nodeLabel(item map[string]any, id string) string {
	for _, prop := range labelProps {
		if label := firstString(item[prop]); label != "" {
			return label
		}
	}
	if id != "" {
		if _, local, ok := strings.Cut(id, ":"); ok {
			return local
		}
		return id
	}
	return "anonymous"
}

// attributeText renders non-reference attributes as "key=value" lines,
// truncating long values for readability.
func (b *builder) attributeText(item map[string]any) []string {
	skip := map[string]bool{"@type": true, "@id": true, "@context": true, "@graph": true}
	for _, prop := range labelProps {
		skip[prop] = true
	}

	var attrs []string
	for _, key := range sortedKeys(item) {
		if skip[key] || referenceProps[key] {
			continue
		}
		value := item[key]

		values, isList := value.([]any)
		if !isList {
			values = []any{value}
		}
		if len(values) > 3 {
			values = values[:3]
		}
		for _, v := range values {
			if text := displayValue(v); text != "" {
				attrs = append(attrs, key+"="+truncate(text, 30))
			}
		}
	}
	return attrs
}

func displayValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return fmt.Sprintf("%v", val)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", val), ".0")
	case map[string]any:
		if inner, ok := val["@value"]; ok {
			return displayValue(inner)
		}
		return ""
	default:
		return ""
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// safeID sanitizes an identifier for DOT, quoting when punctuation
// survives sanitization.
func safeID(id string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "-", "_", ".", "_", "#", "_")
	safe := replacer.Replace(id)

	for _, r := range safe {
		alnum := r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alnum {
			return fmt.Sprintf("%q", id)
		}
	}
	return safe
}
