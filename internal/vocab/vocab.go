// Package vocab defines the fixed PROV vocabulary tables driving the
// conversion: element and relation kinds, their PROV-O / PROV-extension
// type IRIs, the per-kind role-rename tables, and the canonical context
// URL. The tables are package-level immutable values; all dispatch is
// table-driven rather than conditional.
package vocab

// ContextURL is the canonical PROV-JSONLD remote context. It is always
// the last entry of an emitted @context array and is never fetched.
const ContextURL = "https://openprovenance.org/prov-jsonld/context.json"

// Element kinds in canonical emission order.
const (
	KindEntity   = "entity"
	KindActivity = "activity"
	KindAgent    = "agent"
)

// ElementKinds lists the element kinds in canonical order.
var ElementKinds = []string{KindEntity, KindActivity, KindAgent}

// ElementTypes maps each element kind to its PROV-O type IRI.
var ElementTypes = map[string]string{
	KindEntity:   "prov:Entity",
	KindActivity: "prov:Activity",
	KindAgent:    "prov:Agent",
}

// Relation describes one relation kind: its output type IRI and the
// rename table from qualified PROV role keys to JSON-LD short keys.
type Relation struct {
	// Type is the JSON-LD @type IRI for this relation kind.
	Type string

	// Roles maps qualified role keys to their short output keys.
	Roles map[string]string

	// RoleOrder lists the qualified role keys in emission order.
	RoleOrder []string
}

// RelationKinds lists the 14 relation kinds in canonical emission order.
var RelationKinds = []string{
	"wasGeneratedBy",
	"used",
	"wasInformedBy",
	"wasStartedBy",
	"wasEndedBy",
	"wasInvalidatedBy",
	"wasDerivedFrom",
	"wasAttributedTo",
	"wasAssociatedWith",
	"actedOnBehalfOf",
	"wasInfluencedBy",
	"specializationOf",
	"alternateOf",
	"hadMember",
}

// Relations is the fixed dispatch table for the 14 relation kinds.
var Relations = map[string]Relation{
	"wasGeneratedBy": {
		Type:      "prov:Generation",
		RoleOrder: []string{"prov:entity", "prov:activity", "prov:time"},
		Roles:     map[string]string{"prov:entity": "entity", "prov:activity": "activity", "prov:time": "time"},
	},
	"used": {
		Type:      "prov:Usage",
		RoleOrder: []string{"prov:activity", "prov:entity", "prov:time"},
		Roles:     map[string]string{"prov:activity": "activity", "prov:entity": "entity", "prov:time": "time"},
	},
	"wasInformedBy": {
		Type:      "prov:Communication",
		RoleOrder: []string{"prov:informed", "prov:informant"},
		Roles:     map[string]string{"prov:informed": "informed", "prov:informant": "informant"},
	},
	"wasStartedBy": {
		Type:      "prov:Start",
		RoleOrder: []string{"prov:activity", "prov:trigger", "prov:starter", "prov:time"},
		Roles:     map[string]string{"prov:activity": "activity", "prov:trigger": "trigger", "prov:starter": "starter", "prov:time": "time"},
	},
	"wasEndedBy": {
		Type:      "prov:End",
		RoleOrder: []string{"prov:activity", "prov:trigger", "prov:ender", "prov:time"},
		Roles:     map[string]string{"prov:activity": "activity", "prov:trigger": "trigger", "prov:ender": "ender", "prov:time": "time"},
	},
	"wasInvalidatedBy": {
		Type:      "prov:Invalidation",
		RoleOrder: []string{"prov:entity", "prov:activity", "prov:time"},
		Roles:     map[string]string{"prov:entity": "entity", "prov:activity": "activity", "prov:time": "time"},
	},
	"wasDerivedFrom": {
		Type:      "prov:Derivation",
		RoleOrder: []string{"prov:generatedEntity", "prov:usedEntity", "prov:activity", "prov:generation", "prov:usage"},
		Roles: map[string]string{
			"prov:generatedEntity": "generatedEntity",
			"prov:usedEntity":      "usedEntity",
			"prov:activity":        "activity",
			"prov:generation":      "generation",
			"prov:usage":           "usage",
		},
	},
	"wasAttributedTo": {
		Type:      "prov:Attribution",
		RoleOrder: []string{"prov:entity", "prov:agent"},
		Roles:     map[string]string{"prov:entity": "entity", "prov:agent": "agent"},
	},
	"wasAssociatedWith": {
		Type:      "prov:Association",
		RoleOrder: []string{"prov:activity", "prov:agent", "prov:plan"},
		Roles:     map[string]string{"prov:activity": "activity", "prov:agent": "agent", "prov:plan": "plan"},
	},
	"actedOnBehalfOf": {
		Type:      "prov:Delegation",
		RoleOrder: []string{"prov:delegate", "prov:responsible", "prov:activity"},
		Roles:     map[string]string{"prov:delegate": "delegate", "prov:responsible": "responsible", "prov:activity": "activity"},
	},
	"wasInfluencedBy": {
		Type:      "prov:Influence",
		RoleOrder: []string{"prov:influencee", "prov:influencer"},
		Roles:     map[string]string{"prov:influencee": "influencee", "prov:influencer": "influencer"},
	},
	"specializationOf": {
		Type:      "provext:Specialization",
		RoleOrder: []string{"prov:specificEntity", "prov:generalEntity"},
		Roles:     map[string]string{"prov:specificEntity": "specificEntity", "prov:generalEntity": "generalEntity"},
	},
	"alternateOf": {
		Type:      "provext:Alternate",
		RoleOrder: []string{"prov:alternate1", "prov:alternate2"},
		Roles:     map[string]string{"prov:alternate1": "alternate1", "prov:alternate2": "alternate2"},
	},
	"hadMember": {
		Type:      "provext:Membership",
		RoleOrder: []string{"prov:collection", "prov:entity"},
		Roles:     map[string]string{"prov:collection": "collection", "prov:entity": "entity"},
	},
}

// BuiltinPrefixes are defined by the canonical remote context and resolve
// without a local declaration. "_" marks blank identifiers and is always
// valid.
var BuiltinPrefixes = map[string]bool{
	"_":       true,
	"prov":    true,
	"provext": true,
	"xsd":     true,
	"rdf":     true,
	"rdfs":    true,
	"foaf":    true,
	"dcterms": true,
}

// LiteralRoles marks role keys whose values are literals rather than
// node references; qualified-name resolution does not apply to them.
var LiteralRoles = map[string]bool{
	"prov:time": true,
}

// roleKeys is the union of every qualified role key across all relation
// kinds. Used to classify unknown record kinds.
var roleKeys = func() map[string]bool {
	keys := make(map[string]bool)
	for _, rel := range Relations {
		for k := range rel.Roles {
			keys[k] = true
		}
	}
	return keys
}()

// IsElementKind reports whether kind is one of the three element kinds.
func IsElementKind(kind string) bool {
	_, ok := ElementTypes[kind]
	return ok
}

// IsRelationKind reports whether kind is one of the 14 relation kinds.
func IsRelationKind(kind string) bool {
	_, ok := Relations[kind]
	return ok
}

// IsRoleKey reports whether key is a qualified role key of any relation
// kind.
func IsRoleKey(key string) bool {
	return roleKeys[key]
}
