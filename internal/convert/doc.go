// Package convert implements the PROV-JSON to PROV-JSONLD conversion
// engine: prefix resolution, attribute normalization, element and relation
// mapping, and recursive bundle flattening into nested named graphs.
//
// The engine is a pure, synchronous, single-pass transformation. Nothing
// persists across calls and there is no shared mutable state; multiple
// conversions can run independently.
//
// Recoverable conditions (malformed attribute values, unknown record
// kinds) accumulate into the Result's warning list. Fatal conditions
// (unresolvable prefixes) short-circuit conversion with a single terminal
// error identifying the offending record.
package convert
