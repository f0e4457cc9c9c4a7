// Package prov provides the PROV-JSON input model for prov2ld.
//
// This package contains the document tree types and the order-preserving
// decoder. All other internal packages import prov; prov imports nothing
// internal. This ensures the input model remains the foundational layer
// with no circular dependencies.
//
// Key design constraints:
//   - JSON object key order is preserved everywhere it is semantically
//     load-bearing: prefix tables, record collections, record identifiers,
//     and attribute keys all decode into ordered slices, never Go maps.
//   - Numbers decode as json.Number so lexical forms survive round-trips.
//   - Bundle containment forms a tree: a Document exclusively owns its
//     nested bundle Documents.
package prov
