// Package jsonld provides the PROV-JSONLD output model: an
// insertion-ordered JSON object and a deterministic encoder.
//
// JSON-LD graphs are semantically unordered, but the serialized form is
// order-sensitive for golden-file tests and diffing, so the encoder
// guarantees byte-stable output: object members serialize in insertion
// order, strings are NFC normalized, and HTML characters are not escaped.
package jsonld
