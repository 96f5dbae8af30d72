// Package document parses and encodes the structured-document (YAML) files a
// parameter library stores.
//
// Decoding uses github.com/goccy/go-yaml's parser and walks the AST with a
// restricted constructor: only plain data (mappings, sequences, scalars,
// anchors/aliases and merge keys) is built, and unknown tags are rejected.
// On top of the standard safe parse the constructor applies exactly two
// extensions:
//
//   - Plain scalars written in scientific or abbreviated float notation
//     (1e-3, +1.5E10, .5, 12., 1_000.5, 190:20:30.15, inf, -.Inf, nan) decode
//     as float64 instead of string. Quoted scalars are never reinterpreted.
//   - Sequences tagged !!python/tuple decode as Tuple, an ordered fixed-size
//     value distinguishable from []any by type assertion.
//
// Encoding is the matching safe-subset writer. Tuple marshals itself with the
// !!python/tuple tag, so a value survives an encode/decode round trip with the
// tuple/list distinction intact.
package document
