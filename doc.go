// Package datalib resolves symbolic configuration keys into structured data
// records read from a hierarchical on-disk library of reusable engineering
// parameters (vessels, cables, turbines, project and site settings).
//
// Configuration records reference named library items by filename instead of
// inlining data. A Library locates each referenced file through a two-tier
// search (the active root, falling back to an optional default root), decodes
// it by format (YAML document or CSV table), and substitutes the decoded value
// into the record. The key-to-path table fixes where each kind of item lives
// under a root; ResolveAll performs the substitution pass over a whole record.
//
// A Library is safe for concurrent reads. Exports are the only mutation path
// and must be serialized by the caller. Every resolution reads the file fresh;
// nothing is cached.
package datalib
