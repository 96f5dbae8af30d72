// Package tabular parses and encodes the comma-delimited table files a
// parameter library stores.
//
// Decoding reads the first row as the header, then normalizes the table the
// same way on every read: rows whose cells are all missing are dropped, then
// columns whose cells are all missing, then every header is rewritten with
// spaces replaced by underscores and lowercased, so lookups by column name
// are case- and format-insensitive at the source.
//
// Column values are typed by inference: all-integer columns become int,
// numeric columns with fractions or missing cells become float64 (missing
// cells are NaN), all-boolean columns become bool, and everything else stays
// string (missing cells are nil).
package tabular
