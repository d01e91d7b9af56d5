// Package loader copies a batch source into a destination table.
//
// The first batch fixes the destination schema: the table is created from
// it with no rows, replacing any table of the same name, and then every
// batch, the first included, is appended in source order. A later batch
// whose columns differ from the first stops the load. Nothing is retried
// and nothing is rolled back; batches appended before a failure stay in
// the table.
//
// When an index column is configured, every row is prefixed with its
// zero-based source ordinal, so source order can be recovered from the
// table with ORDER BY.
package loader
