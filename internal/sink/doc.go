// Package sink writes row batches to PostgreSQL.
//
// PostgresSink creates the destination table from a schema, replacing any
// table of the same name, and appends batches with the COPY protocol.
// Each append is its own unit of work: rows copied before a failure stay
// in the table.
package sink
