// Package columnar builds small in-memory Arrow tables and writes them as
// Parquet files.
//
// Append is the whole pipeline step: it takes the fixed day/passenger
// table, adds a constant "month" column holding the run argument and
// writes output_day_<arg>.parquet.
//
// Tables hold Arrow arrays with reference counts. Every *Table returned by
// this package must be released by the caller.
package columnar
