// Package ingest materializes CSV and Excel files into in-memory tables.
// It owns the single column-kind inference pass: downstream cleaning
// stages dispatch on the kind tag attached here and never re-inspect raw
// values.
package ingest
