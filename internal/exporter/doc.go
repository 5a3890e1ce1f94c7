// Package exporter writes cleaned tables back to CSV and serializes
// cleaning reports to JSON. Serialization is a boundary concern: nothing
// here inspects or modifies table data beyond rendering it.
package exporter
