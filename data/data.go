// Package data holds the catalog's row types and their wire projections.
//
// Each entity maps onto one table (see db/schema_sqlite.sql). Entities carry
// only scalar columns; related rows are referenced by foreign-key value and
// fetched on demand, never embedded. Each entity has a flat DTO that is what
// crosses the HTTP boundary.
package data
