// Package ledger is the authoritative persistent store behind the
// fulfillment desk: product master data, sales history, lot tracking and
// the customer order book, backed by SQLite.
//
// The engine treats the ledger as an external collaborator. In-memory
// structures are populated from it at startup and reconciled against it
// on the read path; the ledger record itself is never deleted by the
// engine.
package ledger
