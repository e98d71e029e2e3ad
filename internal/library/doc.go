// Package library persists reconciled items in a SQLite database.
//
// The store is the system of record for metadata the matcher has already
// confirmed: items are grouped by release so an album can be re-tagged
// later without rescanning files. A file lock next to the database keeps
// concurrent cadenza processes from writing over each other.
package library
