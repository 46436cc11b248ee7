// Package component defines the capacity market component model and its
// persistence layer. A component is a single asset registered against a
// capacity market unit (CMU); the repository supports SQLite and PostgreSQL
// through the shared database wrapper.
package component
