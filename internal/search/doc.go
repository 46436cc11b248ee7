// Package search builds and evaluates location filters for capacity market
// component queries. A Filter is a disjunction of field conditions that can
// compile to a SQL WHERE fragment or run directly against in-memory records.
package search
