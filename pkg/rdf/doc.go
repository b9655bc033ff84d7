// Package rdf defines the RDF term model and the client-side semantic types
// used when materializing SPARQL results as typed tables.
//
// A SPARQL binding maps a projected variable to a term: an IRI, a plain
// literal, a typed literal carrying an XSD datatype, or nothing at all
// (unbound). Semantic types are the closed set of column types a query result
// can be coerced to on the client.
package rdf
