// Package cimsparql composes SPARQL queries against CIM models stored in an
// RDF triple store and returns the results as typed, columnar tables.
//
// A Model is connected to one store. Connection discovers the store's
// namespace bindings, and the first query resolves the column types of the
// whole query catalog from the store's ontology in a single round-trip.
// Named operations such as ACLines and SynchronousMachines expand catalog
// templates with the configured region and rate, optionally federate the
// equipment-profile patterns to a separately hosted graph, execute, and
// coerce every binding to its resolved semantic type.
//
//	cfg := sparql.DefaultServiceConfig()
//	client := sparql.NewClient(cfg)
//	model, err := cimsparql.Connect(ctx, client, cimsparql.ModelConfig{Region: "NO."}, nil)
//	if err != nil { ... }
//	lines, err := model.ACLines(ctx)
package cimsparql
