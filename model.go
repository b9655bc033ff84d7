package cimsparql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/statnett/cimsparql/pkg/prefix"
	"github.com/statnett/cimsparql/pkg/queries"
	"github.com/statnett/cimsparql/pkg/rdf"
	"github.com/statnett/cimsparql/pkg/sparql"
	"github.com/statnett/cimsparql/pkg/table"
	"github.com/statnett/cimsparql/pkg/template"
	"github.com/statnett/cimsparql/pkg/typemap"
)

// QueryService is the store-facing surface the model needs: query execution,
// namespace discovery and ontology description. *sparql.Client implements it.
type QueryService interface {
	Exec(ctx context.Context, query string) (*rdf.ResultSet, error)
	Namespaces(ctx context.Context) (map[string]string, error)
	DescribePredicateDatatypes(ctx context.Context, predicates []string) (map[string][]string, error)
}

// ModelConfig controls query composition for one connected store.
type ModelConfig struct {
	// Region restricts equipment queries to areas matching this regular
	// expression. Empty means no restriction.
	Region string
	// Rate selects the operational limit set, e.g. "Normal".
	Rate string
	// EquipmentGraph, when set, is the SERVICE reference for a separately
	// hosted equipment profile (repository URL or graph IRI). Empty keeps
	// equipment patterns inline for single-store deployments.
	EquipmentGraph string
	// ShortenIRIs reduces IRI reference columns to their fragment local
	// names in converted tables.
	ShortenIRIs bool
}

// Model composes, executes and types the catalog queries against one
// connected store. Construct with Connect; the zero value is not usable.
type Model struct {
	svc      QueryService
	cfg      ModelConfig
	prefixes *prefix.Registry
	engine   *template.Engine
	resolver *typemap.CachedResolver
	logger   *slog.Logger
}

// Connect builds a model for the store behind svc. It discovers the store's
// namespace bindings immediately; the ontology round-trip is deferred to the
// first query and then reused for the lifetime of the model.
func Connect(ctx context.Context, svc QueryService, cfg ModelConfig, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ns, err := svc.Namespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover namespaces: %w", err)
	}
	// Store bindings win; the stock namespaces fill any gaps so catalog
	// predicates always expand.
	bindings := sparql.DefaultNamespaces()
	for p, iri := range ns {
		bindings[p] = iri
	}
	reg := prefix.FromMap(bindings)

	predicates, err := catalogPredicates(reg)
	if err != nil {
		return nil, err
	}
	return &Model{
		svc:      svc,
		cfg:      cfg,
		prefixes: reg,
		engine:   template.NewEngine(logger),
		resolver: typemap.NewCachedResolver(typemap.NewResolver(svc, logger), predicates),
		logger:   logger,
	}, nil
}

// Prefixes returns the namespace bindings discovered from the store.
func (m *Model) Prefixes() map[string]string {
	return m.prefixes.All()
}

// catalogPredicates expands every predicate the catalog projects to a full
// IRI, deduplicated. Resolving them in one batch keeps the ontology
// round-trip at one per connected store.
func catalogPredicates(reg *prefix.Registry) ([]string, error) {
	names, err := queries.Names()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		entry, err := queries.Get(name)
		if err != nil {
			return nil, err
		}
		for _, prefixed := range entry.Predicates {
			iri, err := expandPrefixed(reg, prefixed)
			if err != nil {
				return nil, fmt.Errorf("query %q: %w", name, err)
			}
			if _, ok := seen[iri]; ok {
				continue
			}
			seen[iri] = struct{}{}
			out = append(out, iri)
		}
	}
	return out, nil
}

// expandPrefixed turns "cim:ACLineSegment.x" into a full predicate IRI.
func expandPrefixed(reg *prefix.Registry, prefixed string) (string, error) {
	p, local, ok := strings.Cut(prefixed, ":")
	if !ok {
		return prefixed, nil
	}
	ns, err := reg.Resolve(p)
	if err != nil {
		return "", err
	}
	return ns + local, nil
}

// Query expands, federates, executes and types one catalog query. Params
// override the model's configured region and rate.
func (m *Model) Query(ctx context.Context, name string, params template.Parameters) (*table.TypedTable, error) {
	entry, err := queries.Get(name)
	if err != nil {
		return nil, err
	}

	merged := template.Parameters{}
	if m.cfg.Region != "" {
		merged["region"] = m.cfg.Region
	}
	if m.cfg.Rate != "" {
		merged["rate"] = m.cfg.Rate
	}
	for k, v := range params {
		merged[k] = v
	}
	if missing := template.MissingRequired(entry.Template, merged); len(missing) > 0 {
		return nil, &template.TemplateError{
			Template:    name,
			Placeholder: missing[0],
			Reason:      "required parameter missing",
		}
	}

	body, err := m.engine.Expand(entry.Template, merged, m.prefixes.All())
	if err != nil {
		return nil, err
	}
	federated, err := template.Federate(body, m.cfg.EquipmentGraph)
	if err != nil {
		return nil, err
	}
	query := template.PrefixHeader(m.prefixes.All()) + federated

	start := time.Now()
	rs, err := m.svc.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	types, err := m.columnTypes(ctx, entry)
	if err != nil {
		return nil, err
	}
	opts := &table.Options{}
	if m.cfg.ShortenIRIs {
		opts.ShortenIRI = table.StripFragment
	}
	tbl, err := table.Convert(rs, types, opts)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("query complete",
		"query", name, "rows", tbl.Len(), "elapsed", time.Since(start))
	return tbl, nil
}

// columnTypes builds the per-variable type assignment for one catalog entry
// from the resolved ontology map plus the entry's explicit hints. Hints win.
func (m *Model) columnTypes(ctx context.Context, entry queries.Entry) (table.ColumnTypes, error) {
	resolved, err := m.resolver.TypeMap(ctx)
	if err != nil {
		return nil, err
	}
	types := make(table.ColumnTypes, len(entry.Predicates)+len(entry.Types))
	for variable, prefixed := range entry.Predicates {
		iri, err := expandPrefixed(m.prefixes, prefixed)
		if err != nil {
			return nil, err
		}
		if st, ok := resolved.Lookup(iri); ok {
			types[variable] = st
		}
	}
	for variable, st := range entry.Types {
		types[variable] = st
	}
	return types, nil
}
