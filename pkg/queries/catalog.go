// Package queries embeds the catalog of named SPARQL templates and the
// manifest that binds each template to its parameters, result-variable
// predicates and type hints.
package queries

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/statnett/cimsparql/pkg/rdf"
	"github.com/statnett/cimsparql/pkg/template"
)

//go:embed manifest.yaml templates/*.sparql
var content embed.FS

// Entry is one catalog query: the template plus the metadata the model
// needs to type its result columns.
type Entry struct {
	Template    template.Template
	Description string
	// Predicates names, per result variable, the prefixed predicate whose
	// ontology entry determines the column type.
	Predicates map[string]string
	// Types carries explicit semantic types for variables the ontology
	// cannot describe.
	Types map[string]rdf.SemanticType
}

type manifestEntry struct {
	Template    string            `yaml:"template"`
	Description string            `yaml:"description"`
	Required    []string          `yaml:"required"`
	Predicates  map[string]string `yaml:"predicates"`
	Types       map[string]string `yaml:"types"`
}

type manifest struct {
	Queries map[string]manifestEntry `yaml:"queries"`
}

var (
	loadOnce sync.Once
	loaded   map[string]Entry
	loadErr  error
)

func load() (map[string]Entry, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse()
	})
	return loaded, loadErr
}

func parse() (map[string]Entry, error) {
	raw, err := content.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	entries := make(map[string]Entry, len(m.Queries))
	for name, me := range m.Queries {
		text, err := content.ReadFile("templates/" + me.Template)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", name, err)
		}
		types := make(map[string]rdf.SemanticType, len(me.Types))
		for variable, typeName := range me.Types {
			st, err := rdf.ParseSemanticType(typeName)
			if err != nil {
				return nil, fmt.Errorf("query %q, variable %q: %w", name, variable, err)
			}
			types[variable] = st
		}
		entries[name] = Entry{
			Template: template.Template{
				Name:     name,
				Text:     string(text),
				Required: me.Required,
			},
			Description: me.Description,
			Predicates:  me.Predicates,
			Types:       types,
		}
	}
	return entries, nil
}

// Get returns the named catalog entry.
func Get(name string) (Entry, error) {
	entries, err := load()
	if err != nil {
		return Entry{}, err
	}
	e, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown query %q", name)
	}
	return e, nil
}

// Names returns the catalog query names, sorted.
func Names() ([]string, error) {
	entries, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
