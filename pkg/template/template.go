// Package template expands parameterized SPARQL templates into concrete
// query text. Templates are trusted, versioned SPARQL with ${name}
// placeholders; the engine performs textual substitution and structural
// federation wrapping at sentinel-marked boundaries. It never parses SPARQL
// grammar.
package template

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// RegionWildcard is substituted for an absent region parameter. Region
// filters are regular expressions, so the wildcard means "no restriction".
// This is the engine's single documented substitution default.
const RegionWildcard = ".*"

var placeholderPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Template is an immutable query template owned by the catalog. Required
// lists the non-prefix parameters the template author declares; region is
// special-cased by Expand and never listed as required.
type Template struct {
	Name     string
	Text     string
	Required []string
}

// Parameters maps placeholder names to replacement text.
type Parameters map[string]string

// TemplateError reports a substitution or federation failure.
type TemplateError struct {
	Template    string
	Placeholder string
	Reason      string
}

func (e *TemplateError) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("template %q: placeholder ${%s}: %s", e.Template, e.Placeholder, e.Reason)
	}
	return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
}

// Is implements errors.Is support for TemplateError.
func (e *TemplateError) Is(target error) bool {
	_, ok := target.(*TemplateError)
	return ok
}

// Placeholders returns the distinct ${name} placeholders in template text,
// sorted. Used by the catalog to validate declared parameters and by tests.
func Placeholders(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Engine expands templates against a prefix snapshot. It is stateless apart
// from its logger and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a template engine. A nil logger falls back to
// slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Expand substitutes every placeholder in the template from params and the
// prefix snapshot. Parameters shadow prefixes. An unresolved placeholder is
// a hard error, with one exception: an absent region substitutes the
// match-all wildcard, logged as an observable event.
func (e *Engine) Expand(tmpl Template, params Parameters, prefixes map[string]string) (string, error) {
	var missing string
	expanded := placeholderPattern.ReplaceAllStringFunc(tmpl.Text, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := params[name]; ok {
			return v
		}
		if v, ok := prefixes[name]; ok {
			return v
		}
		if name == "region" {
			e.logger.Warn("region parameter absent, matching all regions",
				"template", tmpl.Name)
			return RegionWildcard
		}
		if missing == "" {
			missing = name
		}
		return m
	})
	if missing != "" {
		return "", &TemplateError{Template: tmpl.Name, Placeholder: missing, Reason: "no parameter or prefix supplied"}
	}
	return expanded, nil
}

// MissingRequired returns the declared required parameters absent from
// params, for up-front validation before expansion.
func MissingRequired(tmpl Template, params Parameters) []string {
	var missing []string
	for _, name := range tmpl.Required {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// PrefixHeader renders SPARQL PREFIX declarations for every namespace in
// the snapshot, sorted by prefix for reproducible query text.
func PrefixHeader(prefixes map[string]string) string {
	names := make([]string, 0, len(prefixes))
	for p := range prefixes {
		names = append(names, p)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, p := range names {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p, prefixes[p])
	}
	return b.String()
}
