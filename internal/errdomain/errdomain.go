// Package errdomain maintains the table of declared error domains and
// their variants (spec.md §3.3), normalizing both domain-declaration
// syntaxes — inline variants and a union of standalone error-type names
// — to a single shape so pass 5 never needs to branch on which syntax
// the programmer used.
package errdomain

import "github.com/velalang/vela/internal/types"

// Variant is one named case of an error domain, with the field names of
// its declaration (for a union member, the referenced error type's own
// fields). Pass 1 fills FieldNames only; FieldTypes is left empty, so
// field types are not available to later checks.
type Variant struct {
	Name       string
	FieldNames []string
	FieldTypes []types.Type
}

// Domain is one `domain Name = ...;` declaration, fully normalized:
// regardless of whether it was written as inline variants or as a
// union of previously-declared error types, Variants lists every case
// this domain can produce.
type Domain struct {
	Name     string
	Variants []Variant
}

// HasVariant reports whether name is one of the domain's cases.
func (d *Domain) HasVariant(name string) bool {
	for _, v := range d.Variants {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Variant looks up a case by name.
func (d *Domain) Variant(name string) (Variant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Table holds every error domain declared in a compilation unit, plus
// the standalone `error Name { ... }` declarations a union-of-names
// domain can reference.
type Table struct {
	domains      map[string]*Domain
	standalone   map[string]Variant // `error Name { ... }` declared outside any domain
}

// NewTable creates an empty error-domain table.
func NewTable() *Table {
	return &Table{domains: make(map[string]*Domain), standalone: make(map[string]Variant)}
}

// DeclareStandalone registers a bare `error Name { field: Type, ... }`
// declaration, available to be referenced later from a union-of-names
// domain.
func (t *Table) DeclareStandalone(v Variant) bool {
	if _, exists := t.standalone[v.Name]; exists {
		return false
	}
	t.standalone[v.Name] = v
	return true
}

// LookupStandalone resolves a bare error-type name.
func (t *Table) LookupStandalone(name string) (Variant, bool) {
	v, ok := t.standalone[name]
	return v, ok
}

// DeclareInline registers a domain declared with inline variants:
// `domain Name = { Variant{...}, ... };`.
func (t *Table) DeclareInline(name string, variants []Variant) bool {
	if _, exists := t.domains[name]; exists {
		return false
	}
	t.domains[name] = &Domain{Name: name, Variants: variants}
	return true
}

// DeclareUnion registers a domain declared as a union of previously
// declared standalone error-type names: `domain Name = A | B | C;`. Each
// referenced name must already be registered via DeclareStandalone;
// unresolved names are reported via the returned slice of misses so the
// caller (pass 1) can emit a diagnostic per missing reference.
func (t *Table) DeclareUnion(name string, memberNames []string) (missing []string, ok bool) {
	if _, exists := t.domains[name]; exists {
		return nil, false
	}
	var variants []Variant
	for _, m := range memberNames {
		v, found := t.standalone[m]
		if !found {
			missing = append(missing, m)
			continue
		}
		variants = append(variants, v)
	}
	t.domains[name] = &Domain{Name: name, Variants: variants}
	return missing, true
}

// Lookup resolves a domain by name.
func (t *Table) Lookup(name string) (*Domain, bool) {
	d, ok := t.domains[name]
	return d, ok
}

// IsSubsetDomain reports whether every variant of `inner` also exists
// in `outer`, the rule pass 5 applies when a `check` expression
// propagates a callee's error domain into the caller's, which must be
// at least as wide (spec.md §4.5's domain-subset propagation rule).
func (t *Table) IsSubsetDomain(inner, outer string) bool {
	innerDomain, ok := t.domains[inner]
	if !ok {
		return false
	}
	outerDomain, ok := t.domains[outer]
	if !ok {
		return false
	}
	for _, v := range innerDomain.Variants {
		if !outerDomain.HasVariant(v.Name) {
			return false
		}
	}
	return true
}
