// Package compctx models one compilation's context object: the pair of
// arenas spec.md §9 describes (a permanent arena for interned types and
// symbols that outlive the compile, and a scratch arena for pass-local
// bookkeeping that is dropped once its pass finishes), plus the
// compilation's identity. Go's garbage collector makes an explicit
// bump-allocator arena unnecessary, so both "arenas" are modeled as
// plain maps/slices owned by this struct — the permanent one is
// returned to callers, the scratch one is reset between passes.
package compctx

import (
	"github.com/google/uuid"

	"github.com/velalang/vela/internal/types"
)

// Context carries the state one call to Analyze threads through all
// seven passes.
type Context struct {
	ID uuid.UUID

	// Permanent arena: interned types, keyed by their structural string
	// form, survive for the lifetime of the Context and are handed back
	// to the caller in the typed module.
	internedTypes map[string]types.Type

	// Scratch arena: per-pass temporaries, cleared by ResetScratch
	// between passes so one pass's bookkeeping never leaks into the
	// next pass's.
	scratch map[string]interface{}
}

// New creates a fresh compilation context with a random identity.
func New() *Context {
	return &Context{
		ID:            uuid.New(),
		internedTypes: make(map[string]types.Type),
		scratch:       make(map[string]interface{}),
	}
}

// Intern returns the canonical handle for t, registering it on first
// sight. Two structurally equal types always return the same pointer
// after passing through Intern, which is what lets later passes use
// `==` instead of types.Equal.
func (c *Context) Intern(t types.Type) types.Type {
	key := t.String()
	if existing, ok := c.internedTypes[key]; ok {
		return existing
	}
	c.internedTypes[key] = t
	return t
}

// ScratchSet stashes a pass-local value under key.
func (c *Context) ScratchSet(key string, v interface{}) {
	c.scratch[key] = v
}

// ScratchGet retrieves a pass-local value stashed under key.
func (c *Context) ScratchGet(key string) (interface{}, bool) {
	v, ok := c.scratch[key]
	return v, ok
}

// ResetScratch drops every scratch-arena entry, called between passes
// per spec.md §9's two-arena model.
func (c *Context) ResetScratch() {
	c.scratch = make(map[string]interface{})
}

// InternedCount reports how many distinct types have been interned,
// surfaced for diagnostics/telemetry.
func (c *Context) InternedCount() int {
	return len(c.internedTypes)
}
