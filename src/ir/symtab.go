// symtab.go implements the lexical symbol table with block scopes (component B, spec §3.2/§4.2).
// It is a single flat name -> slot mapping, grounded on the original C++ symbol_table_t
// (original_source/ParaCL/include/symbol_table.h, an unordered_map<string, slot>), plus a stack of
// scopes recording which names each scope inserted, so popping a scope can reclaim exactly those
// slots (spec §3.2's invariant). The same type serves two independent roles in this interpreter,
// each getting its own instance: the builder (src/frontend) uses one during parsing purely to
// validate name visibility (UndefinedVariable at compile time); the evaluator (src/eval) uses a
// second, fresh instance at run time to hold the actual variable values. This split mirrors how a
// resolver and an interpreter share one Environment shape in a tree-walking interpreter (compare
// _examples/archevan-glox/environment.go), while matching spec §4.2's flat-map-plus-scope-stack
// shape more closely than glox's chained-environment shape.

package ir

import (
	"fmt"
	"io"

	"paracl/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Symbol is one entry of the symbol table.
type Symbol struct {
	Name string
	Slot int
}

// SymTab maps variable names to integer storage slots and tracks a stack of block scopes.
type SymTab struct {
	names  map[string]int // name -> slot
	values []int64        // slot -> current value
	scopes util.Stack[[]string]
}

// ---------------------
// ----- functions -----
// ---------------------

// NewSymTab returns an empty symbol table with no active scope. Callers must PushScope before the
// first Declare or PopScope (spec §3.2: "the stack is never empty during evaluation").
func NewSymTab() *SymTab {
	return &SymTab{names: make(map[string]int)}
}

// PushScope opens a new, initially empty scope on top of the stack.
func (s *SymTab) PushScope() {
	s.scopes.Push(nil)
}

// PopScope closes the top scope, removing exactly the names it declared (spec §3.2) and restoring
// any name that scope had reused from an outer declaration — which cannot happen here, since
// Declare is idempotent and never re-declares a name already visible (spec §3.2, §9).
func (s *SymTab) PopScope() {
	declared := s.scopes.Pop()
	for _, name := range declared {
		delete(s.names, name)
	}
}

// Declare returns the slot for name, inserting it with value 0 on the innermost scope if absent.
// Declare is idempotent: re-declaring a name already visible (in any active scope) returns its
// existing slot instead of shadowing it, per the documented choice in spec §9.
func (s *SymTab) Declare(name string) int {
	if slot, ok := s.names[name]; ok {
		return slot
	}
	slot := len(s.values)
	s.values = append(s.values, 0)
	s.names[name] = slot
	top := s.scopes.Pop()
	s.scopes.Push(append(top, name))
	return slot
}

// Lookup returns the slot bound to name and true, or (0, false) if name is not currently visible.
func (s *SymTab) Lookup(name string) (int, bool) {
	slot, ok := s.names[name]
	return slot, ok
}

// Get returns the current value stored in slot.
func (s *SymTab) Get(slot int) int64 { return s.values[slot] }

// Set stores v in slot.
func (s *SymTab) Set(slot int, v int64) { s.values[slot] = v }

// Size returns the number of names currently visible (not the number of slots ever allocated).
func (s *SymTab) Size() int { return len(s.names) }

// Names returns the symbol table's currently visible names, for the debug dump.
func (s *SymTab) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	return names
}

// Dump writes a human-readable listing of the symbol table, grounded on symbol_table_dumper
// (original_source/ParaCL/include/symbol_table.h). It is only wired into the debug side channel
// described in SPEC_FULL.md, never into the normal interpreter pipeline.
func (s *SymTab) Dump(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Symbol table dump:")
	if len(s.names) == 0 {
		_, _ = fmt.Fprintln(w, "[EMPTY]")
		return
	}
	_, _ = fmt.Fprintf(w, "(Size) %d\n(Names)\n", len(s.names))
	for _, name := range s.Names() {
		_, _ = fmt.Fprintf(w, "\t%s\n", name)
	}
}
