// Package symbols provides the assembler symbol table with reverse lookup
// from addresses to label names.
package symbols

import (
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/rvexpand/internal/expand"
)

// Symbol is a label definition: a name bound to a program address.
type Symbol struct {
	Name    string
	Address uint32
}

// Compile-time check to ensure Table implements expand.SymbolResolver.
var _ expand.SymbolResolver = (*Table)(nil)

// Table maps label names to addresses and addresses back to labels. It is
// filled by the label collection pass and treated as a read-only snapshot
// during expansion.
type Table struct {
	byName    map[string]*Symbol
	byAddress map[uint32]*Symbol
	used      set.Set[string]
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		byName:    map[string]*Symbol{},
		byAddress: map[uint32]*Symbol{},
		used:      set.New[string](),
	}
}

// Define adds a label at the given address. Defining the same name twice is
// an error. When multiple labels share an address, the first one defined
// wins the reverse lookup.
func (t *Table) Define(name string, address uint32) error {
	if _, ok := t.byName[name]; ok {
		return fmt.Errorf("label %s is already defined", name)
	}

	sym := &Symbol{Name: name, Address: address}
	t.byName[name] = sym
	if _, ok := t.byAddress[address]; !ok {
		t.byAddress[address] = sym
	}
	return nil
}

// Address returns the address that the given label is defined at.
func (t *Table) Address(name string) (uint32, bool) {
	sym, ok := t.byName[name]
	if !ok {
		return 0, false
	}
	return sym.Address, true
}

// NameForAddress returns the label defined at the given address.
func (t *Table) NameForAddress(address uint32) (string, bool) {
	sym, ok := t.byAddress[address]
	if !ok {
		return "", false
	}
	return sym.Name, true
}

// Len returns the number of defined labels.
func (t *Table) Len() int {
	return len(t.byName)
}

// SortedByAddress returns all symbols ordered by address.
func (t *Table) SortedByAddress() []*Symbol {
	syms := make([]*Symbol, 0, len(t.byName))
	for _, sym := range t.byName {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Address < syms[j].Address
	})
	return syms
}

// MarkUsed marks a label as referenced by a statement.
func (t *Table) MarkUsed(name string) {
	t.used.Add(name)
}

// IsUsed returns whether a label is referenced by any statement.
func (t *Table) IsUsed(name string) bool {
	return t.used.Contains(name)
}
