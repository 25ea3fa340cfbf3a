package instructionset

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/rvexpand/internal/expand"
	"github.com/retroenv/rvexpand/internal/token"
)

type mapResolver map[uint32]string

func (m mapResolver) NameForAddress(address uint32) (string, bool) {
	name, ok := m[address]
	return name, ok
}

func TestSetGet(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		mnemonic string
		operands int
		found    bool
	}{
		{"li", "li", 2, true},
		{"li with wrong operand count", "li", 3, false},
		{"pseudo jal with label only", "jal", 1, true},
		{"basic jal form is not extended", "jal", 2, false},
		{"ret without operands", "ret", 0, true},
		{"unknown mnemonic", "add", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, ok := s.Get(tt.mnemonic, tt.operands)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.NotNil(t, ins)
				assert.Equal(t, tt.mnemonic, ins.Mnemonic())
			}
		})
	}
}

func TestSetCompactAvailability(t *testing.T) {
	s := New()

	la, ok := s.Get("la", 2)
	assert.True(t, ok)
	assert.True(t, la.HasCompactTranslation())
	assert.Equal(t, 8, la.Length())
	assert.Equal(t, 4, la.CompactLength())

	li, ok := s.Get("li", 2)
	assert.True(t, ok)
	assert.False(t, li.HasCompactTranslation())
	assert.Equal(t, 0, li.CompactLength())
}

func TestSetMnemonics(t *testing.T) {
	s := New()

	mnemonics := s.Mnemonics()
	assert.True(t, sort.StringsAreSorted(mnemonics))
	assert.True(t, slices.Contains(mnemonics, "li"))
	assert.True(t, slices.Contains(mnemonics, "bgtu"))
	assert.True(t, slices.Contains(mnemonics, "tail"))

	assert.True(t, s.Len() >= len(mnemonics))
}

// Branch pseudo instructions with swapped operand order expand through the
// table like any authored recipe.
func TestSetExpandBranch(t *testing.T) {
	s := New()

	ins, ok := s.Get("bgt", 3)
	assert.True(t, ok)

	tokens := token.Scan("bgt t0, t1, 4096")
	ctx := expand.Context{Symbols: mapResolver{4096: "loop"}}

	result := ins.Expand(tokens, ctx)
	assert.Equal(t, "blt t1, t0, loop", strings.Join(result.Statements, "\n"))
}

func TestSetExpandCall(t *testing.T) {
	s := New()

	ins, ok := s.Get("call", 1)
	assert.True(t, ok)

	tokens := token.Scan("call 4198400") // 0x401000
	ctx := expand.Context{PC: 0x400000}

	result := ins.Expand(tokens, ctx)
	assert.Equal(t, "auipc x1, 1\njalr x1, 0(x1)", strings.Join(result.Statements, "\n"))
}
