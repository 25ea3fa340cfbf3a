package expand

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/rvexpand/internal/token"
)

func TestExtendedInstructionQueries(t *testing.T) {
	ins := New("li t1, -100", "lui RG1, VH2\naddi RG1, RG1, VL2",
		"Load Immediate")

	assert.Equal(t, "li", ins.Mnemonic())
	assert.Equal(t, "li t1, -100", ins.Example())
	assert.Equal(t, "Load Immediate", ins.Description())
	assert.Equal(t, 2, ins.OperandCount())

	assert.Equal(t, 8, ins.Length())
	assert.Equal(t, 0, ins.CompactLength())
	assert.False(t, ins.HasCompactTranslation())

	lines := ins.TemplateLines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "lui RG1, VH2", lines[0])
	assert.Equal(t, "addi RG1, RG1, VL2", lines[1])
	assert.True(t, ins.CompactTemplateLines() == nil)
}

func TestExtendedInstructionCompactTranslation(t *testing.T) {
	ins := NewWithCompact("la t1, label",
		"auipc RG1, PCH2\naddi RG1, RG1, PCL2",
		"addi RG1, x0, LL2",
		"Load Address")

	assert.True(t, ins.HasCompactTranslation())
	assert.Equal(t, 8, ins.Length())
	assert.Equal(t, 4, ins.CompactLength())

	lines := ins.CompactTemplateLines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "addi RG1, x0, LL2", lines[0])
}

func TestExtendedInstructionNoTranslation(t *testing.T) {
	ins := New("halt", "", "not expandable")

	assert.Equal(t, 0, ins.Length())
	assert.True(t, ins.TemplateLines() == nil)
}

// Parentheses count as operand positions, commas do not, matching the
// numbering the translation recipes are written against.
func TestExtendedInstructionOperandCount(t *testing.T) {
	tests := []struct {
		example string
		count   int
	}{
		{"nop", 0},
		{"jr t1", 1},
		{"sw t1, label, t2", 3},
		{"lw t1, 8(t2)", 5},
	}

	for _, tt := range tests {
		t.Run(tt.example, func(t *testing.T) {
			ins := New(tt.example, "nop", "")
			assert.Equal(t, tt.count, ins.OperandCount())
		})
	}
}

func TestExpand(t *testing.T) {
	ins := New("li t1, -100", "lui RG1, VH2\naddi RG1, RG1, VL2",
		"Load Immediate")
	tokens := token.Scan("li t1, 100000")

	result := ins.Expand(tokens, Context{})

	assert.Equal(t, "lui t1, 24\naddi t1, t1, 1696", strings.Join(result.Statements, "\n"))
	assert.Equal(t, 8, result.Length())
}

func TestExpandCompact(t *testing.T) {
	ins := NewWithCompact("la t1, label",
		"auipc RG1, PCH2\naddi RG1, RG1, PCL2",
		"addi RG1, x0, LL2",
		"Load Address")
	tokens := token.Scan("la t0, 1024")

	result := ins.ExpandCompact(tokens, Context{})

	assert.Equal(t, "addi t0, x0, 1024", strings.Join(result.Statements, "\n"))
	assert.Equal(t, 4, result.Length())
}
