package expand

import (
	"strings"

	"github.com/retroenv/rvexpand/internal/token"
)

// instructionSize is the size in bytes of one basic instruction.
const instructionSize = 4

// ExtendedInstruction is the immutable definition of one extended (pseudo)
// instruction: its example form, description and translation recipes.
// Definitions are created once at instruction table build time and are safe
// for concurrent use afterwards.
type ExtendedInstruction struct {
	mnemonic      string
	example       string
	description   string
	exampleTokens token.List

	translation        []templateLine
	compactTranslation []templateLine
}

// New creates an extended instruction definition. The mnemonic is the first
// field of the example form. An empty translation marks the instruction as
// offering no expansion.
func New(example, translation, description string) *ExtendedInstruction {
	return &ExtendedInstruction{
		mnemonic:      extractMnemonic(example),
		example:       example,
		description:   description,
		exampleTokens: token.Scan(example),
		translation:   buildTranslationList(translation),
	}
}

// NewWithCompact creates an extended instruction definition that carries an
// alternative translation for the compact memory configuration, which lets
// code generation assume that data label addresses fit the 12-bit immediate
// of a single basic instruction.
func NewWithCompact(example, translation, compactTranslation, description string) *ExtendedInstruction {
	ins := New(example, translation, description)
	ins.compactTranslation = buildTranslationList(compactTranslation)
	return ins
}

func extractMnemonic(example string) string {
	fields := strings.Fields(example)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Mnemonic returns the instruction mnemonic.
func (e *ExtendedInstruction) Mnemonic() string {
	return e.mnemonic
}

// Example returns an example use of the instruction.
func (e *ExtendedInstruction) Example() string {
	return e.example
}

// Description returns the human readable instruction description.
func (e *ExtendedInstruction) Description() string {
	return e.description
}

// OperandCount returns the number of operand tokens in the example form,
// counting parentheses as the recipes do.
func (e *ExtendedInstruction) OperandCount() int {
	if len(e.exampleTokens) == 0 {
		return 0
	}
	return len(e.exampleTokens) - 1
}

// Length returns the size in bytes of the instruction's expansion under the
// default translation, 0 if no translation is defined.
func (e *ExtendedInstruction) Length() int {
	return instructionSize * len(e.translation)
}

// CompactLength returns the size in bytes of the instruction's expansion
// under the compact translation, 0 if no compact translation is defined.
func (e *ExtendedInstruction) CompactLength() int {
	return instructionSize * len(e.compactTranslation)
}

// HasCompactTranslation returns true if the instruction carries an
// alternative translation for the compact memory configuration.
func (e *ExtendedInstruction) HasCompactTranslation() bool {
	return e.compactTranslation != nil
}

// TemplateLines returns the template lines of the default translation,
// nil if no translation is defined.
func (e *ExtendedInstruction) TemplateLines() []string {
	return templateStrings(e.translation)
}

// CompactTemplateLines returns the template lines of the compact
// translation, nil if no compact translation is defined.
func (e *ExtendedInstruction) CompactTemplateLines() []string {
	return templateStrings(e.compactTranslation)
}

// Result is the outcome of expanding one extended instruction statement:
// the ordered basic instruction statements, one per template line.
type Result struct {
	Statements []string
}

// Length returns the size in bytes that the expansion occupies.
func (r Result) Length() int {
	return instructionSize * len(r.Statements)
}

// Expand applies every line of the default translation in order, producing
// the basic instruction statements for one extended instruction statement.
func (e *ExtendedInstruction) Expand(tokens token.List, ctx Context) Result {
	return expandTranslation(e.translation, tokens, ctx)
}

// ExpandCompact is Expand for the compact translation.
func (e *ExtendedInstruction) ExpandCompact(tokens token.List, ctx Context) Result {
	return expandTranslation(e.compactTranslation, tokens, ctx)
}

func expandTranslation(translation []templateLine, tokens token.List, ctx Context) Result {
	statements := make([]string, 0, len(translation))
	for _, line := range translation {
		statements = append(statements, line.render(tokens, ctx))
	}
	return Result{Statements: statements}
}

func templateStrings(translation []templateLine) []string {
	if translation == nil {
		return nil
	}
	lines := make([]string, len(translation))
	for i, line := range translation {
		lines[i] = line.raw
	}
	return lines
}
