package expand

import (
	"strconv"
	"strings"

	"github.com/retroenv/rvexpand/internal/token"
)

// SymbolResolver recovers the textual label for a program address. It is
// the reverse lookup view of the assembler's symbol table and is treated as
// a read-only snapshot for the duration of one expansion call.
type SymbolResolver interface {
	// NameForAddress returns the label defined at the given address.
	NameForAddress(address uint32) (string, bool)
}

// Context carries the per-expansion inputs: the current program counter and
// the symbol table view. A fresh context is supplied per call and never
// retained.
type Context struct {
	PC      int32
	Symbols SymbolResolver
}

// Substitute renders a single template line against the statement tokens,
// producing one basic instruction statement. The statement is assumed to
// have passed operand verification and label-to-address resolution already.
//
// Template markers, where n is the 1-based operand position in the source
// statement (the mnemonic is position 0, parentheses count but commas
// don't):
//
//	RGn   raw textual value of operand n (register name or literal)
//	LLn   low 12 bits of operand n's value, sign-extended
//	LHn   high 20 bits of operand n's value, sign-corrected
//	PCLn  like LLn but relative to the program counter
//	PCHn  like LHn but relative to the program counter
//	VLn   alias of LLn (value context rather than address context)
//	VHn   alias of LHn
//	LAB   textual label for the address held in the final operand
//
// Register and split markers substitute every occurrence of their
// (family, position) pair. LAB substitutes only its first occurrence: a
// statement can reference at most one label, and a label whose name itself
// contains "LAB" must not be re-matched. A placeholder whose operand cannot
// serve it renders as its original marker text.
func Substitute(template string, tokens token.List, ctx Context) string {
	return parseTemplateLine(template).render(tokens, ctx)
}

func (l templateLine) render(tokens token.List, ctx Context) string {
	var sb strings.Builder
	for _, seg := range l.segments {
		if seg.literal {
			sb.WriteString(seg.text)
			continue
		}
		sb.WriteString(seg.render(tokens, ctx))
	}
	return sb.String()
}

func (s segment) render(tokens token.List, ctx Context) string {
	if s.kind == placeholderLabel {
		return s.renderLabel(tokens, ctx)
	}

	if s.position < 1 || s.position >= len(tokens) {
		return s.text
	}
	operand := tokens[s.position].Value

	if s.kind == placeholderRegister {
		return operand
	}

	value, ok := parseInt32(operand)
	if !ok {
		// Non-numeric operand at a numeric placeholder: leave the marker in
		// place, the encoder reports the malformed statement.
		return s.text
	}

	switch s.kind {
	case placeholderLow:
		return formatInt32(Low(value))
	case placeholderHigh:
		return formatInt32(High(value))
	case placeholderPCLow:
		return formatInt32(PCRelativeLow(value, ctx.PC))
	case placeholderPCHigh:
		return formatInt32(PCRelativeHigh(value, ctx.PC))
	default:
		return s.text
	}
}

// renderLabel recovers the textual label for the last operand, which holds
// an address at this point: the symbol resolution pass rewrote the label
// operand before expansion, and the downstream statement parser needs the
// name back.
func (s segment) renderLabel(tokens token.List, ctx Context) string {
	if len(tokens) < 2 || ctx.Symbols == nil {
		return s.text
	}
	address, ok := parseInt32(tokens[len(tokens)-1].Value)
	if !ok {
		return s.text
	}
	name, ok := ctx.Symbols.NameForAddress(uint32(address))
	if !ok {
		// An address without a symbol cannot normally occur since the
		// address came out of the symbol table in the first place.
		return s.text
	}
	return name
}

func formatInt32(value int32) string {
	return strconv.FormatInt(int64(value), 10)
}

// parseInt32 accepts the operand notations the upstream passes produce:
// signed decimal and prefixed hex/octal/binary, where unsigned notations up
// to 32 bits wrap into the signed range, so 0xFFFFFFFF parses as -1.
func parseInt32(s string) (int32, bool) {
	if value, err := strconv.ParseInt(s, 0, 32); err == nil {
		return int32(value), true
	}
	if value, err := strconv.ParseUint(s, 0, 32); err == nil {
		return int32(value), true
	}
	return 0, false
}
