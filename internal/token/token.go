// Package token defines the statement tokens consumed by the expansion engine.
package token

import (
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Type classifies a statement token.
type Type int

// Token types. The expansion engine itself only reads token values; the
// types serve the surrounding passes.
const (
	Mnemonic Type = iota
	Register
	Integer
	Identifier
	LeftParen
	RightParen
)

// Token is one positional element of an instruction statement.
type Token struct {
	Type  Type
	Value string
}

// List is the ordered token list of one statement. Position 0 is the
// mnemonic, operands follow at positions 1 and up.
type List []Token

// registerNames contains the RV32 register designators: the numeric x0-x31
// names and their ABI aliases.
var registerNames = buildRegisterNames()

func buildRegisterNames() set.Set[string] {
	names := set.New[string]()
	for i := range 32 {
		names.Add("x" + strconv.Itoa(i))
	}
	for _, name := range []string{
		"zero", "ra", "sp", "gp", "tp", "fp",
		"t0", "t1", "t2", "t3", "t4", "t5", "t6",
		"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
		"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	} {
		names.Add(name)
	}
	return names
}

// IsRegister returns true if name designates an RV32 integer register.
func IsRegister(name string) bool {
	return registerNames.Contains(strings.ToLower(name))
}

// Scan splits one statement into its token list. Commas separate operands
// and are dropped, while parentheses are tokens of their own, so memory
// operands like 8(t2) keep the operand position numbering the translation
// recipes are written against. A '#' starts a comment running to the end of
// the statement.
func Scan(statement string) List {
	if idx := strings.IndexByte(statement, '#'); idx >= 0 {
		statement = statement[:idx]
	}

	var tokens List
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, classify(current.String(), len(tokens) == 0))
		current.Reset()
	}

	for _, c := range statement {
		switch c {
		case ' ', '\t', ',':
			flush()

		case '(':
			flush()
			tokens = append(tokens, Token{Type: LeftParen, Value: "("})

		case ')':
			flush()
			tokens = append(tokens, Token{Type: RightParen, Value: ")"})

		default:
			current.WriteRune(c)
		}
	}
	flush()

	return tokens
}

func classify(value string, first bool) Token {
	switch {
	case first:
		return Token{Type: Mnemonic, Value: value}
	case IsRegister(value):
		return Token{Type: Register, Value: value}
	case isInteger(value):
		return Token{Type: Integer, Value: value}
	default:
		return Token{Type: Identifier, Value: value}
	}
}

func isInteger(value string) bool {
	if _, err := strconv.ParseInt(value, 0, 64); err == nil {
		return true
	}
	_, err := strconv.ParseUint(value, 0, 64)
	return err == nil
}
