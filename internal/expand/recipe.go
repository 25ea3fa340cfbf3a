package expand

import (
	"strconv"
	"strings"
)

// placeholderKind identifies a marker family of the recipe micro-language.
type placeholderKind int

const (
	placeholderRegister placeholderKind = iota // RGn: raw operand text
	placeholderLow                             // LLn / VLn: sign-extended low 12 bits
	placeholderHigh                            // LHn / VHn: sign-corrected high 20 bits
	placeholderPCLow                           // PCLn: low 12 bits relative to pc
	placeholderPCHigh                          // PCHn: high 20 bits relative to pc
	placeholderLabel                           // LAB: label name for the final operand address
)

// segment is one piece of a parsed template line: either literal text or a
// placeholder tagged with its marker family and 1-based operand position.
// Placeholders keep their original marker text so that a placeholder that
// cannot be served renders as authored.
type segment struct {
	text     string
	kind     placeholderKind
	position int
	literal  bool
}

// templateLine is one line of a translation recipe, parsed once at
// construction time. Rendering walks the segment list, so substituted
// content is never re-scanned for markers.
type templateLine struct {
	raw      string
	segments []segment
}

// markerDefs binds the marker names of the recipe micro-language to their
// placeholder kinds. Longer names come first so PCL and PCH are never
// misread as LL or LH preceded by literal text.
var markerDefs = []struct {
	name string
	kind placeholderKind
}{
	{"PCL", placeholderPCLow},
	{"PCH", placeholderPCHigh},
	{"LAB", placeholderLabel},
	{"RG", placeholderRegister},
	{"LL", placeholderLow},
	{"LH", placeholderHigh},
	{"VL", placeholderLow},
	{"VH", placeholderHigh},
}

// buildTranslationList splits a recipe string into its ordered template
// lines and parses each line's markers. Expansion order equals line order.
// An empty recipe means the translation is not offered and yields nil,
// distinct from a recipe that yields zero lines.
func buildTranslationList(recipe string) []templateLine {
	if recipe == "" {
		return nil
	}
	lines := make([]templateLine, 0, strings.Count(recipe, "\n")+1)
	for _, line := range strings.Split(recipe, "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, parseTemplateLine(line))
	}
	return lines
}

// parseTemplateLine scans a template line once, splitting it into literal
// and placeholder segments. Positional markers require at least one digit;
// marker-looking text without a position stays literal. Only the first LAB
// marker becomes a placeholder: a statement references at most one label,
// and parsing it once makes the first-occurrence-only substitution rule an
// explicit case instead of an artifact of repeated string searching.
func parseTemplateLine(line string) templateLine {
	parsed := templateLine{raw: line}
	var literal strings.Builder
	labelFound := false

	flush := func() {
		if literal.Len() > 0 {
			parsed.segments = append(parsed.segments, segment{text: literal.String(), literal: true})
			literal.Reset()
		}
	}

	for i := 0; i < len(line); {
		matched := false
		for _, def := range markerDefs {
			if !strings.HasPrefix(line[i:], def.name) {
				continue
			}

			if def.kind == placeholderLabel {
				if labelFound {
					continue
				}
				flush()
				parsed.segments = append(parsed.segments, segment{text: def.name, kind: placeholderLabel})
				labelFound = true
				i += len(def.name)
				matched = true
				break
			}

			start := i + len(def.name)
			end := start
			for end < len(line) && line[end] >= '0' && line[end] <= '9' {
				end++
			}
			if end == start { // no position digits, not a marker
				continue
			}
			position, _ := strconv.Atoi(line[start:end])
			flush()
			parsed.segments = append(parsed.segments, segment{
				text:     line[i:end],
				kind:     def.kind,
				position: position,
			})
			i = end
			matched = true
			break
		}

		if !matched {
			literal.WriteByte(line[i])
			i++
		}
	}
	flush()

	return parsed
}
