// Package processor implements the pseudo-instruction expansion pass over an
// assembly source listing.
package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/rvexpand/internal/expand"
	"github.com/retroenv/rvexpand/internal/instructionset"
	"github.com/retroenv/rvexpand/internal/options"
	"github.com/retroenv/rvexpand/internal/symbols"
	"github.com/retroenv/rvexpand/internal/token"
)

// basicInstructionSize is the size in bytes of one basic instruction
// statement in the output listing.
const basicInstructionSize = 4

// Processor expands every extended instruction of a source listing into its
// basic instruction sequence. Comments and blank lines are dropped, labels
// and basic instructions pass through unchanged.
type Processor struct {
	logger       *log.Logger
	opts         options.Program
	instructions *instructionset.Set
	symbols      *symbols.Table
}

// New creates a new processor.
func New(logger *log.Logger, opts options.Program) *Processor {
	return &Processor{
		logger:       logger,
		opts:         opts,
		instructions: instructionset.New(),
		symbols:      symbols.New(),
	}
}

// sourceLine is one line of the input listing, split into its optional
// label definition and statement.
type sourceLine struct {
	number    int
	label     string
	statement string
}

// Process reads an assembly source listing and writes it back with every
// extended instruction expanded. The first pass assigns statement addresses
// and collects label definitions, the second pass rewrites label operands to
// their addresses and renders the expansions.
func (p *Processor) Process(ctx context.Context, reader io.Reader, writer io.Writer) error {
	lines, err := readLines(reader)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.collectSymbols(lines); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.writeListing(lines, writer); err != nil {
		return err
	}

	p.logUnusedLabels()
	return nil
}

// readLines splits the input into source lines, dropping comments and blank
// lines. A label definition may share a line with a statement.
func readLines(reader io.Reader) ([]sourceLine, error) {
	var lines []sourceLine

	scanner := bufio.NewScanner(reader)
	for number := 1; scanner.Scan(); number++ {
		text := scanner.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		line := sourceLine{number: number, statement: text}
		if label, rest, ok := strings.Cut(text, ":"); ok && !strings.ContainsAny(label, " \t") {
			line.label = label
			line.statement = strings.TrimSpace(rest)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// collectSymbols assigns an address to every statement and defines each
// label at the address of the statement that follows it.
func (p *Processor) collectSymbols(lines []sourceLine) error {
	pc := p.opts.StartAddress

	for _, line := range lines {
		if line.label != "" {
			if err := p.symbols.Define(line.label, pc); err != nil {
				return fmt.Errorf("line %d: %w", line.number, err)
			}
		}
		if line.statement != "" {
			pc += p.statementLength(token.Scan(line.statement))
		}
	}

	p.logger.Debug("Collected labels", log.Int("count", p.symbols.Len()))
	return nil
}

// statementLength returns the size in bytes a statement occupies in the
// expanded listing.
func (p *Processor) statementLength(tokens token.List) uint32 {
	if len(tokens) == 0 {
		return 0
	}
	ins, ok := p.instructions.Get(tokens[0].Value, len(tokens)-1)
	if !ok {
		return basicInstructionSize
	}
	if p.useCompact(ins) {
		return uint32(ins.CompactLength())
	}
	return uint32(ins.Length())
}

func (p *Processor) useCompact(ins *expand.ExtendedInstruction) bool {
	return p.opts.Compact && ins.HasCompactTranslation()
}

// writeListing renders the expanded listing. Labels stay flush left,
// statements are indented with a tab.
func (p *Processor) writeListing(lines []sourceLine, writer io.Writer) error {
	buffered := bufio.NewWriter(writer)
	pc := p.opts.StartAddress

	for _, line := range lines {
		if line.label != "" {
			fmt.Fprintf(buffered, "%s:\n", line.label)
		}
		if line.statement == "" {
			continue
		}

		tokens := token.Scan(line.statement)
		if len(tokens) == 0 {
			continue
		}
		ins, ok := p.instructions.Get(tokens[0].Value, len(tokens)-1)
		if !ok {
			fmt.Fprintf(buffered, "\t%s\n", line.statement)
			pc += basicInstructionSize
			continue
		}

		result := p.expandStatement(ins, tokens, pc)
		for _, statement := range result.Statements {
			fmt.Fprintf(buffered, "\t%s\n", statement)
		}
		pc += uint32(result.Length())
	}

	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// expandStatement resolves label operands to their addresses and applies the
// selected translation of the extended instruction.
func (p *Processor) expandStatement(ins *expand.ExtendedInstruction,
	tokens token.List, pc uint32) expand.Result {

	ctx := expand.Context{
		PC:      int32(pc),
		Symbols: p.symbols,
	}
	resolved := p.resolveLabelOperands(tokens)

	var result expand.Result
	if p.useCompact(ins) {
		result = ins.ExpandCompact(resolved, ctx)
	} else {
		result = ins.Expand(resolved, ctx)
	}

	p.logger.Debug("Expanded extended instruction",
		log.String("mnemonic", ins.Mnemonic()),
		log.Hex("address", pc),
		log.Int("instructions", len(result.Statements)))
	return result
}

// resolveLabelOperands rewrites every identifier operand that names a
// defined label to the label's numeric address. This is the resolution step
// the expansion engine assumes has happened: the engine's label marker
// recovers the name from the address afterwards.
func (p *Processor) resolveLabelOperands(tokens token.List) token.List {
	resolved := make(token.List, len(tokens))
	copy(resolved, tokens)

	for i := 1; i < len(resolved); i++ {
		if resolved[i].Type != token.Identifier {
			continue
		}
		address, ok := p.symbols.Address(resolved[i].Value)
		if !ok {
			continue
		}
		p.symbols.MarkUsed(resolved[i].Value)
		resolved[i].Value = strconv.FormatUint(uint64(address), 10)
	}
	return resolved
}

func (p *Processor) logUnusedLabels() {
	for _, sym := range p.symbols.SortedByAddress() {
		if !p.symbols.IsUsed(sym.Name) {
			p.logger.Debug("Unused label",
				log.String("name", sym.Name),
				log.Hex("address", sym.Address))
		}
	}
}
